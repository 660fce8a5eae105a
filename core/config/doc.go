// Package config provides configuration management for tablediff.
//
// It utilizes Viper for loading configuration from environment variables, a .env file
// and an optional YAML settings file (compare.settings_file, tablediff.yaml by default).
// Environment variables win over the settings file, which wins over struct defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, entry limit)
//   - Database: connection defaults for mysql:// and sqlite:// locations
//   - Storage: S3/MinIO credentials for s3:// workbook locations
//   - Log: Logging level and format
//   - Compare: last used locations, excluded tables, custom keys, parallelism
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.MaxParallelism)
package config
