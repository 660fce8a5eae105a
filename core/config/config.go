package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"tablediff/core/compare"
	"tablediff/core/database"
	"tablediff/core/logger"
	"tablediff/core/server"
	"tablediff/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds connection defaults applied to database locations.
	Database database.Config `mapstructure:"database"`
	// Compare holds the comparison settings.
	Compare compare.Config `mapstructure:"compare"`
}

// LoadConfig loads configuration from environment variables, the .env file in path and
// the settings file named by compare.settings_file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if settings := v.GetString("compare.settings_file"); settings != "" {
		if err := mergeSettings(v, resolve(path, settings)); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveSettings records the last used locations in the settings file, keeping whatever
// else the file holds.
func SaveSettings(file, source, target string) error {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings %s: %w", file, err)
		}
	}

	v.Set("compare.source", source)
	v.Set("compare.target", target)
	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", file, err)
	}
	return nil
}

func mergeSettings(v *viper.Viper, file string) error {
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat settings %s: %w", file, err)
	}

	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read settings %s: %w", file, err)
	}
	return nil
}

func resolve(dir, file string) string {
	if dir == "." || dir == "" || strings.HasPrefix(file, "/") {
		return file
	}
	return dir + "/" + file
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue, ok := field.Tag.Lookup("default")
		// Maps only come from the settings file
		if !ok && field.Type.Kind() == reflect.Map {
			continue
		}
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
