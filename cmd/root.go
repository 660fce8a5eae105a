package cmd

import (
	"fmt"
	"os"

	"tablediff/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir holds the .env file and the settings file.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tablediff",
	Short: "Compare tables across databases and spreadsheets",
	Long: `tablediff compares two versions of tabular data, such as database snapshots or
spreadsheet exports, and reports which rows were added, removed or changed.
Locations may be mysql://, sqlite:// or s3:// URLs, SQLite files or .ods workbooks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding .env and the settings file")
}
