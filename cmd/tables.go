package cmd

import (
	"fmt"
	"strings"

	"tablediff/core/compare"
	"tablediff/core/storage"
	"tablediff/feature/sheetsource"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tablesAll bool

// tablesCmd lists the tables of a location.
var tablesCmd = &cobra.Command{
	Use:   "tables [location]",
	Short: "List the tables of a location",
	Long: `Lists the tables of a location, the last used source by default. Excluded tables
are hidden unless --all is given. An s3://bucket/prefix location lists the workbooks
stored under the prefix; a bare s3:// lists the configured bucket.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		location := s.cfg.Compare.Source
		if len(args) > 0 {
			location = args[0]
		}
		if location == "" {
			return fmt.Errorf("a location is required")
		}

		var names []string
		if storage.IsLocation(location) && classifyLocation(location) == locationUnknown {
			client, err := s.storage()
			if err != nil {
				return err
			}
			bucket, prefix, _ := strings.Cut(strings.TrimPrefix(location, "s3://"), "/")
			if bucket == "" {
				bucket = s.cfg.Storage.Bucket
			}
			if names, err = sheetsource.ListWorkbooks(ctx, client, bucket, prefix); err != nil {
				return err
			}
		} else {
			p, err := s.open(location)
			if err != nil {
				return err
			}
			var excluded []string
			if !tablesAll {
				excluded = s.cfg.Compare.ExcludedTables
			}
			if names, err = compare.SelectTables(ctx, p, excluded); err != nil {
				return err
			}
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		s.logger.Debug("Listed tables", zap.String("location", redact(location)), zap.Int("count", len(names)))
		return nil
	},
}

func init() {
	tablesCmd.Flags().BoolVar(&tablesAll, "all", false, "Include excluded tables")
	RootCmd.AddCommand(tablesCmd)
}
