package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tablediff/core/diff"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diffJSON  bool
	diffLimit int
	diffApply bool
	diffYes   bool
)

// diffCmd shows the detailed differences of one table.
var diffCmd = &cobra.Command{
	Use:   "diff <table> [source] [target]",
	Short: "Show the row differences of one table",
	Long: `Compares one table and lists every added, removed or changed row.

Examples:
  # Print the first 50 entries
  diff items --limit 50

  # Save the full result as JSON
  diff items --json

  # Make the target match the source (with interactive confirmation)
  diff items --apply

  # Apply with auto-confirm (non-interactive)
  diff items --apply --yes`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Save the detailed result to a JSON file")
	diffCmd.Flags().IntVar(&diffLimit, "limit", 20, "Entries to print (0 prints all)")
	diffCmd.Flags().BoolVar(&diffApply, "apply", false, "Write the source rows into the target")
	diffCmd.Flags().BoolVar(&diffYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	table := args[0]

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	source, target, err := s.endpoints(args[1:])
	if err != nil {
		return err
	}

	result, err := s.scheduler(source, target).CompareOne(ctx, table)
	if err != nil {
		return err
	}
	summary := diff.Summarize(result)

	s.logger.Info("Compared table",
		zap.String("table", table),
		zap.Strings("key", result.KeyColumns),
		zap.String("key_tier", result.KeyTier),
		zap.Int("only_in_source", summary.OnlyInSource),
		zap.Int("only_in_target", summary.OnlyInTarget),
		zap.Int("different", summary.Different))
	if len(result.SourceOnlyColumns) > 0 || len(result.TargetOnlyColumns) > 0 {
		s.logger.Warn("Schemas differ",
			zap.Strings("source_only", result.SourceOnlyColumns),
			zap.Strings("target_only", result.TargetOnlyColumns))
	}

	if diffJSON {
		filename, err := saveResult(result)
		if err != nil {
			return err
		}
		s.logger.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("entries", len(result.Entries)))
	}

	if err := renderEntries(cmd.OutOrStdout(), result, diffLimit); err != nil {
		return err
	}

	if !diffApply {
		return nil
	}
	if len(result.Entries) == 0 {
		s.logger.Info("No changes to apply")
		return nil
	}

	if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), diffYes) {
		s.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	s.logger.Info("Applying changes...", zap.String("target", target.ID()))
	if err := target.ApplyRowChanges(ctx, table, result); err != nil {
		return fmt.Errorf("failed to apply changes: %w", err)
	}
	s.logger.Info("Successfully applied changes", zap.Int("count", len(result.Entries)))
	return nil
}

// saveResult writes result to diff_<table>_<unix>.json.
func saveResult(result *diff.TableResult) (string, error) {
	filename := fmt.Sprintf("diff_%s_%d.json", result.Table, time.Now().Unix())
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save JSON file: %w", err)
	}
	return filename, nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer, yes bool) bool {
	if yes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
