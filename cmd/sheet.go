package cmd

import (
	"fmt"

	"tablediff/core/ods"
	"tablediff/feature/sheetsource"

	"github.com/spf13/cobra"
)

var sheetRows int

// sheetCmd previews the sheets of a workbook.
var sheetCmd = &cobra.Command{
	Use:   "sheet <workbook> [sheet]",
	Short: "Preview the sheets of a workbook",
	Long:  `Prints the size of every sheet of an .ods workbook, or the first rows of one sheet.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		p, err := s.open(args[0])
		if err != nil {
			return err
		}
		book, ok := p.(*sheetsource.Provider)
		if !ok {
			return fmt.Errorf("%s is not a workbook", args[0])
		}
		doc, err := book.Document(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			for _, sh := range doc.Sheets {
				fmt.Fprintf(out, "%s\t%d rows\t%d columns\n", sh.Name, sh.RowCount(), sh.MaxColumns)
			}
			return nil
		}

		idx, ok := doc.SheetIndex(args[1])
		if !ok {
			return fmt.Errorf("%w: %s", sheetsource.ErrNoSheet, args[1])
		}
		cur, err := ods.NewCursor(doc, idx)
		if err != nil {
			return err
		}

		var rows [][]any
		for (sheetRows <= 0 || len(rows) < sheetRows) && cur.Read() {
			row := make([]any, cur.FieldCount())
			for i := range row {
				row[i], _ = cur.Value(i)
			}
			rows = append(rows, row)
		}
		return renderRows(out, cur.FieldCount(), rows)
	},
}

func init() {
	sheetCmd.Flags().IntVar(&sheetRows, "rows", 20, "Rows to print (0 prints all)")
	RootCmd.AddCommand(sheetCmd)
}
