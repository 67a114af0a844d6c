package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hrm-qa/internal/testdata"
)

var testdataForce bool

var testdataCmd = &cobra.Command{
	Use:   "testdata",
	Short: "Manage the test data workbook",
}

// hrm-qa testdata init PATH: write the template workbook.
var testdataInitCmd = &cobra.Command{
	Use:   "init PATH",
	Short: "Write a template workbook with one sheet per request body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !testdataForce {
			return fail("%s exists; use --force to overwrite", path)
		}
		if err := testdata.Write(path, testdata.Template); err != nil {
			return fail("%v", err)
		}
		wb, err := testdata.Open(path)
		if err != nil {
			return fail("%v", err)
		}
		defer wb.Close()
		sheets := wb.Sheets()
		if len(sheets) != len(testdata.Template) {
			return fail("%s: wrote %d sheets, want %d", path, len(sheets), len(testdata.Template))
		}
		fmt.Printf("wrote %s (%s)\n", path, strings.Join(sheets, ", "))
		return nil
	},
}

// hrm-qa testdata show PATH SHEET: print the row a scenario would use.
var testdataShowCmd = &cobra.Command{
	Use:   "show PATH SHEET",
	Short: "Print the first data row of a sheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := testdata.ReadRow(args[0], args[1])
		if err != nil {
			return fail("%v", err)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, k := range slices.Sorted(maps.Keys(row)) {
			fmt.Fprintf(tw, "%s\t%q\n", k, row[k])
		}
		return tw.Flush()
	},
}

func init() {
	testdataInitCmd.Flags().BoolVar(&testdataForce, "force", false, "Overwrite an existing file")
	testdataCmd.AddCommand(testdataInitCmd, testdataShowCmd)
}
