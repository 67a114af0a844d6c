package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hrm-qa/internal/api"
)

// hrm-qa operations: list the API operations scenarios can call.
var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the API operations, their default endpoints and extracted fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tMETHOD\tENDPOINT\tDATA\tFIELDS")
		for _, op := range api.Operations() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", op.Name, op.Method, op.Endpoint, op.Shape, strings.Join(op.Fields, ","))
		}
		return w.Flush()
	},
}
