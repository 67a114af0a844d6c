package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrm-qa/internal/api"
	"hrm-qa/internal/inspect"
)

var inspectOpts struct {
	file   string
	method string
	tokens string
}

// hrm-qa inspect: check that a method's source contains the given tokens.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check that a method's source text contains the required tokens",
	Example: `  hrm-qa inspect --method Client.PutAdminConfig --tokens newRequest,withSession,http.MethodPut,send
  hrm-qa inspect --file internal/api/operations.go --method GetPimEmp --tokens send`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectOpts.method == "" {
			return fail("missing --method")
		}
		tokens := splitCSV(inspectOpts.tokens)
		if len(tokens) == 0 {
			return fail("missing --tokens")
		}

		src, name := api.Source(), api.OperationsFile
		if inspectOpts.file != "" {
			b, err := os.ReadFile(inspectOpts.file)
			if err != nil {
				return fail("read %s: %v", inspectOpts.file, err)
			}
			src, name = b, inspectOpts.file
		}

		missing, err := inspect.Missing(src, inspectOpts.method, tokens)
		if err != nil {
			logger.Warn("inspect", zap.String("file", name), zap.Error(err))
			fmt.Printf("%s: %v\n", name, err)
			fmt.Println("FAIL")
			return errFailed
		}
		if len(missing) > 0 {
			fmt.Printf("%s %s: missing %s\n", name, inspectOpts.method, strings.Join(missing, ", "))
			fmt.Println("FAIL")
			return errFailed
		}
		fmt.Println("PASS")
		return nil
	},
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectOpts.file, "file", "", "Go source file; defaults to the compiled-in API operations")
	f.StringVar(&inspectOpts.method, "method", "", `Function or "Type.Method" to inspect`)
	f.StringVar(&inspectOpts.tokens, "tokens", "", "Comma-separated substrings that must all appear")
}
