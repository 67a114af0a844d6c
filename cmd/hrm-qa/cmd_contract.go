package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hrm-qa/internal/contract"
)

var contractOut string

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "OpenAPI document tools",
}

// hrm-qa contract diff A B: compare two OpenAPI documents.
var contractDiffCmd = &cobra.Command{
	Use:   "diff A B",
	Short: "Compare operations, status codes and data fields of two OpenAPI documents",
	Long: `Compare two OpenAPI documents and write contract-diff.json. Either argument may be
"-" for the built-in HRM document.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContractDiff(args[0], args[1], contractOut)
	},
}

func init() {
	contractDiffCmd.Flags().StringVar(&contractOut, "out", "reports", "Output directory for contract-diff.json")
	contractCmd.AddCommand(contractDiffCmd)
}

func loadDoc(path string) (*contract.Validator, error) {
	if path == "-" {
		return contract.Default()
	}
	return contract.LoadFromFile(path)
}

func runContractDiff(aPath, bPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fail("mkdir out: %v", err)
	}
	a, err := loadDoc(aPath)
	if err != nil {
		return fail("openapi A load: %v", err)
	}
	b, err := loadDoc(bPath)
	if err != nil {
		return fail("openapi B load: %v", err)
	}

	rep := contract.DiffDocs(a.Doc(), b.Doc())

	out := filepath.Join(outDir, "contract-diff.json")
	if err := writeFile(out, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}); err != nil {
		return err
	}

	// Console summary
	fmt.Printf("Contract diff (%s -> %s)\n", aPath, bPath)
	if rep.Empty() {
		fmt.Println("  No changes.")
	} else {
		if len(rep.Added) > 0 {
			fmt.Println("  Added:")
			for _, op := range rep.Added {
				fmt.Printf("    + %s %s\n", op.Method, op.Path)
			}
		}
		if len(rep.Removed) > 0 {
			fmt.Println("  Removed:")
			for _, op := range rep.Removed {
				fmt.Printf("    - %s %s\n", op.Method, op.Path)
			}
		}
		if len(rep.ChangedStatus) > 0 {
			fmt.Println("  Status changes:")
			for _, ch := range rep.ChangedStatus {
				fmt.Printf("    * %s %s: %v -> %v\n", ch.Method, ch.Path, ch.A, ch.B)
			}
		}
		if len(rep.ChangedFields) > 0 {
			fmt.Println("  Data field changes:")
			for _, ch := range rep.ChangedFields {
				fmt.Printf("    * %s %s: removed %v, added %v\n", ch.Method, ch.Path, ch.Removed, ch.Added)
			}
		}
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
