package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

// errFailed reports a completed run with failing scenarios; main exits 1.
var errFailed = errors.New("FAIL")

// usageError carries a setup problem (config, login, files); main exits 2.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func fail(format string, a ...any) error {
	return &usageError{err: fmt.Errorf(format, a...)}
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err == nil {
		os.Exit(0)
	}
	if errors.Is(err, errFailed) {
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(2)
}

var rootCmd = &cobra.Command{
	Use:   "hrm-qa",
	Short: "End-to-end checks for the OrangeHRM REST API",
	Long: `hrm-qa logs in to an OrangeHRM instance once, then runs a catalog of REST API
scenarios against it and writes JSON, JUnit, HTML and Excel reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and failure details")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(testdataCmd)
	rootCmd.AddCommand(contractCmd)
	rootCmd.AddCommand(operationsCmd)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fail("create %s: %v", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fail("write %s: %v", path, err)
	}
	return nil
}
