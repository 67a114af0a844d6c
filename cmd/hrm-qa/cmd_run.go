package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrm-qa/internal/api"
	"hrm-qa/internal/config"
	"hrm-qa/internal/contract"
	"hrm-qa/internal/executor"
	"hrm-qa/internal/ir"
	"hrm-qa/internal/parser"
	"hrm-qa/internal/reporter"
	"hrm-qa/internal/session"
)

type runOptions struct {
	configFiles  []string
	catalog      string
	name         string
	outDir       string
	groups       string
	excludeGroup string
	failFast     bool
	contract     bool
	openapi      string
	covMin       float64

	baseURL  string
	cookie   string
	testData string
	headless string
}

var runOpts runOptions

// hrm-qa run: log in once and execute the scenario catalog.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log in and run the API scenarios",
	Long: `Log in once (browser, login command, or a given cookie), then run every scenario
of the catalog in priority order. Exit code 0 when all pass, 1 when any fails,
2 on configuration or login errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuite(cmd.Context())
	},
}

func init() {
	f := runCmd.Flags()
	f.StringSliceVarP(&runOpts.configFiles, "config", "c", nil, "Config files (.properties, .yaml, .json); later files win")
	f.StringVar(&runOpts.catalog, "catalog", "", "Scenario catalog (YAML/JSON); defaults to the built-in catalog")
	f.StringVar(&runOpts.name, "name", "", "Optional suite name override")
	f.StringVar(&runOpts.outDir, "out", "reports", "Output directory for artifacts")
	f.StringVar(&runOpts.groups, "group", "", "Comma-separated groups to include (OR semantics)")
	f.StringVar(&runOpts.excludeGroup, "exclude-group", "", "Comma-separated groups to exclude (OR semantics)")
	f.BoolVar(&runOpts.failFast, "fail-fast", false, "Stop after the first failing scenario")
	f.BoolVar(&runOpts.contract, "contract", false, "Validate responses against the OpenAPI document")
	f.StringVar(&runOpts.openapi, "openapi", "", "OpenAPI document for contract checks; implies --contract")
	f.Float64Var(&runOpts.covMin, "coverage-min", -1, "Fail if contract coverage percent < this threshold")

	f.StringVar(&runOpts.baseURL, "base-url", "", "Overrides base.url")
	f.StringVar(&runOpts.cookie, "cookie", "", "Overrides cookie.value; skips the browser login")
	f.StringVar(&runOpts.testData, "test-data", "", "Overrides test.data")
	f.StringVar(&runOpts.headless, "headless", "", "Overrides browser.headless (true/false)")

	runCmd.SetHelpTemplate(runCmd.HelpTemplate() + "\n" + envHelp())
}

func envHelp() string {
	var b strings.Builder
	config.Usage(&b)
	return b.String()
}

func flagOverrides() map[string]string {
	out := map[string]string{}
	set := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	set("base.url", runOpts.baseURL)
	set("cookie.value", runOpts.cookie)
	set("test.data", runOpts.testData)
	set("browser.headless", runOpts.headless)
	set("openapi", runOpts.openapi)
	return out
}

func loadCatalog() (*ir.Catalog, error) {
	ops := api.Operations()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	p := parser.New().WithOperations(names...).WithBodies(api.BuilderNames()...)
	if runOpts.catalog == "" {
		return p.Default()
	}
	data, err := os.ReadFile(runOpts.catalog)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return p.ParseBytes(data)
}

// openAPIPath picks the contract document: the configured one, else the
// catalog's own, resolved against the catalog file's directory.
func openAPIPath(configured string, cat *ir.Catalog) string {
	if configured != "" || cat.OpenAPI == "" {
		return configured
	}
	if filepath.IsAbs(cat.OpenAPI) || runOpts.catalog == "" {
		return cat.OpenAPI
	}
	return filepath.Join(filepath.Dir(runOpts.catalog), cat.OpenAPI)
}

func runSuite(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := config.LoadWith(flagOverrides(), runOpts.configFiles...)
	if err != nil {
		logger.Error("configuration", zap.Error(err))
		return fail("%v", err)
	}

	cat, err := loadCatalog()
	if err != nil {
		return fail("parse: %v", err)
	}
	if runOpts.name != "" {
		cat.Name = runOpts.name
	}

	r := executor.New(cfg.BaseURL, session.FromConfig(cfg, logger)).
		WithLogger(logger).
		WithTestData(cfg.TestData).
		WithFailFast(runOpts.failFast).
		WithGroups(splitCSV(runOpts.groups), splitCSV(runOpts.excludeGroup))

	// Contract (strict)
	var v *contract.Validator
	if doc := openAPIPath(cfg.OpenAPI, cat); runOpts.contract || doc != "" {
		v, err = contract.Load(doc)
		if err != nil {
			return fail("openapi load: %v", err)
		}
		r = r.WithContract(v)
	}

	logger.Info("starting run",
		zap.String("suite", cat.Name),
		zap.String("base_url", cfg.BaseURL),
		zap.Int("scenarios", len(cat.Scenarios)),
		zap.Bool("contract", v != nil),
	)

	res, runErr := r.RunSuite(ctx, cat)
	if runErr != nil && res == nil {
		return fail("execute: %v", runErr)
	}

	if err := writeReports(res, cat.Name, v, r); err != nil {
		return err
	}
	if runErr != nil {
		if errors.Is(runErr, executor.ErrLogin) {
			fmt.Println("FAIL")
		}
		return fail("%v", runErr)
	}

	if v != nil && runOpts.covMin >= 0 {
		rep := reporter.ComputeCoverage(v.Doc(), r.Covered())
		if rep.Percent+1e-9 < runOpts.covMin {
			fmt.Fprintf(os.Stderr, "coverage gate failed: got %.2f%%, need >= %.2f%%\n", rep.Percent, runOpts.covMin)
			fmt.Println("FAIL")
			return errFailed
		}
	}

	printFailures(res)
	if res.Passed {
		fmt.Println("PASS")
		return nil
	}
	fmt.Println("FAIL")
	return errFailed
}

func writeReports(res *executor.SuiteResult, suiteName string, v *contract.Validator, r *executor.Runner) error {
	if err := os.MkdirAll(runOpts.outDir, 0o755); err != nil {
		return fail("mkdir out: %v", err)
	}
	if suiteName == "" {
		suiteName = "hrm-qa"
	}

	jsonPath := filepath.Join(runOpts.outDir, "results.json")
	if err := writeFile(jsonPath, func(f *os.File) error {
		return reporter.WriteJSON(f, res)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(runOpts.outDir, "junit.xml"), func(f *os.File) error {
		return reporter.WriteJUnit(f, suiteName, res)
	}); err != nil {
		return err
	}
	// HTML is rendered from results.json so the two always agree.
	if err := writeFile(filepath.Join(runOpts.outDir, "report.html"), func(f *os.File) error {
		return reporter.WriteHTMLFromJSONPath(f, suiteName, jsonPath)
	}); err != nil {
		return err
	}
	if err := reporter.WriteExcel(filepath.Join(runOpts.outDir, "results.xlsx"), res); err != nil {
		return fail("%v", err)
	}
	if v != nil {
		if err := writeFile(filepath.Join(runOpts.outDir, "coverage.json"), func(f *os.File) error {
			return reporter.WriteCoverage(f, v.Doc(), r.Covered())
		}); err != nil {
			return err
		}
	}
	logger.Info("reports written", zap.String("dir", runOpts.outDir), zap.String("run_id", res.RunID))
	return nil
}

func printFailures(res *executor.SuiteResult) {
	if res.Passed && !verbose {
		return
	}
	for _, sc := range res.Scenarios {
		if sc.Passed {
			continue
		}
		fmt.Fprintf(os.Stderr, "\nScenario FAILED: %s\n", sc.Name)
		for _, st := range sc.Steps {
			if st.Passed {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %s: status=%d\n", st.Name, st.StatusCode)
			for _, e := range st.Errors {
				fmt.Fprintf(os.Stderr, "    - %s\n", e)
			}
		}
	}
}
