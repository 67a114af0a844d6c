package executor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrm-qa/internal/api"
	"hrm-qa/internal/contract"
	"hrm-qa/internal/inspect"
	"hrm-qa/internal/ir"
	"hrm-qa/internal/session"
	"hrm-qa/internal/testdata"
)

// ErrLogin means no session token could be obtained; no scenario ran.
var ErrLogin = errors.New("login failed")

// LoginScenario is the name of the result entry recording the login.
const LoginScenario = "Login"

// ---- Results model ----

type SuiteResult struct {
	RunID      string
	Name       string
	Passed     bool
	StartedAt  time.Time
	Scenarios  []ScenarioResult
	DurationMs float64
}

type ScenarioResult struct {
	Name        string
	Operation   string
	Priority    int
	Groups      []string
	Description string
	Passed      bool
	Steps       []StepResult
	DurationMs  float64
}

type StepResult struct {
	Name       string
	Passed     bool
	StatusCode int
	StatusLine string
	Errors     []string
	DurationMs float64

	Method      string
	URL         string
	ReqBody     string
	RespHeaders map[string][]string
	RespBody    string
	Shape       string
	Records     int
}

// RowSource supplies test data rows by sheet name.
type RowSource interface {
	Row(sheet string) (testdata.Row, error)
}

// ---- Runner ----

type Runner struct {
	baseURL string
	login   session.Source
	log     *zap.Logger

	httpClient *http.Client
	timeout    time.Duration

	rows     RowSource
	dataPath string

	source []byte // operations source for token checks

	contractV *contract.Validator
	covered   map[string]map[string]bool // method -> pathTemplate -> true

	failFast bool
	include  []string
	exclude  []string
}

// New returns a runner that logs in through login and calls the API at
// baseURL.
func New(baseURL string, login session.Source) *Runner {
	return &Runner{
		baseURL: baseURL,
		login:   login,
		log:     zap.NewNop(),
		source:  api.Source(),
	}
}

func (r *Runner) WithLogger(l *zap.Logger) *Runner {
	if l != nil {
		r.log = l
	}
	return r
}

func (r *Runner) WithHTTPClient(hc *http.Client) *Runner { r.httpClient = hc; return r }
func (r *Runner) WithTimeout(d time.Duration) *Runner    { r.timeout = d; return r }

// WithTestData reads rows from the workbook at path. The file is opened once
// per run, and only if a scenario needs it.
func (r *Runner) WithTestData(path string) *Runner { r.dataPath = path; return r }

// WithRows uses rows instead of a workbook.
func (r *Runner) WithRows(rows RowSource) *Runner { r.rows = rows; return r }

// WithSource replaces the operations source the token checks inspect.
func (r *Runner) WithSource(src []byte) *Runner { r.source = src; return r }

func (r *Runner) WithContract(v *contract.Validator) *Runner {
	if r.covered == nil {
		r.covered = map[string]map[string]bool{}
	}
	r.contractV = v
	return r
}

func (r *Runner) WithFailFast(b bool) *Runner { r.failFast = b; return r }

// WithGroups keeps scenarios in any include group and drops those in any
// exclude group. Empty lists do not filter.
func (r *Runner) WithGroups(include, exclude []string) *Runner {
	r.include, r.exclude = include, exclude
	return r
}

func (r *Runner) Covered() map[string]map[string]bool { return r.covered }

// ---- Suite execution ----

// RunSuite logs in once and runs the catalog's scenarios in order. A failed
// login returns the partial result together with an error wrapping ErrLogin.
func (r *Runner) RunSuite(ctx context.Context, cat *ir.Catalog) (*SuiteResult, error) {
	if cat == nil {
		return nil, errors.New("nil catalog")
	}
	scenarios := FilterByGroups(cat.Scenarios, r.include, r.exclude)
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios left after group filtering")
	}

	startSuite := time.Now()
	res := &SuiteResult{RunID: uuid.NewString(), Name: cat.Name, Passed: true, StartedAt: startSuite}
	log := r.log.With(zap.String("run_id", res.RunID))

	tok, loginRes := r.runLogin(ctx)
	res.Scenarios = append(res.Scenarios, loginRes)
	if !loginRes.Passed {
		res.Passed = false
		res.DurationMs = float64(time.Since(startSuite).Milliseconds())
		log.Error("login failed", zap.Strings("errors", loginRes.Steps[0].Errors))
		return res, fmt.Errorf("%w: %s", ErrLogin, strings.Join(loginRes.Steps[0].Errors, "; "))
	}
	log.Info("logged in", zap.Float64("duration_ms", loginRes.DurationMs))

	client := api.NewClient(r.baseURL, tok).WithLogger(log).WithHTTPClient(r.httpClient).WithTimeout(r.timeout)
	defer client.CloseIdleConnections()

	rows, closeRows := r.openRows(scenarios)
	defer closeRows()

	for _, sc := range scenarios {
		scRes := r.runScenario(ctx, client, rows, sc)
		res.Scenarios = append(res.Scenarios, scRes)
		if scRes.Passed {
			log.Info("scenario passed", zap.String("scenario", sc.Name), zap.Float64("duration_ms", scRes.DurationMs))
		} else {
			res.Passed = false
			log.Warn("scenario failed", zap.String("scenario", sc.Name), zap.Strings("errors", scRes.Steps[0].Errors))
			if r.failFast {
				break
			}
		}
	}

	res.DurationMs = float64(time.Since(startSuite).Milliseconds())
	return res, nil
}

func (r *Runner) runLogin(ctx context.Context) (session.Token, ScenarioResult) {
	start := time.Now()
	scRes := ScenarioResult{Name: LoginScenario, Description: "Log in and obtain the session cookie", Passed: true}
	step := StepResult{Name: LoginScenario, Passed: true}

	var tok session.Token
	var err error
	if r.login == nil {
		err = errors.New("no login source configured")
	} else {
		tok, err = r.login.Login(ctx)
	}
	if err != nil {
		step.Passed = false
		step.Errors = append(step.Errors, err.Error())
		scRes.Passed = false
	}

	step.DurationMs = float64(time.Since(start).Milliseconds())
	scRes.Steps = []StepResult{step}
	scRes.DurationMs = step.DurationMs
	return tok, scRes
}

// openRows returns the row source for the run. A workbook that cannot be
// opened fails only the scenarios that need data.
func (r *Runner) openRows(scenarios []ir.Scenario) (RowSource, func()) {
	if r.rows != nil || r.dataPath == "" {
		return r.rows, func() {}
	}
	needed := false
	for _, sc := range scenarios {
		if sc.Data != nil {
			needed = true
			break
		}
	}
	if !needed {
		return nil, func() {}
	}
	wb, err := testdata.Open(r.dataPath)
	if err != nil {
		return failingRows{err: err}, func() {}
	}
	return wb, func() { _ = wb.Close() }
}

type failingRows struct{ err error }

func (f failingRows) Row(string) (testdata.Row, error) { return nil, f.err }

func (r *Runner) runScenario(ctx context.Context, client *api.Client, rows RowSource, sc ir.Scenario) ScenarioResult {
	startSc := time.Now()
	scRes := ScenarioResult{
		Name:        sc.Name,
		Operation:   sc.Operation,
		Priority:    sc.Priority,
		Groups:      sc.Groups,
		Description: sc.Description,
	}
	step := r.runStep(ctx, client, rows, sc)
	scRes.Passed = step.Passed
	scRes.Steps = []StepResult{step}
	scRes.DurationMs = float64(time.Since(startSc).Milliseconds())
	return scRes
}

// runStep invokes the operation and evaluates the expectations in order; the
// first failing expectation ends the step.
func (r *Runner) runStep(ctx context.Context, client *api.Client, rows RowSource, sc ir.Scenario) StepResult {
	step := StepResult{Name: sc.Operation, Passed: true}
	fail := func(format string, a ...any) StepResult {
		step.Passed = false
		step.Errors = append(step.Errors, fmt.Sprintf(format, a...))
		return step
	}

	op, ok := api.Lookup(sc.Operation)
	if !ok {
		return fail("unknown operation %q", sc.Operation)
	}
	endpoint := sc.Endpoint
	if endpoint == "" {
		endpoint = op.Endpoint
	}
	step.Method = op.Method
	step.URL = endpoint

	var body *string
	if sc.Data != nil {
		b, err := r.buildBody(rows, sc.Data)
		if err != nil {
			return fail("test data: %v", err)
		}
		body = &b
		step.ReqBody = b
	}

	resp, err := op.Call(client, ctx, endpoint, body)
	if err != nil {
		return fail("request error: %v", err)
	}
	step.DurationMs = resp.DurationMs
	step.URL = resp.URL
	step.StatusCode = resp.StatusCode
	step.StatusLine = resp.Status
	step.RespHeaders = resp.Header
	step.RespBody = limitBody(resp.Body, 64<<10) // 64KB cap in report
	step.Shape = string(resp.Data.Shape)
	step.Records = resp.Data.Len()

	for _, exp := range r.expectations(sc) {
		if ok, msg := r.evalExpectation(ctx, sc, exp, resp); !ok {
			return fail("%s", msg)
		}
	}
	return step
}

// expectations appends a contract check when a document is configured and the
// scenario does not already ask for one.
func (r *Runner) expectations(sc ir.Scenario) []ir.Expectation {
	if r.contractV == nil {
		return sc.Expect
	}
	for _, e := range sc.Expect {
		if e.Type == ir.ExpectContract {
			return sc.Expect
		}
	}
	out := make([]ir.Expectation, 0, len(sc.Expect)+1)
	out = append(out, sc.Expect...)
	return append(out, ir.Expectation{Type: ir.ExpectContract})
}

func (r *Runner) buildBody(rows RowSource, d *ir.Data) (string, error) {
	build, ok := api.Builder(d.Body)
	if !ok {
		return "", fmt.Errorf("unknown body builder %q", d.Body)
	}
	if rows == nil {
		return "", errors.New("no test data configured")
	}
	row, err := rows.Row(d.Sheet)
	if err != nil {
		return "", err
	}
	return build(row), nil
}

// ---- Expectations ----

func (r *Runner) evalExpectation(ctx context.Context, sc ir.Scenario, exp ir.Expectation, resp *api.Response) (bool, string) {
	switch exp.Type {
	case ir.ExpectStatus:
		want, ok := exp.Value.(int)
		if !ok {
			if f, fok := exp.Value.(float64); fok {
				want = int(f)
				ok = true
			}
		}
		if !ok {
			return false, "status expectation has non-integer value"
		}
		if resp.StatusCode != want {
			return false, fmt.Sprintf("status: got %d, want %d", resp.StatusCode, want)
		}
		return true, ""

	case ir.ExpectStatusLine:
		want := fmt.Sprint(exp.Value)
		if resp.Status != want {
			return false, fmt.Sprintf("status line: got %q, want %q", resp.Status, want)
		}
		return true, ""

	case ir.ExpectNonEmpty:
		for _, f := range exp.Fields {
			if len(resp.Values(f)) == 0 {
				return false, fmt.Sprintf("nonEmpty: no %q values extracted (data %s)", f, resp.Data.Shape)
			}
		}
		return true, ""

	case ir.ExpectNonNull:
		for _, f := range exp.Fields {
			vals := resp.Values(f)
			if len(vals) == 0 {
				return false, fmt.Sprintf("nonNull: no %q values extracted (data %s)", f, resp.Data.Shape)
			}
			for i, v := range vals {
				if v == nil {
					return false, fmt.Sprintf("nonNull: %q is null in record %d", f, i)
				}
			}
		}
		return true, ""

	case ir.ExpectTokens:
		missing, err := inspect.Missing(r.source, "Client."+sc.Operation, exp.Tokens)
		if err != nil || len(missing) > 0 {
			detail := fmt.Sprintf("missing %s", strings.Join(missing, ", "))
			if err != nil {
				detail = err.Error()
			}
			return false, fmt.Sprintf("%s must be implemented using the session client primitives only (%s)", sc.Operation, detail)
		}
		return true, ""

	case ir.ExpectContract:
		if r.contractV == nil {
			return false, "contract: requested but no OpenAPI document configured"
		}
		path, mth, err := r.contractV.ValidateResponse(ctx, resp.Method, resp.URL, resp.StatusCode, resp.Header, resp.Body)
		if err != nil {
			return false, fmt.Sprintf("contract: %v", err)
		}
		if r.covered[mth] == nil {
			r.covered[mth] = map[string]bool{}
		}
		r.covered[mth][path] = true
		return true, ""

	default:
		return false, fmt.Sprintf("unknown expectation type: %s", exp.Type)
	}
}

// FilterByGroups keeps scenarios in any include group and drops those in any
// exclude group. Matching is case-insensitive.
func FilterByGroups(in []ir.Scenario, include, exclude []string) []ir.Scenario {
	if len(include) == 0 && len(exclude) == 0 {
		return in
	}
	toSet := func(ss []string) map[string]bool {
		m := map[string]bool{}
		for _, s := range ss {
			m[strings.ToLower(s)] = true
		}
		return m
	}
	inc, exc := toSet(include), toSet(exclude)
	hasAny := func(groups []string, m map[string]bool) bool {
		for _, g := range groups {
			if m[strings.ToLower(g)] {
				return true
			}
		}
		return false
	}
	out := make([]ir.Scenario, 0, len(in))
	for _, sc := range in {
		if len(inc) > 0 && !hasAny(sc.Groups, inc) {
			continue
		}
		if len(exc) > 0 && hasAny(sc.Groups, exc) {
			continue
		}
		out = append(out, sc)
	}
	return out
}

// ---- small helpers ----

// limitBody cuts b to at most max bytes without splitting a UTF-8 sequence.
func limitBody(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return string(b[:cut]) + "\n...[truncated]..."
}
