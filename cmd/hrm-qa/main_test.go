package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrm-qa/internal/hrmmock"
	"hrm-qa/internal/testdata"
)

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"PL1", "smoke"}, splitCSV(" PL1, ,smoke "))
}

func TestRunSuite_AgainstMock(t *testing.T) {
	m := hrmmock.New(hrmmock.Options{})
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	saved := runOpts
	t.Cleanup(func() { runOpts = saved })

	dir := t.TempDir()
	data := filepath.Join(dir, "TestData.xlsx")
	require.NoError(t, testdata.Write(data, testdata.Template))

	runOpts.baseURL = srv.URL
	runOpts.cookie = m.IssueSession()
	runOpts.testData = data
	runOpts.outDir = filepath.Join(dir, "reports")
	runOpts.contract = true
	runOpts.covMin = 100

	require.NoError(t, runSuite(context.Background()))

	for _, name := range []string{"results.json", "junit.xml", "report.html", "results.xlsx", "coverage.json"} {
		_, err := os.Stat(filepath.Join(runOpts.outDir, name))
		assert.NoError(t, err, name)
	}

	runOpts.cookie = "stale"
	err := runSuite(context.Background())
	assert.True(t, errors.Is(err, errFailed), "stale session fails scenarios: %v", err)
}

func TestRunSuite_CatalogOpenAPI(t *testing.T) {
	m := hrmmock.New(hrmmock.Options{})
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	saved := runOpts
	t.Cleanup(func() { runOpts = saved })
	t.Setenv("HRM_OPENAPI", "")

	dir := t.TempDir()
	doc, err := os.ReadFile(filepath.Join("..", "..", "internal", "contract", "hrm-openapi.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.yaml"), doc, 0o644))
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`name: statuses
openapi: api.yaml
scenarios:
  - name: GetEmpStatus
    priority: 1
    operation: GetEmpStatus
    expect:
      - type: status
        value: 200
`), 0o644))

	runOpts = runOptions{
		catalog: catalog,
		baseURL: srv.URL,
		cookie:  m.IssueSession(),
		outDir:  filepath.Join(dir, "reports"),
		covMin:  -1,
	}
	require.NoError(t, runSuite(context.Background()))
	_, err = os.Stat(filepath.Join(runOpts.outDir, "coverage.json"))
	assert.NoError(t, err, "catalog document enables contract checks")

	require.NoError(t, os.Remove(filepath.Join(dir, "api.yaml")))
	var ue *usageError
	assert.True(t, errors.As(runSuite(context.Background()), &ue), "missing catalog document is a setup error")
}

func TestRunSuite_ConfigErrorIsUsageError(t *testing.T) {
	saved := runOpts
	t.Cleanup(func() { runOpts = saved })
	t.Setenv("HRM_BASE_URL", "")
	runOpts = runOptions{covMin: -1, outDir: t.TempDir()}

	err := runSuite(context.Background())
	var ue *usageError
	require.True(t, errors.As(err, &ue), "got %v", err)
}

func TestInspectCommand(t *testing.T) {
	inspectOpts.method = "Client.GetPimEmp"
	inspectOpts.tokens = "newRequest,withSession,http.MethodGet,send"
	t.Cleanup(func() { inspectOpts.method, inspectOpts.tokens = "", "" })
	require.NoError(t, inspectCmd.RunE(inspectCmd, nil))

	inspectOpts.tokens = "http.MethodPost"
	assert.ErrorIs(t, inspectCmd.RunE(inspectCmd, nil), errFailed)

	inspectOpts.method = "Client.DeleteEverything"
	assert.ErrorIs(t, inspectCmd.RunE(inspectCmd, nil), errFailed)
}

func TestTestdataInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TestData.xlsx")
	require.NoError(t, testdataInitCmd.RunE(testdataInitCmd, []string{path}))

	wb, err := testdata.Open(path)
	require.NoError(t, err)
	defer wb.Close()
	assert.Len(t, wb.Sheets(), len(testdata.Template))

	var ue *usageError
	assert.True(t, errors.As(testdataInitCmd.RunE(testdataInitCmd, []string{path}), &ue), "refuses to overwrite")
}

func TestTestdataShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TestData.xlsx")
	require.NoError(t, testdata.Write(path, testdata.Template))

	var out bytes.Buffer
	testdataShowCmd.SetOut(&out)
	t.Cleanup(func() { testdataShowCmd.SetOut(nil) })

	require.NoError(t, testdataShowCmd.RunE(testdataShowCmd, []string{path, "PutOptionalField"}))
	assert.Contains(t, out.String(), `showSIN`)
	assert.Contains(t, out.String(), `"true"`)

	var ue *usageError
	assert.True(t, errors.As(testdataShowCmd.RunE(testdataShowCmd, []string{path, "Missing"}), &ue))
}

func TestContractDiff_BuiltIn(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, runContractDiff("-", "-", out))
	_, err := os.Stat(filepath.Join(out, "contract-diff.json"))
	assert.NoError(t, err)
}
