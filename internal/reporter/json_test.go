package reporter_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hrm-qa/internal/executor"
	"hrm-qa/internal/reporter"
)

func TestWriteJSON_Basic(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	if err := reporter.WriteJSON(&buf, res); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var roundtrip executor.SuiteResult
	if err := json.Unmarshal(buf.Bytes(), &roundtrip); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if diff := cmp.Diff(res.Scenarios, roundtrip.Scenarios); diff != "" {
		t.Fatalf("scenarios mismatch (-want +got):\n%s", diff)
	}
	if roundtrip.RunID != res.RunID || roundtrip.Passed {
		t.Fatalf("roundtrip = %s passed=%v", roundtrip.RunID, roundtrip.Passed)
	}
}

func TestWriteHTMLFromJSONPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := reporter.WriteJSON(f, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	_ = f.Close()

	var buf bytes.Buffer
	if err := reporter.WriteHTMLFromJSONPath(&buf, "HRM <API>", path); err != nil {
		t.Fatalf("WriteHTMLFromJSONPath: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"HRM &lt;API&gt;",
		"Status: <strong class=\"fail\">FAIL</strong>",
		"Passed: 2",
		"Failed: 1",
		"HTTP/1.1 401 Unauthorized",
		"status: got 401, want 200",
		"data list, 1 records",
		"&#34;title&#34;: &#34;QA Engineer&#34;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}

	if err := reporter.WriteHTMLFromJSONPath(&buf, "x", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing results.json")
	}
}
