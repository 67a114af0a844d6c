package reporter

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"hrm-qa/internal/executor"
)

// -------- JSON --------

func WriteJSON(w io.Writer, res *executor.SuiteResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// -------- JUnit XML --------

// Minimal JUnit schema: testsuite -> testcase (+failure)
type junitTestsuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Time       string          `xml:"time,attr"`
	Properties []junitProperty `xml:"properties>property,omitempty"`
	Testcase   []junitTestcase `xml:"testcase"`
}

type junitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type junitTestcase struct {
	Classname string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

// WriteJUnit emits one testcase per scenario, the login included.
func WriteJUnit(w io.Writer, suiteName string, res *executor.SuiteResult) error {
	var failures int
	cases := make([]junitTestcase, 0, len(res.Scenarios))

	for _, sc := range res.Scenarios {
		tc := junitTestcase{
			Classname: classname(suiteName, sc),
			Name:      sc.Name,
			Time:      fmt.Sprintf("%.3f", sc.DurationMs/1000.0),
		}
		if !sc.Passed {
			failures++
			errs := scenarioErrors(sc)
			msg := "assertion failed"
			if len(errs) > 0 {
				msg = errs[0]
			}
			tc.Failure = &junitFailure{
				Message: msg,
				Type:    "AssertionError",
				Text:    strings.Join(errs, "\n"),
			}
		}
		cases = append(cases, tc)
	}

	ts := junitTestsuite{
		Name:     suiteName,
		Tests:    len(cases),
		Failures: failures,
		Time:     fmt.Sprintf("%.3f", res.DurationMs/1000.0),
		Testcase: cases,
	}
	if res.RunID != "" {
		ts.Properties = []junitProperty{{Name: "run_id", Value: res.RunID}}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(ts)
}

func classname(suite string, sc executor.ScenarioResult) string {
	if len(sc.Groups) == 0 {
		return suite
	}
	return suite + "." + strings.Join(sc.Groups, ".")
}

func scenarioErrors(sc executor.ScenarioResult) []string {
	var out []string
	for _, st := range sc.Steps {
		out = append(out, st.Errors...)
	}
	return out
}
