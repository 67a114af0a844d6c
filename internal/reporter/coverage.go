package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"hrm-qa/internal/contract"
)

type CoverageReport struct {
	Total        int      `json:"total"`
	Covered      int      `json:"covered"`
	Percent      float64  `json:"percent"`
	CoveredSet   []string `json:"covered_set"`
	UncoveredSet []string `json:"uncovered_set"`
}

// covered is: method -> pathTemplate -> true
func WriteCoverage(w io.Writer, doc *openapi3.T, covered map[string]map[string]bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ComputeCoverage(doc, covered))
}

func ComputeCoverage(doc *openapi3.T, covered map[string]map[string]bool) CoverageReport {
	cset := flattenCovered(covered)

	rep := CoverageReport{CoveredSet: []string{}, UncoveredSet: []string{}}
	for _, op := range contract.Operations(doc) {
		s := sig(op.Method, op.Path)
		rep.Total++
		if cset[s] {
			rep.Covered++
			rep.CoveredSet = append(rep.CoveredSet, s)
		} else {
			rep.UncoveredSet = append(rep.UncoveredSet, s)
		}
	}
	sort.Strings(rep.CoveredSet)
	sort.Strings(rep.UncoveredSet)
	rep.Percent = pct(rep.Covered, rep.Total)
	return rep
}

func flattenCovered(m map[string]map[string]bool) map[string]bool {
	out := map[string]bool{}
	for method, paths := range m {
		for path := range paths {
			out[sig(strings.ToUpper(method), path)] = true
		}
	}
	return out
}

func sig(method, path string) string { return fmt.Sprintf("%s %s", method, path) }

func pct(n, d int) float64 {
	if d == 0 {
		return 100.0
	}
	return float64(n) * 100.0 / float64(d)
}
