package ir_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"hrm-qa/internal/ir"
)

func TestIR_Basics(t *testing.T) {
	cat := ir.Catalog{
		Name: "HRM API",
		Scenarios: []ir.Scenario{
			{
				Name:      "PostCustomField",
				Priority:  9,
				Groups:    []string{"PL1"},
				Operation: "PostCustomField",
				Data:      &ir.Data{Sheet: "PostCustomField", Body: "customField"},
				Expect: []ir.Expectation{
					{Type: ir.ExpectStatus, Value: 200},
					{Type: ir.ExpectNonNull, Fields: []string{"id"}},
				},
			},
		},
	}

	if diff := cmp.Diff("HRM API", cat.Name); diff != "" {
		t.Fatalf("catalog name mismatch (-want +got):\n%s", diff)
	}
	if got, want := len(cat.Scenarios), 1; got != want {
		t.Fatalf("scenarios len = %d, want %d", got, want)
	}

	sc := cat.Scenarios[0]
	if sc.Data == nil || sc.Data.Sheet != "PostCustomField" {
		t.Fatalf("data = %+v, want sheet PostCustomField", sc.Data)
	}
	if len(sc.Expect) != 2 {
		t.Fatalf("expect len = %d, want 2", len(sc.Expect))
	}
}

func TestIR_JSONOmitsEmpty(t *testing.T) {
	b, err := json.Marshal(ir.Scenario{Name: "GetJobTitle", Operation: "GetJobTitle"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"GetJobTitle","priority":0,"operation":"GetJobTitle"}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}
