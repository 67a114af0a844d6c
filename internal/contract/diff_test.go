package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"hrm-qa/internal/contract"
)

const docA = `
openapi: 3.0.3
info: {title: A, version: "1"}
paths:
  /web/index.php/api/v2/pim/custom-fields:
    get:  { responses: {"200": {description: ok}} }
    post:
      responses:
        "200":
          description: created
          content:
            application/json:
              schema:
                type: object
                properties:
                  data:
                    type: object
                    properties:
                      id: { type: integer }
                      fieldName: { type: string }
                      extraData: { type: string }
  /web/index.php/api/v2/admin/subunits:
    get:  { responses: {"200": {description: ok}} }
`

const docB = `
openapi: 3.0.3
info: {title: B, version: "1"}
paths:
  /web/index.php/api/v2/pim/custom-fields:
    get:  { responses: {"200": {description: ok}, "401": {description: expired}} }
    post:
      responses:
        "200":
          description: created
          content:
            application/json:
              schema:
                type: object
                properties:
                  data:
                    type: object
                    properties:
                      id: { type: integer }
                      fieldName: { type: string }
                      screen: { type: string }
  /web/index.php/api/v2/admin/job-titles:
    get:  { responses: {"200": {description: ok}} }
`

func TestDiff_BasicAddRemoveAndStatus(t *testing.T) {
	a, err := contract.LoadFromBytes([]byte(docA))
	if err != nil {
		t.Fatalf("load A: %v", err)
	}
	b, err := contract.LoadFromBytes([]byte(docB))
	if err != nil {
		t.Fatalf("load B: %v", err)
	}

	rep := contract.DiffDocs(a.Doc(), b.Doc())

	want := contract.DiffReport{
		Added:   []contract.OpSig{{Method: "GET", Path: "/web/index.php/api/v2/admin/job-titles"}},
		Removed: []contract.OpSig{{Method: "GET", Path: "/web/index.php/api/v2/admin/subunits"}},
		ChangedStatus: []contract.StatusChange{{
			Method: "GET", Path: "/web/index.php/api/v2/pim/custom-fields",
			A: []string{"200"}, B: []string{"200", "401"},
		}},
		ChangedFields: []contract.FieldChange{{
			Method: "POST", Path: "/web/index.php/api/v2/pim/custom-fields",
			Removed: []string{"extraData"}, Added: []string{"screen"},
		}},
	}
	if diff := cmp.Diff(want, rep); diff != "" {
		bs, _ := json.Marshal(rep)
		t.Fatalf("diff report mismatch (-want +got):\n%s\n%s", diff, bs)
	}
	if rep.Empty() {
		t.Fatal("report should not be empty")
	}
}

func TestDiff_SameDocument(t *testing.T) {
	v, err := contract.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	rep := contract.DiffDocs(v.Doc(), v.Doc())
	if !rep.Empty() {
		t.Fatalf("expected no changes, got %+v", rep)
	}
}
