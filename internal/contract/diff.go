package contract

import (
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

type OpSig struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// JSON-friendly representation of a status change for a single op
type StatusChange struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	A      []string `json:"a"`
	B      []string `json:"b"`
}

// FieldChange lists the fields of the 200 response "data" element that one
// document has and the other lacks. Removed fields break extraction.
type FieldChange struct {
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Removed []string `json:"removed,omitempty"`
	Added   []string `json:"added,omitempty"`
}

type DiffReport struct {
	Added         []OpSig        `json:"added"`          // present in B, not in A
	Removed       []OpSig        `json:"removed"`        // present in A, not in B
	ChangedStatus []StatusChange `json:"changed_status"` // same op, different status sets
	ChangedFields []FieldChange  `json:"changed_fields"` // same op, different data fields
}

// Empty reports whether the documents describe the same operations.
func (r DiffReport) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.ChangedStatus) == 0 && len(r.ChangedFields) == 0
}

func DiffDocs(a, b *openapi3.T) DiffReport {
	opsA := listOps(a)
	opsB := listOps(b)

	rep := DiffReport{}
	for sig := range opsB {
		if opsA[sig] == nil {
			rep.Added = append(rep.Added, sig)
		}
	}
	for sig, opA := range opsA {
		opB := opsB[sig]
		if opB == nil {
			rep.Removed = append(rep.Removed, sig)
			continue
		}
		as, bs := statusCodes(opA), statusCodes(opB)
		if !equalStrings(as, bs) {
			rep.ChangedStatus = append(rep.ChangedStatus, StatusChange{Method: sig.Method, Path: sig.Path, A: as, B: bs})
		}
		fa, fb := dataFields(opA), dataFields(opB)
		if removed, added := minus(fa, fb), minus(fb, fa); len(removed) > 0 || len(added) > 0 {
			rep.ChangedFields = append(rep.ChangedFields, FieldChange{Method: sig.Method, Path: sig.Path, Removed: removed, Added: added})
		}
	}

	sortOps(rep.Added)
	sortOps(rep.Removed)
	sort.Slice(rep.ChangedStatus, func(i, j int) bool {
		return less(rep.ChangedStatus[i].Path, rep.ChangedStatus[i].Method, rep.ChangedStatus[j].Path, rep.ChangedStatus[j].Method)
	})
	sort.Slice(rep.ChangedFields, func(i, j int) bool {
		return less(rep.ChangedFields[i].Path, rep.ChangedFields[i].Method, rep.ChangedFields[j].Path, rep.ChangedFields[j].Method)
	})
	return rep
}

// Operations lists every operation of doc, sorted by path then method.
func Operations(doc *openapi3.T) []OpSig {
	ops := listOps(doc)
	out := make([]OpSig, 0, len(ops))
	for sig := range ops {
		out = append(out, sig)
	}
	sortOps(out)
	return out
}

func listOps(doc *openapi3.T) map[OpSig]*openapi3.Operation {
	out := map[OpSig]*openapi3.Operation{}
	if doc == nil || doc.Paths == nil {
		return out
	}
	for p, pi := range doc.Paths.Map() {
		if pi == nil {
			continue
		}
		for method, op := range pi.Operations() {
			out[OpSig{Method: method, Path: p}] = op
		}
	}
	return out
}

func statusCodes(op *openapi3.Operation) []string {
	out := []string{}
	if op == nil || op.Responses == nil {
		return out
	}
	for code := range op.Responses.Map() {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// dataFields returns the property names of "data" (or of its items) in the
// JSON schema of the 200 response.
func dataFields(op *openapi3.Operation) []string {
	out := []string{}
	if op == nil || op.Responses == nil {
		return out
	}
	rr := op.Responses.Status(http.StatusOK)
	if rr == nil || rr.Value == nil {
		return out
	}
	mt := rr.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return out
	}
	data := mt.Schema.Value.Properties["data"]
	if data == nil || data.Value == nil {
		return out
	}
	s := data.Value
	if s.Items != nil && s.Items.Value != nil {
		s = s.Items.Value
	}
	for name := range s.Properties {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func minus(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	var out []string
	for _, s := range a {
		if !in[s] {
			out = append(out, s)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func less(pathA, methodA, pathB, methodB string) bool {
	if pathA == pathB {
		return methodA < methodB
	}
	return pathA < pathB
}

func sortOps(ops []OpSig) {
	sort.Slice(ops, func(i, j int) bool {
		return less(ops[i].Path, ops[i].Method, ops[j].Path, ops[j].Method)
	})
}
