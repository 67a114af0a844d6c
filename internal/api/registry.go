package api

import (
	"context"
	_ "embed"
	"net/http"
	"sort"

	"hrm-qa/internal/extract"
)

//go:embed operations.go
var operationsSource []byte

// OperationsFile is the name under which Source is reported.
const OperationsFile = "internal/api/operations.go"

// Source returns the source text of the operations, as compiled into the
// binary, for source-token checks.
func Source() []byte {
	return append([]byte(nil), operationsSource...)
}

// Call invokes one operation on c.
type Call func(c *Client, ctx context.Context, endpoint string, body *string) (*Response, error)

// Operation describes one API operation.
type Operation struct {
	Name     string
	Method   string
	Endpoint string // default endpoint
	Shape    extract.Shape
	Fields   []string
	Call     Call
}

var operations = map[string]Operation{
	"GetEmpStatus": {
		Method: http.MethodGet, Endpoint: "/web/index.php/api/v2/admin/employment-statuses?limit=0",
		Shape: extract.ShapeList, Fields: EmpStatusFields, Call: (*Client).GetEmpStatus,
	},
	"GetJobTitle": {
		Method: http.MethodGet, Endpoint: "/web/index.php/api/v2/admin/job-titles?limit=0",
		Shape: extract.ShapeList, Fields: JobTitleFields, Call: (*Client).GetJobTitle,
	},
	"GetAdminSubunit": {
		Method: http.MethodGet, Endpoint: "/web/index.php/api/v2/admin/subunits",
		Shape: extract.ShapeList, Fields: SubunitFields, Call: (*Client).GetAdminSubunit,
	},
	"GetPimEmp": {
		Method: http.MethodGet, Endpoint: "/web/index.php/api/v2/pim/employees",
		Shape: extract.ShapeList, Fields: EmployeeFields, Call: (*Client).GetPimEmp,
	},
	"GetReportASC": {
		Method: http.MethodGet, Endpoint: "/web/index.php/api/v2/pim/reports/defined?limit=50&offset=0&sortField=report.name&sortOrder=ASC",
		Shape: extract.ShapeList, Fields: ReportFields, Call: (*Client).GetReportASC,
	},
	"GetLeaveEligibility": {
		Method: http.MethodGet, Endpoint: "/web/index.php/api/v2/leave/leave-types/eligible?includeAllocated=true",
		Shape: extract.ShapeList, Fields: LeaveEligibilityFields, Call: (*Client).GetLeaveEligibility,
	},
	"PutAdminConfig": {
		Method: http.MethodPut, Endpoint: "/web/index.php/api/v2/admin/ldap-config",
		Shape: extract.ShapeRecord, Fields: LDAPConfigFields, Call: (*Client).PutAdminConfig,
	},
	"PutOptionalField": {
		Method: http.MethodPut, Endpoint: "/web/index.php/api/v2/pim/optional-field",
		Shape: extract.ShapeRecord, Fields: OptionalFieldFields, Call: (*Client).PutOptionalField,
	},
	"PostCustomField": {
		Method: http.MethodPost, Endpoint: "/web/index.php/api/v2/pim/custom-fields",
		Shape: extract.ShapeRecord, Fields: CustomFieldFields, Call: (*Client).PostCustomField,
	},
	"PutCustomField": {
		Method: http.MethodPut, Endpoint: "/web/index.php/api/v2/pim/custom-fields/1",
		Shape: extract.ShapeRecord, Fields: CustomFieldFields, Call: (*Client).PutCustomField,
	},
}

// Lookup returns the operation called name.
func Lookup(name string) (Operation, bool) {
	op, ok := operations[name]
	if ok {
		op.Name = name
	}
	return op, ok
}

// Operations returns every operation sorted by name.
func Operations() []Operation {
	out := make([]Operation, 0, len(operations))
	for name := range operations {
		op, _ := Lookup(name)
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Invoke calls the named operation. ok is false for an unknown name.
func (c *Client) Invoke(ctx context.Context, name, endpoint string, body *string) (resp *Response, ok bool, err error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, false, nil
	}
	if endpoint == "" {
		endpoint = op.Endpoint
	}
	resp, err = op.Call(c, ctx, endpoint, body)
	return resp, true, err
}
