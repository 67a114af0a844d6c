package contract_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrm-qa/internal/api"
	"hrm-qa/internal/contract"
	"hrm-qa/internal/hrmmock"
	"hrm-qa/internal/session"
)

func mock(t *testing.T) (*api.Client, *hrmmock.Server, string) {
	t.Helper()
	m := hrmmock.New(hrmmock.Options{})
	srv := httptest.NewServer(m.Handler())
	c := api.NewClient(srv.URL, session.Token{Name: m.CookieName(), Value: m.IssueSession()})
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})
	return c, m, srv.URL
}

func TestDefaultDocument_CoversOperations(t *testing.T) {
	v, err := contract.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	ops := map[contract.OpSig]bool{}
	for _, op := range contract.Operations(v.Doc()) {
		ops[op] = true
	}
	for _, op := range api.Operations() {
		path := strings.SplitN(op.Endpoint, "?", 2)[0]
		if strings.HasSuffix(path, "/custom-fields/1") {
			path = strings.TrimSuffix(path, "1") + "{id}"
		}
		if !ops[contract.OpSig{Method: op.Method, Path: path}] {
			t.Errorf("%s %s missing from default document", op.Method, path)
		}
	}
}

func TestContract_MockResponsesConform(t *testing.T) {
	c, _, _ := mock(t)
	v, err := contract.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}

	bodies := map[string]string{
		"PutAdminConfig":   `{"enable": true, "hostname": "ldap.local", "port": 389, "bindUserPassword": null, "syncInterval": 30}`,
		"PutOptionalField": `{"pimShowDeprecatedFields": true, "showSIN": true, "showSSN": true, "showTaxExemptions": true}`,
		"PostCustomField":  `{"fieldName": "Shoe Size","screen": "personal","fieldType": 0,"extraData": null}`,
		"PutCustomField":   `{"fieldName": "Blood Group","screen": "personal","fieldType": 1,"extraData": "A+"}`,
	}
	for _, op := range api.Operations() {
		var body *string
		if b, ok := bodies[op.Name]; ok {
			body = &b
		}
		resp, _, err := c.Invoke(context.Background(), op.Name, "", body)
		if err != nil {
			t.Fatalf("%s: %v", op.Name, err)
		}
		path, method, err := v.ValidateResponse(context.Background(), resp.Method, resp.URL, resp.StatusCode, resp.Header, resp.Body)
		if err != nil {
			t.Errorf("%s: contract: %v", op.Name, err)
		}
		if method != op.Method || !strings.HasPrefix(path, "/web/index.php/api/v2/") {
			t.Errorf("%s: route = %s %s", op.Name, method, path)
		}
	}
}

func TestContract_UnauthorizedIsDocumented(t *testing.T) {
	_, _, base := mock(t)
	v, err := contract.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	stale := api.NewClient(base, session.Token{Name: "orangehrm", Value: "stale"})
	defer stale.CloseIdleConnections()

	resp, err := stale.GetPimEmp(context.Background(), "/web/index.php/api/v2/pim/employees", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if _, _, err := v.ValidateResponse(context.Background(), resp.Method, resp.URL, resp.StatusCode, resp.Header, resp.Body); err != nil {
		t.Fatalf("401 should conform: %v", err)
	}
}

func TestContract_Violations(t *testing.T) {
	v, err := contract.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	ctx := context.Background()
	jsonHdr := map[string][]string{"Content-Type": {"application/json"}}
	url := "http://hrm.local/web/index.php/api/v2/admin/job-titles?limit=0"

	cases := map[string]struct {
		status int
		header map[string][]string
		body   any
	}{
		"missing data":         {200, jsonHdr, map[string]any{"meta": map[string]any{}}},
		"wrong field type":     {200, jsonHdr, map[string]any{"data": []any{map[string]any{"id": "one", "title": "QA"}}}},
		"undocumented status":  {500, jsonHdr, map[string]any{"error": map[string]any{}}},
		"missing content type": {200, map[string][]string{}, map[string]any{"data": []any{}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b, _ := json.Marshal(tc.body)
			if _, _, err := v.ValidateResponse(ctx, http.MethodGet, url, tc.status, tc.header, b); err == nil {
				t.Fatal("expected contract violation")
			}
		})
	}

	if _, _, err := v.ValidateResponse(ctx, http.MethodDelete, url, 200, jsonHdr, nil); err == nil {
		t.Fatal("expected route not found")
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	v, err := contract.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.Doc().Info.Title == "" {
		t.Fatal("default document has no title")
	}
	if _, err := contract.Load("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
