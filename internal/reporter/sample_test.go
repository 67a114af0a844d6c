package reporter_test

import "hrm-qa/internal/executor"

func sampleResult() *executor.SuiteResult {
	return &executor.SuiteResult{
		RunID:      "5d0c2f7e-2a43-4b8e-9d6c-0d1f3e1a7b20",
		Name:       "HRM REST API",
		Passed:     false,
		DurationMs: 1234,
		Scenarios: []executor.ScenarioResult{
			{
				Name:       "Login",
				Passed:     true,
				DurationMs: 900,
				Steps:      []executor.StepResult{{Name: "Login", Passed: true, DurationMs: 900}},
			},
			{
				Name:       "GetJobTitle",
				Operation:  "GetJobTitle",
				Priority:   2,
				Groups:     []string{"PL1"},
				Passed:     true,
				DurationMs: 45.5,
				Steps: []executor.StepResult{{
					Name: "GetJobTitle", Passed: true, DurationMs: 45.5,
					Method: "GET", URL: "http://hrm.local/web/index.php/api/v2/admin/job-titles?limit=0",
					StatusCode: 200, StatusLine: "HTTP/1.1 200 OK",
					RespHeaders: map[string][]string{"Content-Type": {"application/json"}},
					RespBody:    `{"data":[{"id":1,"title":"QA Engineer"}]}`,
					Shape:       "list", Records: 1,
				}},
			},
			{
				Name:       "PutCustomField",
				Operation:  "PutCustomField",
				Priority:   10,
				Groups:     []string{"PL1"},
				Passed:     false,
				DurationMs: 77.5,
				Steps: []executor.StepResult{{
					Name: "PutCustomField", Passed: false, DurationMs: 77.5,
					Method: "PUT", URL: "http://hrm.local/web/index.php/api/v2/pim/custom-fields/1",
					ReqBody:    `{"fieldName": "Blood Group","screen": "personal","fieldType": 1,"extraData": "A+"}`,
					StatusCode: 401, StatusLine: "HTTP/1.1 401 Unauthorized",
					Errors: []string{"status: got 401, want 200"},
				}},
			},
		},
	}
}
