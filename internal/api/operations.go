package api

import (
	"context"
	"net/http"
)

// Fields extracted by each operation.
var (
	EmpStatusFields        = []string{"id", "name"}
	JobTitleFields         = []string{"id", "title"}
	SubunitFields          = []string{"id", "title", "unitId", "description", "level", "left", "right"}
	EmployeeFields         = []string{"empNumber", "lastName", "firstName", "employeeId"}
	ReportFields           = []string{"id", "name"}
	LeaveEligibilityFields = []string{"id", "name", "deleted", "situational"}
	LDAPConfigFields       = []string{
		"enable", "hostname", "port", "encryption", "ldapImplementation", "bindAnonymously",
		"bindUserDN", "hasBindUserPassword", "userLookupSettings", "dataMapping",
		"mergeLDAPUsersWithExistingSystemUsers", "syncInterval",
	}
	OptionalFieldFields = []string{"pimShowDeprecatedFields", "showSIN", "showSSN", "showTaxExemptions"}
	CustomFieldFields   = []string{"id", "fieldName", "fieldType", "extraData", "screen"}
)

// GetEmpStatus lists employment statuses.
func (c *Client) GetEmpStatus(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, EmpStatusFields...)
}

// GetJobTitle lists job titles.
func (c *Client) GetJobTitle(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, JobTitleFields...)
}

// GetAdminSubunit lists organization units with their tree position.
func (c *Client) GetAdminSubunit(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, SubunitFields...)
}

// GetPimEmp lists employees.
func (c *Client) GetPimEmp(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, EmployeeFields...)
}

// GetReportASC lists defined reports.
func (c *Client) GetReportASC(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, ReportFields...)
}

// GetLeaveEligibility lists the leave types an employee is eligible for.
func (c *Client) GetLeaveEligibility(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, LeaveEligibilityFields...)
}

// PutAdminConfig replaces the LDAP configuration.
func (c *Client) PutAdminConfig(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, LDAPConfigFields...)
}

// PutOptionalField toggles the optional PIM fields.
func (c *Client) PutOptionalField(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, OptionalFieldFields...)
}

// PostCustomField creates a custom field.
func (c *Client) PostCustomField(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, CustomFieldFields...)
}

// PutCustomField updates the custom field the endpoint names.
func (c *Client) PutCustomField(ctx context.Context, endpoint string, body *string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, err
	}
	c.withSession(req)
	return c.send(req, CustomFieldFields...)
}
