package testdata

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Field is one column of a template sheet.
type Field struct {
	Name  string
	Value string
}

// Sheet is a named header row plus one data row.
type Sheet struct {
	Name   string
	Fields []Field
}

// Template is the workbook layout the built-in scenarios read from.
var Template = []Sheet{
	{Name: "PutAdminConfig", Fields: []Field{
		{"enable", "true"},
		{"hostname", "localhost"},
		{"port", "389"},
		{"encryption", "none"},
		{"ldapImplementation", "OpenLDAP"},
		{"bindAnonymously", "true"},
		{"bindUserDN", "null"},
		{"bindUserPassword", "null"},
		{"baseDN", "dc=example,dc=org"},
		{"searchScope", "sub"},
		{"userNameAttribute", "cn"},
		{"userSearchFilter", "objectClass=person"},
		{"userUniqueIdAttribute", "null"},
		{"firstName", "givenName"},
		{"middleName", ""},
		{"lastName", "sn"},
		{"workEmail", "null"},
		{"employeeId", "null"},
		{"userStatus", "null"},
		{"mergeLDAPUsersWithExistingSystemUsers", "false"},
		{"syncInterval", "30"},
	}},
	{Name: "PutOptionalField", Fields: []Field{
		{"pimShowDeprecatedFields", "true"},
		{"showSIN", "true"},
		{"showSSN", "true"},
		{"showTaxExemptions", "true"},
	}},
	{Name: "PostCustomField", Fields: []Field{
		{"fieldName", "Shoe Size"},
		{"screen", "personal"},
		{"fieldType", "0.0"},
		{"extraData", "null"},
	}},
	{Name: "PutCustomField", Fields: []Field{
		{"fieldName", "Blood Group"},
		{"screen", "personal"},
		{"fieldType", "1.0"},
		{"extraData", "A+,B+,O+,AB+"},
	}},
}

// Write creates a workbook at path holding sheets.
func Write(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	const initial = "Sheet1"
	keepInitial := len(sheets) == 0
	for _, sh := range sheets {
		if sh.Name == initial {
			keepInitial = true
		}
		if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sh.Name, err)
		}
		header := make([]any, len(sh.Fields))
		values := make([]any, len(sh.Fields))
		for i, fd := range sh.Fields {
			header[i] = fd.Name
			values[i] = fd.Value
		}
		if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
			return fmt.Errorf("write header %q: %w", sh.Name, err)
		}
		if err := f.SetSheetRow(sh.Name, "A2", &values); err != nil {
			return fmt.Errorf("write values %q: %w", sh.Name, err)
		}
	}
	if !keepInitial {
		if err := f.DeleteSheet(initial); err != nil {
			return fmt.Errorf("drop %s: %w", initial, err)
		}
		f.SetActiveSheet(0)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
