package api

import (
	"fmt"
	"strings"

	"hrm-qa/internal/coerce"
	"hrm-qa/internal/testdata"
)

// BodyBuilder renders a request body from a test data row.
type BodyBuilder func(row testdata.Row) string

// Body builder names used by the scenario catalog.
const (
	BodyLDAPConfig    = "ldapConfig"
	BodyOptionalField = "optionalField"
	BodyCustomField   = "customField"
)

var builders = map[string]BodyBuilder{
	BodyLDAPConfig:    LDAPConfigBody,
	BodyOptionalField: OptionalFieldBody,
	BodyCustomField:   CustomFieldBody,
}

// Builder looks up a body builder by catalog name.
func Builder(name string) (BodyBuilder, bool) {
	b, ok := builders[name]
	return b, ok
}

// BuilderNames lists the registered body builders.
func BuilderNames() []string {
	return []string{BodyLDAPConfig, BodyOptionalField, BodyCustomField}
}

// LDAPConfigBody renders the LDAP configuration. Every leaf goes through
// coerce.JSONValue.
func LDAPConfigBody(row testdata.Row) string {
	v := func(k string) string { return coerce.JSONValue(row.Get(k)) }

	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"enable\": %s,\n", v("enable"))
	fmt.Fprintf(&b, "  \"hostname\": %s,\n", v("hostname"))
	fmt.Fprintf(&b, "  \"port\": %s,\n", v("port"))
	fmt.Fprintf(&b, "  \"encryption\": %s,\n", v("encryption"))
	fmt.Fprintf(&b, "  \"ldapImplementation\": %s,\n", v("ldapImplementation"))
	fmt.Fprintf(&b, "  \"bindAnonymously\": %s,\n", v("bindAnonymously"))
	fmt.Fprintf(&b, "  \"bindUserDN\": %s,\n", v("bindUserDN"))
	fmt.Fprintf(&b, "  \"bindUserPassword\": %s,\n", v("bindUserPassword"))
	b.WriteString("  \"userLookupSettings\": [\n    {\n")
	fmt.Fprintf(&b, "      \"baseDN\": %s,\n", v("baseDN"))
	fmt.Fprintf(&b, "      \"searchScope\": %s,\n", v("searchScope"))
	fmt.Fprintf(&b, "      \"userNameAttribute\": %s,\n", v("userNameAttribute"))
	fmt.Fprintf(&b, "      \"userSearchFilter\": %s,\n", v("userSearchFilter"))
	fmt.Fprintf(&b, "      \"userUniqueIdAttribute\": %s,\n", v("userUniqueIdAttribute"))
	b.WriteString("      \"employeeSelectorMapping\": []\n    }\n  ],\n")
	b.WriteString("  \"dataMapping\": {\n")
	fmt.Fprintf(&b, "    \"firstName\": %s,\n", v("firstName"))
	fmt.Fprintf(&b, "    \"middleName\": %s,\n", v("middleName"))
	fmt.Fprintf(&b, "    \"lastName\": %s,\n", v("lastName"))
	fmt.Fprintf(&b, "    \"workEmail\": %s,\n", v("workEmail"))
	fmt.Fprintf(&b, "    \"employeeId\": %s,\n", v("employeeId"))
	fmt.Fprintf(&b, "    \"userStatus\": %s\n", v("userStatus"))
	b.WriteString("  },\n")
	fmt.Fprintf(&b, "  \"mergeLDAPUsersWithExistingSystemUsers\": %s,\n", v("mergeLDAPUsersWithExistingSystemUsers"))
	fmt.Fprintf(&b, "  \"syncInterval\": %s\n", v("syncInterval"))
	b.WriteString("}")
	return b.String()
}

// OptionalFieldBody renders the four optional-field flags.
func OptionalFieldBody(row testdata.Row) string {
	v := func(k string) string { return coerce.JSONValue(row.Get(k)) }
	return fmt.Sprintf("{\n    \"pimShowDeprecatedFields\": %s,\n    \"showSIN\": %s,\n    \"showSSN\": %s,\n    \"showTaxExemptions\": %s\n}",
		v("pimShowDeprecatedFields"), v("showSIN"), v("showSSN"), v("showTaxExemptions"))
}

// CustomFieldBody renders a custom field definition. fieldType is an integer
// code, extraData is a quoted string or null.
func CustomFieldBody(row testdata.Row) string {
	return fmt.Sprintf(`{"fieldName": %s,"screen": %s,"fieldType": %s,"extraData": %s}`,
		coerce.Quote(row.Get("fieldName")),
		coerce.Quote(row.Get("screen")),
		coerce.FieldType(row.Get("fieldType")),
		coerce.QuoteOrNull(row.Get("extraData")),
	)
}
