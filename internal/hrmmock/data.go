package hrmmock

var employmentStatuses = []map[string]any{
	{"id": 1, "name": "Freelance"},
	{"id": 2, "name": "Full-Time Contract"},
	{"id": 3, "name": "Full-Time Permanent"},
	{"id": 4, "name": "Part-Time Internship"},
}

var jobTitles = []map[string]any{
	{"id": 1, "title": "Account Assistant", "description": nil, "note": nil},
	{"id": 2, "title": "Chief Executive Officer", "description": nil, "note": nil},
	{"id": 3, "title": "QA Engineer", "description": nil, "note": nil},
}

var subunits = []map[string]any{
	{"id": 1, "title": "OrangeHRM", "unitId": nil, "description": nil, "level": 0, "left": 1, "right": 8},
	{"id": 2, "title": "Administration", "unitId": "ADM", "description": "", "level": 1, "left": 2, "right": 3},
	{"id": 3, "title": "Engineering", "unitId": "ENG", "description": "Development and QA", "level": 1, "left": 4, "right": 7},
	{"id": 4, "title": "Quality Assurance", "unitId": "QA", "description": "", "level": 2, "left": 5, "right": 6},
}

var employees = []map[string]any{
	{"empNumber": 7, "lastName": "Collings", "firstName": "Paul", "middleName": "", "employeeId": "0001", "terminationId": nil},
	{"empNumber": 8, "lastName": "Ngomo", "firstName": "Amara", "middleName": "", "employeeId": "0002", "terminationId": nil},
	{"empNumber": 9, "lastName": "Tanaka", "firstName": "Rin", "middleName": "", "employeeId": "0003", "terminationId": nil},
}

var reports = []map[string]any{
	{"id": 1, "name": "All Employee Sub Unit Hierarchy Report"},
	{"id": 2, "name": "Employee Contact info report"},
	{"id": 3, "name": "Employee Job Details"},
}

var leaveTypes = []map[string]any{
	{"id": 1, "name": "CAN - Bereavement", "deleted": false, "situational": false},
	{"id": 2, "name": "CAN - FMLA", "deleted": false, "situational": true},
	{"id": 3, "name": "CAN - Personal", "deleted": false, "situational": false},
}

var ldapKeys = []string{
	"enable", "hostname", "port", "encryption", "ldapImplementation", "bindAnonymously",
	"bindUserDN", "userLookupSettings", "dataMapping",
	"mergeLDAPUsersWithExistingSystemUsers", "syncInterval",
}

func defaultLDAP() map[string]any {
	return map[string]any{
		"enable":              false,
		"hostname":            "localhost",
		"port":                389,
		"encryption":          "none",
		"ldapImplementation":  "OpenLDAP",
		"bindAnonymously":     true,
		"bindUserDN":          nil,
		"hasBindUserPassword": false,
		"userLookupSettings": []any{map[string]any{
			"baseDN":                  "",
			"searchScope":             "sub",
			"userNameAttribute":       "cn",
			"userSearchFilter":        "",
			"userUniqueIdAttribute":   nil,
			"employeeSelectorMapping": []any{},
		}},
		"dataMapping": map[string]any{
			"firstName":  "givenName",
			"middleName": "",
			"lastName":   "sn",
			"workEmail":  nil,
			"employeeId": nil,
			"userStatus": nil,
		},
		"mergeLDAPUsersWithExistingSystemUsers": false,
		"syncInterval":                          60,
	}
}
