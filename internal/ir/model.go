package ir

// Expectation types (string constants for portability)
const (
	ExpectStatus     = "status"
	ExpectStatusLine = "statusLine"
	ExpectNonEmpty   = "nonEmpty"
	ExpectNonNull    = "nonNull"
	ExpectTokens     = "tokens"
	ExpectContract   = "contract"
)

// Catalog is the ordered list of scenarios a run executes.
type Catalog struct {
	Name      string     `json:"name" yaml:"name"`
	OpenAPI   string     `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// Scenario invokes one API operation and checks its response.
type Scenario struct {
	Name        string   `json:"name" yaml:"name"`
	Priority    int      `json:"priority" yaml:"priority"`
	Groups      []string `json:"groups,omitempty" yaml:"groups,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	Operation string        `json:"operation" yaml:"operation"`
	Endpoint  string        `json:"endpoint,omitempty" yaml:"endpoint,omitempty"` // empty: operation default
	Data      *Data         `json:"data,omitempty" yaml:"data,omitempty"`
	Expect    []Expectation `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Data names the test data sheet a request body is built from.
type Data struct {
	Sheet string `json:"sheet" yaml:"sheet"`
	Body  string `json:"body" yaml:"body"` // body builder name
}

type Expectation struct {
	Type   string   `json:"type" yaml:"type"`
	Value  any      `json:"value,omitempty" yaml:"value,omitempty"`   // status, statusLine
	Fields []string `json:"fields,omitempty" yaml:"fields,omitempty"` // nonEmpty, nonNull
	Tokens []string `json:"tokens,omitempty" yaml:"tokens,omitempty"` // tokens
}
