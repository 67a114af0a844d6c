package parser

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"hrm-qa/internal/ir"
)

var ErrValidation = errors.New("validation error")

// DefaultCatalog is the built-in scenario catalog.
//
//go:embed catalog.yaml
var DefaultCatalog []byte

type Parser struct {
	operations map[string]bool
	bodies     map[string]bool
}

func New() *Parser { return &Parser{} }

// WithOperations restricts scenario operations to names.
func (p *Parser) WithOperations(names ...string) *Parser {
	p.operations = toSet(names)
	return p
}

// WithBodies restricts data.body to names.
func (p *Parser) WithBodies(names ...string) *Parser {
	p.bodies = toSet(names)
	return p
}

// ParseBytes parses YAML (or JSON) into IR and validates it. Scenarios are
// returned in ascending priority; equal priorities keep document order.
func (p *Parser) ParseBytes(b []byte) (*ir.Catalog, error) {
	var cat ir.Catalog

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true) // fail on unknown fields

	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := p.validateCatalog(&cat); err != nil {
		return nil, err
	}

	sort.SliceStable(cat.Scenarios, func(i, j int) bool {
		return cat.Scenarios[i].Priority < cat.Scenarios[j].Priority
	})
	return &cat, nil
}

// Default parses DefaultCatalog.
func (p *Parser) Default() (*ir.Catalog, error) {
	return p.ParseBytes(DefaultCatalog)
}

// --- validation helpers ---

func (p *Parser) validateCatalog(c *ir.Catalog) error {
	if c.Name == "" {
		return wrapValidation("catalog.name must not be empty")
	}
	if len(c.Scenarios) == 0 {
		return wrapValidation("catalog.scenarios must not be empty")
	}
	seen := map[string]bool{}
	for i := range c.Scenarios {
		sc := &c.Scenarios[i]
		if err := p.validateScenario(sc, i); err != nil {
			return err
		}
		if seen[sc.Name] {
			return wrapValidation(fmt.Sprintf("scenario[%d].name %q is not unique", i, sc.Name))
		}
		seen[sc.Name] = true
	}
	return nil
}

func (p *Parser) validateScenario(sc *ir.Scenario, idx int) error {
	if sc.Name == "" {
		return wrapValidation(fmt.Sprintf("scenario[%d].name must not be empty", idx))
	}
	if sc.Operation == "" {
		return wrapValidation(fmt.Sprintf("scenario[%d].operation must not be empty", idx))
	}
	if p.operations != nil && !p.operations[sc.Operation] {
		return wrapValidation(fmt.Sprintf("scenario[%d].operation %q is unknown", idx, sc.Operation))
	}
	if sc.Endpoint != "" && !strings.HasPrefix(sc.Endpoint, "/") {
		return wrapValidation(fmt.Sprintf("scenario[%d].endpoint must start with /", idx))
	}
	if sc.Data != nil {
		if sc.Data.Sheet == "" {
			return wrapValidation(fmt.Sprintf("scenario[%d].data.sheet must not be empty", idx))
		}
		if sc.Data.Body == "" {
			return wrapValidation(fmt.Sprintf("scenario[%d].data.body must not be empty", idx))
		}
		if p.bodies != nil && !p.bodies[sc.Data.Body] {
			return wrapValidation(fmt.Sprintf("scenario[%d].data.body %q is unknown", idx, sc.Data.Body))
		}
	}
	for j := range sc.Expect {
		if err := validateExpectation(&sc.Expect[j], idx, j); err != nil {
			return err
		}
	}
	return nil
}

func validateExpectation(e *ir.Expectation, i, j int) error {
	at := fmt.Sprintf("scenario[%d].expect[%d]", i, j)
	switch e.Type {
	case ir.ExpectStatus:
		if _, ok := e.Value.(int); !ok {
			return wrapValidation(at + ".value must be an integer status code")
		}
	case ir.ExpectStatusLine:
		if s, ok := e.Value.(string); !ok || s == "" {
			return wrapValidation(at + ".value must be a non-empty status line")
		}
	case ir.ExpectNonEmpty, ir.ExpectNonNull:
		if len(e.Fields) == 0 {
			return wrapValidation(at + ".fields must not be empty")
		}
	case ir.ExpectTokens:
		if len(e.Tokens) == 0 {
			return wrapValidation(at + ".tokens must not be empty")
		}
	case ir.ExpectContract:
	default:
		return wrapValidation(fmt.Sprintf("%s.type %q is unknown", at, e.Type))
	}
	return nil
}

func wrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
