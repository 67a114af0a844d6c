package vars

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// LoadFiles merges key-value files in order; later files win. Files ending in
// .json, .yaml or .yml are flat objects, everything else is read as a
// Java-style .properties file.
func LoadFiles(paths []string) (map[string]string, error) {
	out := map[string]string{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}

		var m map[string]string
		switch strings.ToLower(filepath.Ext(p)) {
		case ".json":
			m, err = parseJSON(b)
		case ".yaml", ".yml":
			m, err = parseYAML(b)
		default:
			m, err = ParseProperties(b)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		for k, v := range m {
			out[k] = v
		}
	}
	return out, nil
}

func parseJSON(b []byte) (map[string]string, error) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return flatten(m), nil
}

func parseYAML(b []byte) (map[string]string, error) {
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return flatten(m), nil
}

func flatten(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case string:
			out[k] = x
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(x) // coerce numbers/bools to string
		}
	}
	return out
}

// ParseProperties reads a Java .properties file. Escapes such as "\:" and
// "\uXXXX" are decoded; ${key} references are left as written.
func ParseProperties(b []byte) (map[string]string, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(b)
	if err != nil {
		return nil, err
	}
	m := p.Map()
	if _, ok := m[""]; ok {
		return nil, errors.New("property without key")
	}
	return m, nil
}
