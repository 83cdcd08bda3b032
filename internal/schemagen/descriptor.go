// Package schemagen generates Go schema constructors from YAML type
// descriptors. The descriptor grammar is deliberately small: a type name, a
// wire version and a flat field list with kinds, defaults and numeric bounds.
package schemagen

import (
	"fmt"
	"io"
	"os"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/zengine/zengine/internal/core/schema"
)

// Descriptor is the parsed form of a schema descriptor file.
type Descriptor struct {
	Type    string            `yaml:"type"`
	Version string            `yaml:"version"`
	Doc     string            `yaml:"doc,omitempty"`
	Fields  []FieldDescriptor `yaml:"fields"`
}

// FieldDescriptor describes one field in the descriptor grammar.
type FieldDescriptor struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Required bool     `yaml:"required,omitempty"`
	Default  any      `yaml:"default,omitempty"`
	Min      *float64 `yaml:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty"`
}

// LoadDescriptor parses and validates a descriptor from a reader.
func LoadDescriptor(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDescriptorFile parses and validates a descriptor file.
func LoadDescriptorFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer f.Close()
	return LoadDescriptor(f)
}

func (d *Descriptor) validate() error {
	if !isExportedIdent(d.Type) {
		return fmt.Errorf("descriptor type %q must be an exported Go identifier", d.Type)
	}
	if d.Version == "" {
		return fmt.Errorf("descriptor %s: missing version", d.Type)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("descriptor %s: no fields", d.Type)
	}

	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("descriptor %s: unnamed field", d.Type)
		}
		if seen[f.Name] {
			return fmt.Errorf("descriptor %s: duplicate field %q", d.Type, f.Name)
		}
		seen[f.Name] = true

		kind, err := schema.ParseKind(f.Kind)
		if err != nil {
			return fmt.Errorf("descriptor %s: field %q: %w", d.Type, f.Name, err)
		}
		if (f.Min != nil || f.Max != nil) && !kind.Numeric() {
			return fmt.Errorf("descriptor %s: field %q: bounds on non-numeric kind %s",
				d.Type, f.Name, f.Kind)
		}
		if f.Default != nil {
			if err = checkDefault(kind, f.Default); err != nil {
				return fmt.Errorf("descriptor %s: field %q: %w", d.Type, f.Name, err)
			}
		}
	}
	return nil
}

func checkDefault(kind schema.FieldKind, v any) error {
	switch kind {
	case schema.KindBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("default %v is not a bool", v)
		}
	case schema.KindString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("default %v is not a string", v)
		}
	default:
		if _, err := toFloat(v); err != nil {
			return err
		}
	}
	return nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("default %v (%T) is not numeric", v, v)
	}
}

func isExportedIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
