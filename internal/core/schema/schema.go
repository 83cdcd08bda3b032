package schema

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/zengine/zengine/pkg/encoding"
)

// FieldKind is the wire-level kind of a schema field.
type FieldKind uint8

const (
	KindUnknown FieldKind = iota
	KindBool
	KindInt
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindString
)

// String returns the descriptor-grammar name of the kind.
func (k FieldKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind ride as JSON numbers.
func (k FieldKind) Numeric() bool {
	switch k {
	case KindInt, KindInt64, KindUint64, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// ParseKind maps a descriptor-grammar name to a FieldKind.
func ParseKind(s string) (FieldKind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "int64":
		return KindInt64, nil
	case "uint64":
		return KindUint64, nil
	case "float32":
		return KindFloat32, nil
	case "float64":
		return KindFloat64, nil
	case "string":
		return KindString, nil
	default:
		return KindUnknown, fmt.Errorf("%w: unknown kind %q", ErrInvalidSchema, s)
	}
}

// FieldSchema describes one field of a serializable type: its wire name, kind,
// default value and optional numeric bounds.
type FieldSchema struct {
	Name     string
	Kind     FieldKind
	Required bool
	Default  any
	Min      *float64
	Max      *float64
}

// TypeSchema is an explicit, hand-built (or generated) descriptor of a
// serializable type. It replaces source-annotation parsing: the descriptor is
// the single source of truth for validation and the JSON wire form.
type TypeSchema struct {
	name    string
	version string
	fields  []FieldSchema
	byName  map[string]int
	doc     string
}

// envelope is the wire form produced by Serialize.
type envelope struct {
	Type    string         `json:"type"`
	Version string         `json:"version"`
	Data    map[string]any `json:"data"`
}

// NewTypeSchema builds a descriptor and checks it for internal consistency.
func NewTypeSchema(name, version string, fields ...FieldSchema) (*TypeSchema, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrInvalidSchema)
	}
	if version == "" {
		return nil, fmt.Errorf("%w: empty version for type %s", ErrInvalidSchema, name)
	}

	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: unnamed field in type %s", ErrInvalidSchema, name)
		}
		if f.Kind == KindUnknown {
			return nil, fmt.Errorf("%w: field %s.%s has unknown kind", ErrInvalidSchema, name, f.Name)
		}
		if _, exists := byName[f.Name]; exists {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, name, f.Name)
		}
		byName[f.Name] = i
	}

	return &TypeSchema{
		name:    name,
		version: version,
		fields:  fields,
		byName:  byName,
	}, nil
}

// MustTypeSchema is NewTypeSchema for statically known descriptors.
func MustTypeSchema(name, version string, fields ...FieldSchema) *TypeSchema {
	s, err := NewTypeSchema(name, version, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// TypeID derives the stable numeric identifier of a type name. The hash is
// deterministic across processes, unlike a registration counter.
func TypeID(name string) uint64 {
	return xxhash.Sum64String(name)
}

func (s *TypeSchema) Name() string    { return s.name }
func (s *TypeSchema) Version() string { return s.version }
func (s *TypeSchema) ID() uint64      { return TypeID(s.name) }

// Fields returns the ordered field descriptors.
func (s *TypeSchema) Fields() []FieldSchema {
	out := make([]FieldSchema, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the descriptor of the named field.
func (s *TypeSchema) Field(name string) (FieldSchema, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldSchema{}, false
	}
	return s.fields[i], true
}

// WithDocumentation attaches a documentation string to the descriptor.
func (s *TypeSchema) WithDocumentation(doc string) *TypeSchema {
	s.doc = doc
	return s
}

func (s *TypeSchema) Documentation() string { return s.doc }

// Default returns a field map populated with every field's default value.
func (s *TypeSchema) Default() map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = f.Default
	}
	return out
}

// Validate checks a value against the descriptor. The value may be a struct
// with matching JSON tags or a field map; it is normalized through the JSON
// form either way.
func (s *TypeSchema) Validate(v any) error {
	data, err := encoding.ToMap(v)
	if err != nil {
		return fmt.Errorf("validate %s: %w", s.name, err)
	}
	return s.validateMap(data)
}

func (s *TypeSchema) validateMap(data map[string]any) error {
	for name := range data {
		if _, ok := s.byName[name]; !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, s.name, name)
		}
	}
	for _, f := range s.fields {
		raw, present := data[f.Name]
		if !present || raw == nil {
			if f.Required {
				return fmt.Errorf("%w: %s.%s", ErrMissingField, s.name, f.Name)
			}
			continue
		}
		if err := validateField(s.name, f, raw); err != nil {
			return err
		}
	}
	return nil
}

func validateField(typeName string, f FieldSchema, raw any) error {
	switch f.Kind {
	case KindBool:
		if _, ok := raw.(bool); !ok {
			return kindError(typeName, f, raw)
		}
	case KindString:
		if _, ok := raw.(string); !ok {
			return kindError(typeName, f, raw)
		}
	default:
		// JSON numbers normalize to float64.
		n, ok := raw.(float64)
		if !ok {
			return kindError(typeName, f, raw)
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Errorf("%w: %s.%s = %v below minimum %v",
				ErrFieldConstraint, typeName, f.Name, n, *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Errorf("%w: %s.%s = %v above maximum %v",
				ErrFieldConstraint, typeName, f.Name, n, *f.Max)
		}
	}
	return nil
}

func kindError(typeName string, f FieldSchema, raw any) error {
	return fmt.Errorf("%w: %s.%s expects %s, got %T",
		ErrFieldKind, typeName, f.Name, f.Kind, raw)
}

// Serialize validates a value and wraps its JSON form in a typed envelope.
func (s *TypeSchema) Serialize(v any) ([]byte, error) {
	data, err := encoding.ToMap(v)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", s.name, err)
	}
	if err = s.validateMap(data); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	return json.Marshal(envelope{Type: s.name, Version: s.version, Data: data})
}

// Deserialize unwraps an envelope, checks the type and version stamps and
// validates the payload. Absent optional fields are filled with defaults.
func (s *TypeSchema) Deserialize(raw []byte) (map[string]any, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("deserialize %s: %w", s.name, err)
	}
	if env.Type != s.name {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, s.name, env.Type)
	}
	if env.Version != s.version {
		return nil, fmt.Errorf("%w: %s expected %s, got %s",
			ErrVersionMismatch, s.name, s.version, env.Version)
	}
	if env.Data == nil {
		env.Data = make(map[string]any)
	}
	if err := s.validateMap(env.Data); err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}
	for _, f := range s.fields {
		if _, present := env.Data[f.Name]; !present {
			env.Data[f.Name] = f.Default
		}
	}
	return env.Data, nil
}

// Bound is a convenience constructor for constraint pointers.
func Bound(v float64) *float64 { return &v }
