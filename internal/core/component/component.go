package component

import (
	"github.com/zengine/zengine/internal/core/schema"
)

// ID represents a unique identifier for component types. IDs are derived from
// the type name hash, so they are stable across processes and builds.
type ID uint64

// Component represents a data container owned by a game module. Its wire form
// and validation rules come from an explicit schema descriptor instead of
// source annotations.
type Component interface {
	// Type information

	TypeID() ID
	TypeName() string
	Schema() *schema.TypeSchema

	// Validation and integrity

	Validate() error

	// Serialization

	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Clone() Component
}

// IDFor derives the component ID for a type name.
func IDFor(typeName string) ID {
	return ID(schema.TypeID(typeName))
}
