package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func playerSchema(t *testing.T) *TypeSchema {
	t.Helper()
	s, err := NewTypeSchema("Player", "v1",
		FieldSchema{Name: "health", Kind: KindFloat32, Required: true, Default: float64(100), Min: Bound(0), Max: Bound(100)},
		FieldSchema{Name: "level", Kind: KindInt, Required: true, Default: float64(1), Min: Bound(1)},
		FieldSchema{Name: "name", Kind: KindString, Default: "Player"},
	)
	require.NoError(t, err)
	return s
}

func TestNewTypeSchema(t *testing.T) {
	t.Run("TypeSchema: rejects empty name and version", func(t *testing.T) {
		_, err := NewTypeSchema("", "v1")
		require.ErrorIs(t, err, ErrInvalidSchema)

		_, err = NewTypeSchema("Player", "")
		require.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("TypeSchema: rejects duplicate and malformed fields", func(t *testing.T) {
		_, err := NewTypeSchema("Player", "v1",
			FieldSchema{Name: "health", Kind: KindFloat32},
			FieldSchema{Name: "health", Kind: KindFloat64},
		)
		require.ErrorIs(t, err, ErrDuplicateField)

		_, err = NewTypeSchema("Player", "v1", FieldSchema{Name: "", Kind: KindInt})
		require.ErrorIs(t, err, ErrInvalidSchema)

		_, err = NewTypeSchema("Player", "v1", FieldSchema{Name: "x", Kind: KindUnknown})
		require.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("TypeSchema: stable hashed ID", func(t *testing.T) {
		s := playerSchema(t)
		require.Equal(t, TypeID("Player"), s.ID())
		require.NotEqual(t, TypeID("Player"), TypeID("Enemy"))
	})
}

func TestSchemaValidate(t *testing.T) {
	s := playerSchema(t)

	t.Run("Validate: accepts a conforming value", func(t *testing.T) {
		require.NoError(t, s.Validate(map[string]any{
			"health": 55.5,
			"level":  3,
			"name":   "Hero",
		}))
	})

	t.Run("Validate: missing required field", func(t *testing.T) {
		err := s.Validate(map[string]any{"level": 3})
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("Validate: optional field may be absent", func(t *testing.T) {
		require.NoError(t, s.Validate(map[string]any{"health": 10, "level": 1}))
	})

	t.Run("Validate: unknown field rejected", func(t *testing.T) {
		err := s.Validate(map[string]any{"health": 10, "level": 1, "mana": 50})
		require.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("Validate: kind mismatch rejected", func(t *testing.T) {
		err := s.Validate(map[string]any{"health": "full", "level": 1})
		require.ErrorIs(t, err, ErrFieldKind)
	})

	t.Run("Validate: bounds enforced", func(t *testing.T) {
		err := s.Validate(map[string]any{"health": -5, "level": 1})
		require.ErrorIs(t, err, ErrFieldConstraint)

		err = s.Validate(map[string]any{"health": 150, "level": 1})
		require.ErrorIs(t, err, ErrFieldConstraint)

		err = s.Validate(map[string]any{"health": 10, "level": 0})
		require.ErrorIs(t, err, ErrFieldConstraint)
	})
}

func TestSchemaSerialize(t *testing.T) {
	s := playerSchema(t)

	t.Run("Serialize then Deserialize: round trip", func(t *testing.T) {
		raw, err := s.Serialize(map[string]any{"health": 42.5, "level": 7, "name": "Hero"})
		require.NoError(t, err)

		data, err := s.Deserialize(raw)
		require.NoError(t, err)
		require.Equal(t, 42.5, data["health"])
		require.Equal(t, float64(7), data["level"])
		require.Equal(t, "Hero", data["name"])
	})

	t.Run("Serialize: invalid value rejected", func(t *testing.T) {
		_, err := s.Serialize(map[string]any{"health": 500, "level": 1})
		require.ErrorIs(t, err, ErrFieldConstraint)
	})

	t.Run("Deserialize: type and version stamps checked", func(t *testing.T) {
		other, err := NewTypeSchema("Enemy", "v1",
			FieldSchema{Name: "health", Kind: KindFloat32},
		)
		require.NoError(t, err)
		raw, err := other.Serialize(map[string]any{"health": 1})
		require.NoError(t, err)

		_, err = s.Deserialize(raw)
		require.ErrorIs(t, err, ErrTypeMismatch)

		v2, err := NewTypeSchema("Player", "v2", s.Fields()...)
		require.NoError(t, err)
		raw, err = v2.Serialize(map[string]any{"health": 1, "level": 1})
		require.NoError(t, err)

		_, err = s.Deserialize(raw)
		require.ErrorIs(t, err, ErrVersionMismatch)
	})

	t.Run("Deserialize: absent optional fields get defaults", func(t *testing.T) {
		raw, err := s.Serialize(map[string]any{"health": 10, "level": 2})
		require.NoError(t, err)

		data, err := s.Deserialize(raw)
		require.NoError(t, err)
		require.Equal(t, "Player", data["name"])
	})

	t.Run("Default: every field populated", func(t *testing.T) {
		require.Equal(t, map[string]any{
			"health": float64(100),
			"level":  float64(1),
			"name":   "Player",
		}, s.Default())
	})
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"bool", "int", "int64", "uint64", "float32", "float64", "string"} {
		kind, err := ParseKind(name)
		require.NoError(t, err)
		require.Equal(t, name, kind.String())
	}

	_, err := ParseKind("complex128")
	require.ErrorIs(t, err, ErrInvalidSchema)
}
