package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryTypes(t *testing.T) {
	t.Run("RegisterType: duplicate rejected", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.RegisterType(playerSchema(t)))
		require.ErrorIs(t, r.RegisterType(playerSchema(t)), ErrTypeAlreadyRegistered)
	})

	t.Run("GetType: unknown type", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.GetType("Ghost")
		require.ErrorIs(t, err, ErrTypeNotRegistered)
	})

	t.Run("UnregisterType: removes all versions", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.RegisterType(playerSchema(t)))
		require.NoError(t, r.UnregisterType("Player"))

		_, err := r.GetType("Player")
		require.ErrorIs(t, err, ErrTypeNotRegistered)
		require.ErrorIs(t, r.UnregisterType("Player"), ErrTypeNotRegistered)
	})

	t.Run("ListTypes: sorted names", func(t *testing.T) {
		r := NewRegistry()
		zombie := MustTypeSchema("Zombie", "v1", FieldSchema{Name: "hp", Kind: KindInt})
		archer := MustTypeSchema("Archer", "v1", FieldSchema{Name: "hp", Kind: KindInt})
		require.NoError(t, r.RegisterType(zombie))
		require.NoError(t, r.RegisterType(archer))
		require.Equal(t, []string{"Archer", "Zombie"}, r.ListTypes())
	})

	t.Run("GetByID: resolves hashed type names", func(t *testing.T) {
		r := NewRegistry()
		s := playerSchema(t)
		require.NoError(t, r.RegisterType(s))

		got, err := r.GetByID(s.ID())
		require.NoError(t, err)
		require.Equal(t, "Player", got.Name())

		_, err = r.GetByID(TypeID("Ghost"))
		require.ErrorIs(t, err, ErrTypeNotRegistered)
	})
}

func TestRegistryVersions(t *testing.T) {
	r := NewRegistry()
	v1 := playerSchema(t)
	require.NoError(t, r.RegisterType(v1))

	v2 := MustTypeSchema("Player", "v2",
		FieldSchema{Name: "health", Kind: KindFloat32, Required: true},
		FieldSchema{Name: "level", Kind: KindInt, Required: true},
		FieldSchema{Name: "name", Kind: KindString},
		FieldSchema{Name: "guild", Kind: KindString},
	)

	t.Run("RegisterVersion: appends and becomes latest", func(t *testing.T) {
		require.NoError(t, r.RegisterVersion("Player", v2))

		version, latest, err := r.GetLatestVersion("Player")
		require.NoError(t, err)
		require.Equal(t, "v2", version)
		require.Equal(t, v2, latest)

		got, err := r.GetType("Player")
		require.NoError(t, err)
		require.Equal(t, v2, got)
	})

	t.Run("RegisterVersion: duplicate version rejected", func(t *testing.T) {
		require.ErrorIs(t, r.RegisterVersion("Player", v2), ErrVersionAlreadyRegistered)
	})

	t.Run("RegisterVersion: name mismatch rejected", func(t *testing.T) {
		enemy := MustTypeSchema("Enemy", "v1", FieldSchema{Name: "hp", Kind: KindInt})
		require.ErrorIs(t, r.RegisterVersion("Player", enemy), ErrInvalidSchema)
	})

	t.Run("GetVersion: specific versions stay addressable", func(t *testing.T) {
		got, err := r.GetVersion("Player", "v1")
		require.NoError(t, err)
		require.Equal(t, v1, got)

		_, err = r.GetVersion("Player", "v9")
		require.ErrorIs(t, err, ErrVersionNotRegistered)
	})

	t.Run("ListVersions: registration order", func(t *testing.T) {
		versions, err := r.ListVersions("Player")
		require.NoError(t, err)
		require.Equal(t, []string{"v1", "v2"}, versions)
	})
}
