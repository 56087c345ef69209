package catalog

import (
	"VyapaarAI/internal/entity"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_KeepsInsertionOrder(t *testing.T) {
	c := Default()

	entries := c.Entries()
	require.Len(t, entries, 50)
	require.Equal(t, "Complan Classic Creme", entries[0].Name)
	require.Equal(t, "SUGARLITE POUCH 500G", entries[len(entries)-1].Name)

	price, ok := c.Lookup("Dermi Cool")
	require.True(t, ok)
	require.Equal(t, float64(55), price)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	c := Default()

	entries := c.Entries()
	entries[0].Price = 1

	price, _ := c.Lookup("Complan Classic Creme")
	require.Equal(t, float64(290), price)
}

func TestNew_RejectsInvalidEntries(t *testing.T) {
	_, err := New([]entity.CatalogEntry{{Name: "A", Price: 1}, {Name: "A", Price: 2}})
	require.ErrorIs(t, err, ErrDuplicateProduct)

	_, err = New([]entity.CatalogEntry{{Name: "A", Price: -1}})
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = New([]entity.CatalogEntry{{Name: "", Price: 1}})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestLoad_ReadsOrderedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Zeta","price":3},{"name":"Alpha","price":1.5}]`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Zeta", "Alpha"}, c.Names())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
