package catalog

import (
	"VyapaarAI/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrDuplicateProduct = errors.New("duplicate product name")
	ErrNegativePrice    = errors.New("negative product price")
	ErrEmptyName        = errors.New("empty product name")
)

// Catalog is an ordered, read-only price list. Build one at start-up and share
// the pointer; nothing mutates it afterwards.
type Catalog struct {
	entries []entity.CatalogEntry
	lowered []string
	index   map[string]int
}

func New(entries []entity.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entity.CatalogEntry, 0, len(entries)),
		lowered: make([]string, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if e.Name == "" {
			return nil, ErrEmptyName
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNegativePrice, e.Name)
		}
		if _, exists := c.index[e.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, e.Name)
		}

		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
		c.lowered = append(c.lowered, strings.ToLower(e.Name))
	}

	return c, nil
}

// Default returns the built-in store price list.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in price list is invalid: %v", err))
	}
	return c
}

// Load reads a JSON array of {"name","price"} objects. An array is used so the
// file order becomes the match order.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var entries []entity.CatalogEntry
	if err := jsoniter.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	return New(entries)
}

func (c *Catalog) Lookup(name string) (float64, bool) {
	i, ok := c.index[name]
	if !ok {
		return 0, false
	}
	return c.entries[i].Price, true
}

// Entries returns a copy in insertion order.
func (c *Catalog) Entries() []entity.CatalogEntry {
	out := make([]entity.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
