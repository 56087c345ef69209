package catalog

import "strings"

// Match resolves a detected label to a catalog product.
//
// Exact name first. Then one pass in insertion order looking for a catalog name
// contained in the label, then a second pass looking for the label contained in
// a catalog name, both case-insensitive. The first hit wins. Unknown labels come
// back unchanged with price 0.
func (c *Catalog) Match(label string) (string, float64) {
	if price, ok := c.Lookup(label); ok {
		return label, price
	}

	lowerLabel := strings.ToLower(label)

	for i, name := range c.lowered {
		if strings.Contains(lowerLabel, name) {
			return c.entries[i].Name, c.entries[i].Price
		}
	}

	for i, name := range c.lowered {
		if strings.Contains(name, lowerLabel) {
			return c.entries[i].Name, c.entries[i].Price
		}
	}

	return label, 0
}
