package entity

type CatalogEntry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
