package productService

import (
	"VyapaarAI/internal/api/product"
	"VyapaarAI/pkg/catalog"
)

type IProductService interface {
	ListProducts() []product.ProductResponse
	Match(label string) product.MatchResponse
}

type productService struct {
	catalog *catalog.Catalog
}

func NewProductService(cat *catalog.Catalog) IProductService {
	return &productService{catalog: cat}
}
