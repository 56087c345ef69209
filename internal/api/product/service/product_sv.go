package productService

import "VyapaarAI/internal/api/product"

func (s *productService) ListProducts() []product.ProductResponse {
	entries := s.catalog.Entries()
	out := make([]product.ProductResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, product.ProductResponse{Name: e.Name, Price: e.Price})
	}
	return out
}

func (s *productService) Match(label string) product.MatchResponse {
	matched, price := s.catalog.Match(label)
	_, known := s.catalog.Lookup(matched)

	return product.MatchResponse{
		Label:   label,
		Matched: matched,
		Price:   price,
		Known:   known,
	}
}
