package product

type MatchQuery struct {
	Label string `query:"label" validate:"required,max=256"`
}

type MatchResponse struct {
	Label   string  `json:"label"`
	Matched string  `json:"matched"`
	Price   float64 `json:"price"`
	Known   bool    `json:"known"`
}

type ProductResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
