package entity

type BillLine struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type Bill struct {
	Items []BillLine `json:"items"`
	Total float64    `json:"total"`
}

func EmptyBill() Bill {
	return Bill{Items: []BillLine{}, Total: 0}
}

func (b Bill) ItemCount() int {
	n := 0
	for _, line := range b.Items {
		n += line.Quantity
	}
	return n
}

type StoredImagePair struct {
	Original  string
	Annotated string
}
