package entity

import "time"

const (
	SaleSourceUpload = "upload"
	SaleSourceStream = "stream"
)

type SaleRecord struct {
	ID          string
	Source      string
	Bill        Bill
	OutputImage string
	ArchiveURL  string
	CreatedAt   time.Time
}

type SalesTotals struct {
	Count   int     `db:"sales_count"`
	Items   int     `db:"total_items"`
	Revenue float64 `db:"total_revenue"`
}

type ProductSales struct {
	Item    string  `json:"item" db:"item"`
	Sold    int     `json:"sold" db:"sold"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

type MonthlySales struct {
	Month    string         `json:"month"`
	Sales    int            `json:"sales"`
	Revenue  float64        `json:"revenue"`
	Products []ProductSales `json:"products"`
}
