package sales

import (
	"VyapaarAI/internal/entity"
	"time"
)

const DateLayout = "2006-01-02"

type MonthlyQuery struct {
	Months int `query:"months" validate:"omitempty,min=1,max=36"`
}

type ProductQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

type ListQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
}

type SummaryResponse struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalItems          int     `json:"total_items"`
	SalesCount          int     `json:"sales_count"`
	AverageDailyRevenue float64 `json:"average_daily_revenue"`
	TrendPercentage     float64 `json:"trend_percentage"`
}

type SaleResponse struct {
	ID          string            `json:"id"`
	Source      string            `json:"source"`
	Items       []entity.BillLine `json:"items"`
	Total       float64           `json:"total"`
	OutputImage string            `json:"output_image,omitempty"`
	ArchiveURL  string            `json:"archive_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func NewSaleResponse(sale entity.SaleRecord) SaleResponse {
	return SaleResponse{
		ID:          sale.ID,
		Source:      sale.Source,
		Items:       sale.Bill.Items,
		Total:       sale.Bill.Total,
		OutputImage: sale.OutputImage,
		ArchiveURL:  sale.ArchiveURL,
		CreatedAt:   sale.CreatedAt,
	}
}
