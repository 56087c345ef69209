package salesService

import (
	"VyapaarAI/internal/api/sales"
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	"VyapaarAI/internal/entity"
	contextPkg "VyapaarAI/pkg/context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const monthLayout = "2006-01"

func (s *salesService) client() (checkoutRepository.Client, error) {
	if !s.repository.Enabled() {
		return checkoutRepository.Client{}, sales.ErrLedgerDisabled
	}
	return s.repository.NewClient(false)
}

func (s *salesService) MonthlySales(ctx context.Context, months int) ([]entity.MonthlySales, error) {
	if months <= 0 {
		months = DefaultMonths
	}

	client, err := s.client()
	if err != nil {
		return nil, err
	}

	since := monthStart(s.now()).AddDate(0, -(months - 1), 0)

	totals, err := client.Sale.MonthlyTotals(ctx, since)
	if err != nil {
		return nil, err
	}
	products, err := client.Sale.MonthlyProducts(ctx, since)
	if err != nil {
		return nil, err
	}

	return fillMonths(since, months, totals, products), nil
}

func (s *salesService) ProductSales(ctx context.Context, from, to time.Time) ([]entity.ProductSales, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, sales.ErrInvalidRange
	}

	client, err := s.client()
	if err != nil {
		return nil, err
	}

	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	if to.IsZero() {
		to = s.now()
	} else {
		// to is inclusive of the whole day
		to = to.AddDate(0, 0, 1)
	}

	rows, err := client.Sale.ProductSales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Revenue = round2(rows[i].Revenue)
	}
	return rows, nil
}

func (s *salesService) Summary(ctx context.Context) (sales.SummaryResponse, error) {
	client, err := s.client()
	if err != nil {
		return sales.SummaryResponse{}, err
	}

	now := s.now()
	current := monthStart(now)
	previous := current.AddDate(0, -1, 0)

	cur, err := client.Sale.Totals(ctx, current, current.AddDate(0, 1, 0))
	if err != nil {
		return sales.SummaryResponse{}, err
	}
	prev, err := client.Sale.Totals(ctx, previous, current)
	if err != nil {
		return sales.SummaryResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":       contextPkg.GetRequestID(ctx),
		"current_revenue":  cur.Revenue,
		"previous_revenue": prev.Revenue,
	}).Debug("Computed sales summary")

	return summarize(cur, prev, now), nil
}

func (s *salesService) ListSales(ctx context.Context, limit int) ([]sales.SaleResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	client, err := s.client()
	if err != nil {
		return nil, err
	}

	records, err := client.Sale.ListSales(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]sales.SaleResponse, 0, len(records))
	for _, record := range records {
		out = append(out, sales.NewSaleResponse(record))
	}
	return out, nil
}

func (s *salesService) GetSale(ctx context.Context, id string) (sales.SaleResponse, error) {
	client, err := s.client()
	if err != nil {
		return sales.SaleResponse{}, err
	}

	record, err := client.Sale.GetSaleByID(ctx, id)
	if errors.Is(err, checkoutRepository.ErrSaleNotFound) {
		return sales.SaleResponse{}, sales.ErrSaleNotFound
	}
	if err != nil {
		return sales.SaleResponse{}, err
	}

	resp := sales.NewSaleResponse(record)
	if s.s3 != nil && record.ArchiveURL != "" {
		presigned, err := s.s3.PresignUrl(record.ArchiveURL)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"sale_id":    id,
				"error":      err.Error(),
			}).Warn("Failed to presign archived image")
		} else {
			resp.ArchiveURL = presigned
		}
	}

	return resp, nil
}

// summarize reports the current calendar month against the previous one.
func summarize(cur, prev entity.SalesTotals, now time.Time) sales.SummaryResponse {
	revenue := decimal.NewFromFloat(cur.Revenue)
	previous := decimal.NewFromFloat(prev.Revenue)

	days := decimal.NewFromInt(int64(now.Day()))
	average := revenue.Div(days)

	trend := decimal.Zero
	if previous.IsPositive() {
		trend = revenue.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	}

	return sales.SummaryResponse{
		TotalRevenue:        revenue.Round(2).InexactFloat64(),
		TotalItems:          cur.Items,
		SalesCount:          cur.Count,
		AverageDailyRevenue: average.Round(2).InexactFloat64(),
		TrendPercentage:     trend.Round(2).InexactFloat64(),
	}
}

// fillMonths returns one entry per month from since, oldest first, with zero
// entries for months that had no sales.
func fillMonths(since time.Time, months int, totals []checkoutRepository.MonthTotal, products []checkoutRepository.MonthProduct) []entity.MonthlySales {
	byMonth := make(map[string]checkoutRepository.MonthTotal, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = t
	}

	productsByMonth := make(map[string][]entity.ProductSales, len(totals))
	for _, p := range products {
		productsByMonth[p.Month] = append(productsByMonth[p.Month], entity.ProductSales{
			Item:    p.Item,
			Sold:    p.Sold,
			Revenue: round2(p.Revenue),
		})
	}

	out := make([]entity.MonthlySales, 0, months)
	for i := 0; i < months; i++ {
		key := since.AddDate(0, i, 0).Format(monthLayout)
		items := productsByMonth[key]
		if items == nil {
			items = []entity.ProductSales{}
		}

		out = append(out, entity.MonthlySales{
			Month:    key,
			Sales:    byMonth[key].Sales,
			Revenue:  round2(byMonth[key].Revenue),
			Products: items,
		})
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
