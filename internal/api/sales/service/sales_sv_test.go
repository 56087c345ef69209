package salesService

import (
	"VyapaarAI/internal/api/sales"
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	"VyapaarAI/internal/entity"
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	got := summarize(
		entity.SalesTotals{Count: 4, Items: 9, Revenue: 1000},
		entity.SalesTotals{Count: 3, Items: 7, Revenue: 800},
		now,
	)

	require.Equal(t, sales.SummaryResponse{
		TotalRevenue:        1000,
		TotalItems:          9,
		SalesCount:          4,
		AverageDailyRevenue: 100,
		TrendPercentage:     25,
	}, got)
}

func TestSummarize_RoundsAndHandlesNoHistory(t *testing.T) {
	now := time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC)

	got := summarize(entity.SalesTotals{Count: 1, Items: 1, Revenue: 100}, entity.SalesTotals{}, now)
	require.Equal(t, 33.33, got.AverageDailyRevenue)
	require.Zero(t, got.TrendPercentage)

	got = summarize(entity.SalesTotals{Revenue: 200}, entity.SalesTotals{Revenue: 300}, now)
	require.Equal(t, -33.33, got.TrendPercentage)
}

func TestFillMonths_ZeroFillsGaps(t *testing.T) {
	since := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	got := fillMonths(since, 4,
		[]checkoutRepository.MonthTotal{
			{Month: "2025-11", Sales: 2, Revenue: 165},
			{Month: "2026-01", Sales: 1, Revenue: 290},
		},
		[]checkoutRepository.MonthProduct{
			{Month: "2025-11", Item: "Dermi Cool", Sold: 2, Revenue: 110},
			{Month: "2025-11", Item: "Lux Purple", Sold: 1, Revenue: 45},
			{Month: "2026-01", Item: "Complan Classic Creme", Sold: 1, Revenue: 290},
		},
	)

	require.Len(t, got, 4)
	require.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"},
		[]string{got[0].Month, got[1].Month, got[2].Month, got[3].Month})

	require.Equal(t, 2, got[0].Sales)
	require.Len(t, got[0].Products, 2)
	require.Zero(t, got[1].Sales)
	require.NotNil(t, got[1].Products)
	require.Empty(t, got[1].Products)
	require.Equal(t, 290.0, got[2].Revenue)
}

func TestService_LedgerDisabled(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := NewSalesService(logger, checkoutRepository.New(nil, logger), nil)
	ctx := context.Background()

	_, err := svc.MonthlySales(ctx, 12)
	require.ErrorIs(t, err, sales.ErrLedgerDisabled)
	_, err = svc.Summary(ctx)
	require.ErrorIs(t, err, sales.ErrLedgerDisabled)
	_, err = svc.GetSale(ctx, "01HX")
	require.ErrorIs(t, err, sales.ErrLedgerDisabled)
	_, err = svc.ListSales(ctx, 5)
	require.ErrorIs(t, err, sales.ErrLedgerDisabled)

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.ProductSales(ctx, from, from.AddDate(0, 0, -1))
	require.ErrorIs(t, err, sales.ErrInvalidRange)
}
