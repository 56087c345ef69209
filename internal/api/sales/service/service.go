package salesService

import (
	"VyapaarAI/internal/api/sales"
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/s3"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	DefaultMonths    = 12
	DefaultListLimit = 20
)

type ISalesService interface {
	MonthlySales(ctx context.Context, months int) ([]entity.MonthlySales, error)
	ProductSales(ctx context.Context, from, to time.Time) ([]entity.ProductSales, error)
	Summary(ctx context.Context) (sales.SummaryResponse, error)
	ListSales(ctx context.Context, limit int) ([]sales.SaleResponse, error)
	GetSale(ctx context.Context, id string) (sales.SaleResponse, error)
}

type salesService struct {
	log        *logrus.Logger
	repository checkoutRepository.Repository
	s3         s3.ItfS3
	now        func() time.Time
}

// NewSalesService reads the ledger written by checkout. archive may be nil.
func NewSalesService(log *logrus.Logger, repo checkoutRepository.Repository, archive s3.ItfS3) ISalesService {
	return &salesService{
		log:        log,
		repository: repo,
		s3:         archive,
		now:        time.Now,
	}
}
