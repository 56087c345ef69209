package checkoutRepository

import (
	"VyapaarAI/internal/entity"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var ErrLedgerDisabled = errors.New("sales ledger is not configured")

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// New returns a repository over db. A nil db yields a repository whose
// clients fail with ErrLedgerDisabled.
func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
	Enabled() bool
}

func (r *repository) Enabled() bool {
	return r.DB != nil
}

func (r *repository) NewClient(tx bool) (Client, error) {
	if r.DB == nil {
		return Client{}, ErrLedgerDisabled
	}

	var sqlExecutor SQLExecutor = r.DB
	commitFunc := func() error { return nil }
	rollbackFunc := func() error { return nil }

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	}

	return Client{
		Sale:     &saleRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Sale interface {
		CreateSale(c context.Context, sale entity.SaleRecord) error
		UpdateArchiveURL(c context.Context, id string, archiveURL string) error
		GetSaleByID(c context.Context, id string) (entity.SaleRecord, error)
		ListSales(c context.Context, limit int) ([]entity.SaleRecord, error)
		MonthlyTotals(c context.Context, since time.Time) ([]MonthTotal, error)
		MonthlyProducts(c context.Context, since time.Time) ([]MonthProduct, error)
		ProductSales(c context.Context, from, to time.Time) ([]entity.ProductSales, error)
		Totals(c context.Context, from, to time.Time) (entity.SalesTotals, error)
	}

	Commit   func() error
	Rollback func() error
}

type saleRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
