package checkoutRepository

import (
	"VyapaarAI/internal/entity"
	contextPkg "VyapaarAI/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var ErrSaleNotFound = errors.New("sale not found")

type SaleDB struct {
	ID          sql.NullString  `db:"id"`
	Source      sql.NullString  `db:"source"`
	Total       sql.NullFloat64 `db:"total"`
	OutputImage sql.NullString  `db:"output_image"`
	ArchiveURL  sql.NullString  `db:"archive_url"`
	CreatedAt   time.Time       `db:"created_at"`
}

type SaleItemDB struct {
	SaleID   sql.NullString  `db:"sale_id"`
	Position sql.NullInt64   `db:"position"`
	Item     sql.NullString  `db:"item"`
	Quantity sql.NullInt64   `db:"quantity"`
	Price    sql.NullFloat64 `db:"price"`
	Subtotal sql.NullFloat64 `db:"subtotal"`
}

type MonthTotal struct {
	Month   string  `db:"month"`
	Sales   int     `db:"sales"`
	Revenue float64 `db:"revenue"`
}

type MonthProduct struct {
	Month   string  `db:"month"`
	Item    string  `db:"item"`
	Sold    int     `db:"sold"`
	Revenue float64 `db:"revenue"`
}

func (s SaleDB) toEntity() entity.SaleRecord {
	return entity.SaleRecord{
		ID:          s.ID.String,
		Source:      s.Source.String,
		Bill:        entity.Bill{Items: []entity.BillLine{}, Total: s.Total.Float64},
		OutputImage: s.OutputImage.String,
		ArchiveURL:  s.ArchiveURL.String,
		CreatedAt:   s.CreatedAt,
	}
}

func (i SaleItemDB) toEntity() entity.BillLine {
	return entity.BillLine{
		Item:     i.Item.String,
		Quantity: int(i.Quantity.Int64),
		Price:    i.Price.Float64,
		Subtotal: i.Subtotal.Float64,
	}
}

func (r *saleRepository) named(c context.Context, op string, query string, argsKV map[string]interface{}) (string, []interface{}, error) {
	q, args, err := sqlx.Named(query, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Errorf("%s named query preparation err", op)
		return "", nil, err
	}
	return r.q.Rebind(q), args, nil
}

func (r *saleRepository) CreateSale(c context.Context, sale entity.SaleRecord) error {
	requestID := contextPkg.GetRequestID(c)

	createdAt := sale.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := r.named(c, "CreateSale", queryCreateSale, map[string]interface{}{
		"id":           sale.ID,
		"source":       sale.Source,
		"total":        sale.Bill.Total,
		"output_image": sql.NullString{String: sale.OutputImage, Valid: sale.OutputImage != ""},
		"created_at":   createdAt,
	})
	if err != nil {
		return err
	}

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    sale.ID,
			"error":      err.Error(),
		}).Error("Database error when creating sale")
		return err
	}

	for pos, line := range sale.Bill.Items {
		query, args, err := r.named(c, "CreateSaleItem", queryCreateSaleItem, map[string]interface{}{
			"sale_id":  sale.ID,
			"position": pos,
			"item":     line.Item,
			"quantity": line.Quantity,
			"price":    line.Price,
			"subtotal": line.Subtotal,
		})
		if err != nil {
			return err
		}

		if _, err := r.q.ExecContext(c, query, args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"sale_id":    sale.ID,
				"position":   pos,
				"error":      err.Error(),
			}).Error("Database error when creating sale item")
			return err
		}
	}

	return nil
}

func (r *saleRepository) UpdateArchiveURL(c context.Context, id string, archiveURL string) error {
	query, args, err := r.named(c, "UpdateArchiveURL", queryUpdateArchiveURL, map[string]interface{}{
		"id":          id,
		"archive_url": archiveURL,
	})
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) GetSaleByID(c context.Context, id string) (entity.SaleRecord, error) {
	query, args, err := r.named(c, "GetSaleByID", queryGetSaleByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.SaleRecord{}, err
	}

	var row SaleDB
	if err := r.q.GetContext(c, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.SaleRecord{}, ErrSaleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"sale_id":    id,
			"error":      err.Error(),
		}).Error("Database error when fetching sale")
		return entity.SaleRecord{}, err
	}

	sales, err := r.attachItems(c, []SaleDB{row})
	if err != nil {
		return entity.SaleRecord{}, err
	}
	return sales[0], nil
}

func (r *saleRepository) ListSales(c context.Context, limit int) ([]entity.SaleRecord, error) {
	query, args, err := r.named(c, "ListSales", queryListSales, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}

	var rows []SaleDB
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []entity.SaleRecord{}, nil
	}

	return r.attachItems(c, rows)
}

func (r *saleRepository) attachItems(c context.Context, rows []SaleDB) ([]entity.SaleRecord, error) {
	ids := make([]string, 0, len(rows))
	sales := make([]entity.SaleRecord, 0, len(rows))
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		ids = append(ids, row.ID.String)
		sales = append(sales, row.toEntity())
		index[row.ID.String] = i
	}

	query, args, err := sqlx.Named(queryGetSaleItems, map[string]interface{}{"sale_ids": ids})
	if err != nil {
		return nil, err
	}
	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var items []SaleItemDB
	if err := r.q.SelectContext(c, &items, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Database error when fetching sale items")
		return nil, err
	}

	for _, item := range items {
		i, ok := index[item.SaleID.String]
		if !ok {
			continue
		}
		sales[i].Bill.Items = append(sales[i].Bill.Items, item.toEntity())
	}

	return sales, nil
}

func (r *saleRepository) MonthlyTotals(c context.Context, since time.Time) ([]MonthTotal, error) {
	query, args, err := r.named(c, "MonthlyTotals", queryMonthlyTotals, map[string]interface{}{"since": since})
	if err != nil {
		return nil, err
	}

	var rows []MonthTotal
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *saleRepository) MonthlyProducts(c context.Context, since time.Time) ([]MonthProduct, error) {
	query, args, err := r.named(c, "MonthlyProducts", queryMonthlyProducts, map[string]interface{}{"since": since})
	if err != nil {
		return nil, err
	}

	var rows []MonthProduct
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *saleRepository) ProductSales(c context.Context, from, to time.Time) ([]entity.ProductSales, error) {
	query, args, err := r.named(c, "ProductSales", queryProductSales, map[string]interface{}{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return nil, err
	}

	rows := []entity.ProductSales{}
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *saleRepository) Totals(c context.Context, from, to time.Time) (entity.SalesTotals, error) {
	query, args, err := r.named(c, "Totals", queryTotals, map[string]interface{}{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return entity.SalesTotals{}, err
	}

	var totals entity.SalesTotals
	if err := r.q.GetContext(c, &totals, query, args...); err != nil {
		return entity.SalesTotals{}, err
	}
	return totals, nil
}
