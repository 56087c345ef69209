package checkoutService

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/catalog"

	"github.com/shopspring/decimal"
)

// AssembleBill groups detections by matched product in first-seen order.
// A line shows the raw label last seen for its product, while the unit price
// comes from matching the product name itself.
func AssembleBill(cat *catalog.Catalog, detections []entity.Detection) entity.Bill {
	bill := entity.EmptyBill()
	if len(detections) == 0 {
		return bill
	}

	order := make([]string, 0, len(detections))
	counts := make(map[string]int, len(detections))
	display := make(map[string]string, len(detections))

	for _, d := range detections {
		matched, _ := cat.Match(d.Label)
		if _, seen := counts[matched]; !seen {
			order = append(order, matched)
		}
		counts[matched]++
		display[matched] = d.Label
	}

	total := decimal.Zero
	for _, matched := range order {
		_, price := cat.Match(matched)
		quantity := counts[matched]
		subtotal := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))

		bill.Items = append(bill.Items, entity.BillLine{
			Item:     display[matched],
			Quantity: quantity,
			Price:    price,
			Subtotal: subtotal.InexactFloat64(),
		})
		total = total.Add(subtotal)
	}
	bill.Total = total.InexactFloat64()

	return bill
}
