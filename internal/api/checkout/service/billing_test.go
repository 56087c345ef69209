package checkoutService

import (
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/catalog"
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(names ...string) []entity.Detection {
	out := make([]entity.Detection, 0, len(names))
	for _, n := range names {
		out = append(out, entity.Detection{Label: n, Confidence: 0.9})
	}
	return out
}

func TestAssembleBill_GroupsSameProduct(t *testing.T) {
	bill := AssembleBill(catalog.Default(), labels("Dermi Cool", "Dermi Cool"))

	require.Equal(t, []entity.BillLine{
		{Item: "Dermi Cool", Quantity: 2, Price: 55, Subtotal: 110},
	}, bill.Items)
	require.Equal(t, 110.0, bill.Total)
}

func TestAssembleBill_SubstringLabel(t *testing.T) {
	bill := AssembleBill(catalog.Default(), labels("Lux Purple Soap"))

	require.Len(t, bill.Items, 1)
	require.Equal(t, "Lux Purple Soap", bill.Items[0].Item)
	require.Equal(t, 45.0, bill.Items[0].Price)
	require.Equal(t, 45.0, bill.Total)
}

func TestAssembleBill_FirstSeenOrderLastSeenLabel(t *testing.T) {
	bill := AssembleBill(catalog.Default(), labels("Lux Purple Soap", "Dermi Cool", "Lux Purple"))

	require.Equal(t, []entity.BillLine{
		{Item: "Lux Purple", Quantity: 2, Price: 45, Subtotal: 90},
		{Item: "Dermi Cool", Quantity: 1, Price: 55, Subtotal: 55},
	}, bill.Items)
	require.Equal(t, 145.0, bill.Total)
}

func TestAssembleBill_UnknownProductIsFree(t *testing.T) {
	bill := AssembleBill(catalog.Default(), labels("mystery jar", "Dermi Cool"))

	require.Equal(t, entity.BillLine{Item: "mystery jar", Quantity: 1, Price: 0, Subtotal: 0}, bill.Items[0])
	require.Equal(t, 55.0, bill.Total)
}

func TestAssembleBill_Empty(t *testing.T) {
	bill := AssembleBill(catalog.Default(), nil)

	require.NotNil(t, bill.Items)
	require.Empty(t, bill.Items)
	require.Zero(t, bill.Total)
}

func TestAssembleBill_Invariants(t *testing.T) {
	cat := catalog.Default()
	dets := labels(
		"Complan Classic Creme", "complan", "Gatsby Deo Shield", "gatsby deo",
		"SUGAR FREE GOLD SACHET 50", "Nycil Prickly Heat Powder", "unknown", "Dermi Cool",
	)

	bill := AssembleBill(cat, dets)

	quantity := 0
	sum := 0.0
	seen := map[string]bool{}
	for _, line := range bill.Items {
		require.Equal(t, line.Price*float64(line.Quantity), line.Subtotal)
		require.Positive(t, line.Quantity)
		quantity += line.Quantity
		sum += line.Subtotal

		matched, _ := cat.Match(line.Item)
		require.False(t, seen[matched], "product %q billed twice", matched)
		seen[matched] = true
	}
	require.Equal(t, len(dets), quantity)
	require.InDelta(t, sum, bill.Total, 1e-9)
	require.Equal(t, quantity, bill.ItemCount())
}

func TestAssembleBill_FractionalPricesAddExactly(t *testing.T) {
	cat, err := catalog.New([]entity.CatalogEntry{
		{Name: "Toffee", Price: 0.1},
		{Name: "Mint", Price: 0.2},
	})
	require.NoError(t, err)

	bill := AssembleBill(cat, labels("Toffee", "Mint", "Toffee", "Toffee"))

	require.Equal(t, []entity.BillLine{
		{Item: "Toffee", Quantity: 3, Price: 0.1, Subtotal: 0.3},
		{Item: "Mint", Quantity: 1, Price: 0.2, Subtotal: 0.2},
	}, bill.Items)
	require.Equal(t, 0.5, bill.Total)
}
