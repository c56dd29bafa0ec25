package quotation

import (
	"testing"

	"routeseven-be/internal/catalog"
	"routeseven-be/internal/money"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"draft to sent", StatusDraft, StatusSent, true},
		{"draft to expired", StatusDraft, StatusExpired, true},
		{"sent to expired", StatusSent, StatusExpired, true},
		{"sent to draft", StatusSent, StatusDraft, false},
		{"expired to sent", StatusExpired, StatusSent, false},
		{"expired to draft", StatusExpired, StatusDraft, false},
		{"draft to draft", StatusDraft, StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestLineItemSubtotal(t *testing.T) {
	li := LineItem{
		Product:   catalog.UnresolvedProduct("prod-1"),
		Quantity:  3,
		UnitPrice: money.FromMinor(2500),
	}
	assert.Equal(t, int64(7500), li.Subtotal().Minor)
}

// The stored total must be reproducible from the stored items alone, without
// re-resolving catalog prices.
func TestSumItemsReproducesStoredTotal(t *testing.T) {
	q := &Quotation{
		Items: []LineItem{
			{Product: catalog.UnresolvedProduct("a"), Quantity: 2, UnitPrice: money.FromMinor(15000)},
			{Product: catalog.UnresolvedProduct("b"), Quantity: 1, UnitPrice: money.FromMinor(499)},
			{Product: catalog.UnresolvedProduct("c"), Quantity: 5, UnitPrice: money.FromMinor(0)},
		},
		Total: money.FromMinor(30499),
	}

	assert.Equal(t, q.Total, q.SumItems())
}
