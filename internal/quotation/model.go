package quotation

import (
	"time"

	"routeseven-be/internal/catalog"
	"routeseven-be/internal/money"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusExpired Status = "expired"
)

// CanTransitionTo enforces the linear draft -> sent -> expired lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusSent || next == StatusExpired
	case StatusSent:
		return next == StatusExpired
	default:
		return false
	}
}

// LineItem is a frozen copy of a cart line at snapshot time. UnitPrice is the
// catalog price captured when the quotation was built; later catalog changes
// never touch it.
type LineItem struct {
	Product   catalog.ProductRef
	Variant   *catalog.VariantRef
	Quantity  int
	UnitPrice money.Money
}

// Subtotal is quantity times unit price, in minor units.
func (li LineItem) Subtotal() money.Money {
	return li.UnitPrice.MulQty(li.Quantity)
}

// Quotation is the aggregate root. It owns its line items; products, variants
// and the owner are referenced by identifier only.
type Quotation struct {
	ID        uuid.UUID
	Number    string
	OwnerID   uint
	Items     []LineItem
	Total     money.Money
	Status    Status
	CreatedAt time.Time
}

// SumItems re-derives the total from the stored items. The stored Total must
// always equal this; only the builder establishes it, nothing downstream
// recomputes it into the aggregate.
func (q *Quotation) SumItems() money.Money {
	var total money.Money
	for _, li := range q.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}
