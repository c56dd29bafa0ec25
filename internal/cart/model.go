package cart

import (
	"time"

	"routeseven-be/internal/catalog"
)

// Line is a single cart entry. Product and Variant are tagged references:
// the repository resolves them to embedded records where the join succeeds
// and leaves bare identifiers where it does not.
type Line struct {
	Product  catalog.ProductRef
	Variant  *catalog.VariantRef
	Quantity int
}

// Cart is read-only input for the snapshot builder. SubtotalMinor is whatever
// figure the cart carried; the builder re-derives the real total and only
// logs disagreement.
type Cart struct {
	ID            string
	OwnerID       uint
	Items         []Line
	SubtotalMinor int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
