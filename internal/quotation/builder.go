package quotation

import (
	"context"
	"time"

	"routeseven-be/internal/cart"
	"routeseven-be/internal/catalog"
	"routeseven-be/internal/logger"
	"routeseven-be/internal/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver looks up catalog records for cart lines that arrived with bare
// identifiers instead of embedded records.
type Resolver interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
	GetVariantByID(ctx context.Context, id string) (*catalog.Variant, error)
}

// Builder turns a mutable cart into an immutable draft quotation. It performs
// no I/O of its own beyond catalog lookups through the resolver, and never
// mutates the cart.
type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build snapshots the cart into a draft quotation.
//
// Lines whose product cannot be resolved or whose quantity is not positive
// are dropped from the snapshot, not the operation; only a cart that yields
// zero usable lines fails. The total is always re-derived from the retained
// lines in minor units; a cart-supplied subtotal is never trusted.
func (b *Builder) Build(ctx context.Context, c *cart.Cart, resolver Resolver) (*Quotation, error) {
	log := logger.FromCtx(ctx).With(zap.String("subsystem", "quotation.builder"))

	if c == nil || len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]LineItem, 0, len(c.Items))

	for i, line := range c.Items {
		product := resolveProduct(ctx, line.Product, resolver)
		if product == nil {
			log.Warn("dropping cart line: product did not resolve",
				zap.Int("line", i),
				zap.String("product_id", line.Product.ID),
			)
			continue
		}

		if line.Quantity <= 0 {
			log.Warn("dropping cart line: quantity not positive",
				zap.Int("line", i),
				zap.Int("quantity", line.Quantity),
			)
			continue
		}

		variantRef, unitPrice := resolveUnitPrice(ctx, product, line.Variant, resolver)

		items = append(items, LineItem{
			Product:   catalog.ResolvedProduct(product),
			Variant:   variantRef,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
	}

	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	total := sumItems(items)

	if c.SubtotalMinor != total.Minor {
		// The cart figure is advisory only; disagreement is a defect worth
		// surfacing but the re-derived sum is authoritative.
		log.Warn("cart subtotal disagrees with recomputed total",
			zap.String("cart_id", c.ID),
			zap.Int64("cart_subtotal_minor", c.SubtotalMinor),
			zap.Int64("recomputed_minor", total.Minor),
		)
	}

	return &Quotation{
		ID:        uuid.New(),
		Number:    GenerateNumber(),
		OwnerID:   c.OwnerID,
		Items:     items,
		Total:     total,
		Status:    StatusDraft,
		CreatedAt: b.now(),
	}, nil
}

func resolveProduct(ctx context.Context, ref catalog.ProductRef, resolver Resolver) *catalog.Product {
	switch ref.Kind {
	case catalog.RefResolved:
		return ref.Record
	default:
		if resolver == nil {
			return nil
		}
		p, err := resolver.GetProductByID(ctx, ref.ID)
		if err != nil {
			return nil
		}
		return p
	}
}

// resolveUnitPrice picks the frozen unit price for a line. A resolved variant
// price is authoritative when present and non-negative; an explicit zero is a
// deliberate free-item override. An absent or negative variant price falls
// back to the product's base price, as does a variant reference that never
// resolves.
func resolveUnitPrice(
	ctx context.Context,
	product *catalog.Product,
	ref *catalog.VariantRef,
	resolver Resolver,
) (*catalog.VariantRef, money.Money) {

	base := money.FromMinor(product.PriceMinor)
	if ref == nil {
		return nil, base
	}

	variant := ref.Record
	if ref.Kind == catalog.RefUnresolved && resolver != nil {
		if v, err := resolver.GetVariantByID(ctx, ref.ID); err == nil && v != nil {
			variant = v
		}
	}

	if variant == nil {
		// Keep the bare reference on the snapshot; price stays the base.
		kept := catalog.UnresolvedVariant(ref.ID)
		return &kept, base
	}

	kept := catalog.ResolvedVariant(variant)
	if variant.PriceMinor != nil && *variant.PriceMinor >= 0 {
		return &kept, money.FromMinor(*variant.PriceMinor)
	}
	return &kept, base
}

func sumItems(items []LineItem) money.Money {
	var total money.Money
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}
