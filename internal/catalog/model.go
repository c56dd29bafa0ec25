package catalog

type Variant struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	// PriceMinor is nil when the variant carries no price of its own.
	// A present zero is a deliberate free-item override, not an absence.
	PriceMinor *int64 `json:"price_minor,omitempty"`
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	PriceMinor  int64      `json:"price_minor"`
	Description *string    `json:"description,omitempty"`
	Variants    []*Variant `json:"variants,omitempty"`
}

// RefKind tags a reference as resolved or not. Consumers switch on the tag
// instead of inspecting what happens to be populated.
type RefKind int

const (
	RefUnresolved RefKind = iota
	RefResolved
)

// ProductRef is either a bare identifier or an embedded product record.
type ProductRef struct {
	Kind   RefKind
	ID     string
	Record *Product
}

func UnresolvedProduct(id string) ProductRef {
	return ProductRef{Kind: RefUnresolved, ID: id}
}

func ResolvedProduct(p *Product) ProductRef {
	return ProductRef{Kind: RefResolved, ID: p.ID, Record: p}
}

// VariantRef mirrors ProductRef for variants.
type VariantRef struct {
	Kind   RefKind
	ID     string
	Record *Variant
}

func UnresolvedVariant(id string) VariantRef {
	return VariantRef{Kind: RefUnresolved, ID: id}
}

func ResolvedVariant(v *Variant) VariantRef {
	return VariantRef{Kind: RefResolved, ID: v.ID, Record: v}
}
