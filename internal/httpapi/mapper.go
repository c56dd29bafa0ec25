package httpapi

import (
	"time"

	"routeseven-be/internal/quotation"
)

type quotationItemResponse struct {
	ProductID      string  `json:"product_id"`
	VariantID      *string `json:"variant_id,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitPriceMinor int64   `json:"unit_price_minor"`
	SubtotalMinor  int64   `json:"subtotal_minor"`
}

type quotationResponse struct {
	ID         string                  `json:"id"`
	Number     string                  `json:"number"`
	Status     string                  `json:"status"`
	TotalMinor int64                   `json:"total_minor"`
	Total      string                  `json:"total"`
	CreatedAt  string                  `json:"created_at"`
	Items      []quotationItemResponse `json:"items,omitempty"`
}

func toQuotationResponse(q *quotation.Quotation) quotationResponse {
	resp := quotationResponse{
		ID:         q.ID.String(),
		Number:     q.Number,
		Status:     string(q.Status),
		TotalMinor: q.Total.Minor,
		Total:      q.Total.Format(),
		CreatedAt:  q.CreatedAt.Format(time.RFC3339),
	}

	for _, item := range q.Items {
		var variantID *string
		if item.Variant != nil {
			id := item.Variant.ID
			variantID = &id
		}
		resp.Items = append(resp.Items, quotationItemResponse{
			ProductID:      item.Product.ID,
			VariantID:      variantID,
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPrice.Minor,
			SubtotalMinor:  item.Subtotal().Minor,
		})
	}

	return resp
}
