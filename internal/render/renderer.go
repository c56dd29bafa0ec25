package render

import (
	"bytes"
	"fmt"

	"routeseven-be/internal/address"
	"routeseven-be/internal/catalog"
	"routeseven-be/internal/logger"
	"routeseven-be/internal/money"
	"routeseven-be/internal/quotation"
	"routeseven-be/internal/user"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Issuer identity printed in the header band.
const (
	issuerName    = "Route-Seven"
	issuerRegion  = "Maafushi, Maldives"
	issuerContact = "contact@route-seven.com"
)

// A4 portrait, millimetres.
const (
	xStart = 20.0
	xEnd   = 190.0

	headerY = 20.0

	// The items table is pinned here regardless of how tall the customer and
	// detail sections came out, so short and long headers lay out alike.
	itemsTableY = 80.0

	rowHeight  = 7.0
	pageBreakY = 277.0
)

// Renderer lays a persisted quotation out as a paginated PDF. It is a pure
// function of its inputs: no file-system access, no recomputation of the
// stored total, and byte-identical output for identical input.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(q *quotation.Quotation, owner *user.User, addr *address.Address) ([]byte, error) {
	if q == nil || len(q.Items) == 0 {
		return nil, fmt.Errorf("%w: quotation has no line items", ErrRender)
	}
	if owner == nil || owner.Email == "" {
		return nil, fmt.Errorf("%w: owner has no resolvable identity", ErrRender)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Sort internal catalog maps on output so identical input yields
	// byte-identical documents regardless of map iteration order.
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(q.CreatedAt.UTC())
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	drawHeader(pdf)

	y := headerY + 10
	y = drawCustomerSection(pdf, y, owner, addr)
	drawDetailSection(pdf, y, q)

	// Explicit reset: the table position never depends on the sections above.
	y = itemsTableY
	y = drawSectionTitle(pdf, "QUOTED ITEMS", y)

	result := layoutTable(pdf, tableRows(q), y)
	drawTotals(pdf, result.FinalY, q.Total)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// drawHeader paints the fixed-position title and issuer block. Not cursor
// driven.
func drawHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(xStart, headerY, "QUOTATION")

	pdf.SetFont("Helvetica", "", 10)
	rightText(pdf, xEnd, headerY-10, issuerName)
	rightText(pdf, xEnd, headerY-5, issuerRegion)
	rightText(pdf, xEnd, headerY, issuerContact)
}

// drawSectionTitle prints the muted section label with its separator rule and
// returns the cursor just below the rule.
func drawSectionTitle(pdf *gofpdf.Fpdf, title string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(xStart, y, title)
	pdf.SetDrawColor(228, 228, 231)
	pdf.Line(xStart, y+2, xEnd, y+2)
	return y + 5
}

func drawCustomerSection(pdf *gofpdf.Fpdf, y float64, owner *user.User, addr *address.Address) float64 {
	drawSectionTitle(pdf, "CUSTOMER", y)

	name := "N/A"
	if owner.Name != nil && *owner.Name != "" {
		name = *owner.Name
	}

	addressLine := "No address on file"
	if addr != nil && addr.Address1 != "" {
		addressLine = addr.Address1
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(xStart, y+8, name)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(xStart, y+13, owner.Email)
	pdf.Text(xStart, y+18, addressLine)

	return y + 18 + 5
}

// drawDetailSection prints the key/value block right of center. The status
// label falls back to a placeholder but the stored status itself is never
// altered by rendering.
func drawDetailSection(pdf *gofpdf.Fpdf, y float64, q *quotation.Quotation) float64 {
	drawSectionTitle(pdf, "QUOTATION DETAILS", y)

	status := string(q.Status)
	if status == "" {
		status = "Pending"
	}

	entries := []struct {
		key   string
		value string
	}{
		{"Quotation ID:", q.ID.String()},
		{"Date Issued:", q.CreatedAt.Format("02 Jan 2006")},
		{"Status:", status},
	}

	const keyX = 100.0
	lineY := y + 8
	pdf.SetTextColor(0, 0, 0)
	for _, e := range entries {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(keyX, lineY, e.key)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(keyX+30, lineY, e.value)
		lineY += 5
	}

	return lineY + 5
}

type tableResult struct {
	FinalY float64
}

type tableRow [5]string

// tableRows maps stored line items to table cells in insertion order. Items
// whose product reference no longer resolves become empty rows so the row
// count still matches the stored items.
func tableRows(q *quotation.Quotation) []tableRow {
	rows := make([]tableRow, 0, len(q.Items))
	for i, item := range q.Items {
		switch item.Product.Kind {
		case catalog.RefResolved:
			rows = append(rows, tableRow{
				item.Product.Record.Name,
				item.Product.ID,
				fmt.Sprintf("%d", item.Quantity),
				item.UnitPrice.Format(),
				item.Subtotal().Format(),
			})
		default:
			logger.Sub("render").Warn("quotation item product no longer resolves, emitting empty row",
				zap.String("quotation_id", q.ID.String()),
				zap.Int("position", i),
				zap.String("product_id", item.Product.ID),
			)
			rows = append(rows, tableRow{})
		}
	}
	return rows
}

var (
	colWidths = [5]float64{60, 45, 15, 25, 25}
	colAligns = [5]string{"L", "L", "R", "R", "R"}
	colHeads  = tableRow{"Item", "SKU", "Qty", "Unit Price", "Subtotal"}
)

// layoutTable flows the rows down the page, breaking to a new page (with the
// head row repeated) whenever the next row would cross the bottom margin, and
// reports where the flow ended. Totals placement consumes that cursor in a
// separate phase.
func layoutTable(pdf *gofpdf.Fpdf, rows []tableRow, y float64) tableResult {
	y = drawTableHead(pdf, y)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(228, 228, 231)

	for _, row := range rows {
		if y+rowHeight > pageBreakY {
			pdf.AddPage()
			y = drawTableHead(pdf, headerY)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetXY(xStart, y)
		for i, cell := range row {
			pdf.CellFormat(colWidths[i], rowHeight, cell, "1", 0, colAligns[i], false, 0, "")
		}
		y += rowHeight
	}

	return tableResult{FinalY: y}
}

func drawTableHead(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(228, 228, 231)
	pdf.SetFillColor(244, 244, 245)

	pdf.SetXY(xStart, y)
	for i, head := range colHeads {
		pdf.CellFormat(colWidths[i], rowHeight, head, "1", 0, colAligns[i], true, 0, "")
	}
	return y + rowHeight
}

// drawTotals places the totals block relative to wherever the table flow
// concluded. The amount is the persisted aggregate total, formatted to major
// units here and nowhere earlier.
func drawTotals(pdf *gofpdf.Fpdf, y float64, total money.Money) {
	if y+15 > pageBreakY {
		pdf.AddPage()
		y = headerY
	}

	pdf.SetDrawColor(228, 228, 231)
	pdf.Line(120, y+5, xEnd, y+5)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(120, y+10, "Total:")

	pdf.SetFont("Helvetica", "B", 12)
	rightText(pdf, xEnd, y+10, total.Format())
}

func rightText(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}
