// Package invoice renders a fixed-layout PDF for an order. The order's
// embedded product snapshot is the sole source of truth; no catalog lookup
// happens here, so historical invoices stay stable after catalog edits.
package invoice

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

const issuerName = "The Go Shop"

// Render produces the invoice PDF for an order. The caller must already have
// verified that the requesting user owns the order; no authorization happens
// here. Output is byte-identical for identical order values.
func Render(o models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pin the embedded creation date so equal orders render equal bytes.
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, issuerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Bill To: "+o.UserEmail, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Order: "+o.ID.Hex(), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "-----------------", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	for _, line := range o.Products {
		text := fmt.Sprintf(
			"%s - %d X $%s",
			line.Product.Title,
			line.Quantity,
			formatPrice(line.Product.Price),
		)
		pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, "-------", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "Total Price: $"+Total(o).String(), "", 1, "L", false, 0, "")

	var doc bytes.Buffer
	if err := pdf.Output(&doc); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return doc.Bytes(), nil
}

// Total sums quantity times snapshot price across the order's lines.
func Total(o models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Products {
		total = total.Add(
			decimal.NewFromFloat(line.Product.Price).
				Mul(decimal.NewFromInt(int64(line.Quantity))),
		)
	}
	return total
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
