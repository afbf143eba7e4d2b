package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/abd-Kabir/cargo-bot/internal/service"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Receipt renders a resolved payment as a one-page PDF.
func (g *Generator) Receipt(receipt *service.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Payment receipt", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Receipt No %s", receipt.Payment.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", formatDate(receipt.Payment.UpdatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	colWidths := []float64{60, 110}
	rows := [][2]string{
		{"Customer", receipt.Customer.FullCode()},
		{"Customer name", receipt.Customer.FullName},
		{"Load weight, kg", fmt.Sprintf("%.2f", receipt.Load.Weight)},
		{"Load cost", receipt.Load.Cost.StringFixed(2)},
		{"Paid amount", receipt.Payment.PaidAmount.StringFixed(2)},
		{"Remaining debt", receipt.Customer.Debt.StringFixed(2)},
		{"Load status", string(receipt.Load.Status)},
	}
	if receipt.Payment.Status != nil {
		rows = append(rows, [2]string{"Payment status", string(*receipt.Payment.Status)})
	}
	for _, row := range rows {
		pdf.SetFont(g.fontName, "B", 11)
		pdf.CellFormat(colWidths[0], 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(colWidths[1], 8, row[1], "1", 1, "L", false, 0, "")
	}

	if receipt.Payment.IsOperator {
		pdf.Ln(4)
		pdf.SetFont(g.fontName, "I", 10)
		pdf.CellFormat(0, 6, "Settled by operator at release.", "", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, "Operator signature: ______________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
