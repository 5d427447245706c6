package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hrportal/internal/domain/company"
)

var monthNames = [...]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// RenderPDF produces the downloadable payslip document. The company block
// at the top comes from the singleton profile; an unconfigured profile
// renders an empty header rather than failing the download.
func RenderPDF(slip Payslip, profile company.Profile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, profile.NameEN, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, profile.Address, "", 1, "L", false, 0, "")
	if profile.TaxID != "" {
		pdf.CellFormat(0, 5, "Tax ID: "+profile.TaxID, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("Payslip %s %d", monthNames[slip.Month], slip.Year), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Employee: "+slip.UserName, "", 1, "L", false, 0, "")
	if !slip.PayDate.IsZero() {
		pdf.CellFormat(0, 6, "Pay date: "+slip.PayDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	renderItems(pdf, "Income", slip.Incomes)
	renderItems(pdf, "Deductions", slip.Deductions)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, "Net Pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, slip.NetPay.StringFixed(2), "T", 1, "R", false, 0, "")

	if slip.Note != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Note: "+slip.Note, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderItems(pdf *gofpdf.Fpdf, title string, items []LineItem) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.CellFormat(120, 6, item.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, item.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if len(items) == 0 {
		pdf.CellFormat(0, 6, "-", "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}
