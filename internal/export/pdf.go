package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// 5cm of column at 72dpi.
const pdfColumnWidth = 1.0 / (10 * 2.54) * 72 * 50

const (
	pdfMargin       = 10.0
	pdfBottomMargin = 20.0
	pdfRowHeight    = 18.0
	// A4 width in points; the page is laid on its side so wide tables fit.
	pdfPageHeight = 595.28
)

// writePDF lays out a bordered table with a filled header row, breaking
// onto further pages as rows run past the bottom margin. The page is at
// least seven columns wide regardless of the actual header count.
func writePDF(table Table) ([]byte, error) {
	cols := len(table.Headers)

	pageWidth := pdfColumnWidth * 7
	if cols >= 7 {
		pageWidth = pdfColumnWidth*float64(cols) + pdfColumnWidth
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: pdfPageHeight},
	})
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.AddPage()

	cellWidth := (pageWidth - 2*pdfMargin) / float64(cols)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(220, 220, 220)
		for _, header := range table.Headers {
			pdf.CellFormat(cellWidth, pdfRowHeight, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	drawHeader()
	pdf.SetFont("Helvetica", "", 10)

	for _, row := range table.Rows {
		if pdf.GetY()+pdfRowHeight > pdfPageHeight-pdfBottomMargin {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Helvetica", "", 10)
		}
		for _, value := range row {
			pdf.CellFormat(cellWidth, pdfRowHeight, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
