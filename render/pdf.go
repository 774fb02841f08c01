package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 4.5
	pdfFont       = "Times"
)

// Column widths in mm for landscape A4; the last column is the daily allowance.
var pdfColumnWidths = []float64{30, 20, 14, 30, 20, 14, 24, 14, 86, 25}

type PDFRenderer struct{}

func (PDFRenderer) Format() string      { return dto.FormatPDF }
func (PDFRenderer) Extension() string   { return ".pdf" }
func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Render(d *dto.Diary) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Tour Diary", false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "BU", 14)
	pdf.CellFormat(0, 8, diaryTitle, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(pdfFont, "", 11)
	for _, line := range headerLines(d) {
		pdf.CellFormat(0, 5.5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writePDFTableHeader(pdf)
	_, pageHeight := pdf.GetPageSize()

	for _, row := range tripRows(d) {
		cells := append(row.Cells[:], row.DA)
		pdf.SetFont(pdfFont, "", 9.5)
		h := pdfRowHeight(pdf, cells)
		if pdf.GetY()+h > pageHeight-pdfMargin {
			pdf.AddPage()
			writePDFTableHeader(pdf)
			pdf.SetFont(pdfFont, "", 9.5)
		}
		writePDFRow(pdf, cells, h)
	}

	pdf.Ln(3)
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 6, totalsLine(d), "", 1, "R", false, 0, "")

	if pdf.GetY()+70 > pageHeight-pdfMargin {
		pdf.AddPage()
	}
	pdf.Ln(8)
	pdf.MultiCell(0, 5.5, strings.Join(signatureLines(d), "\n"), "", "R", false)
	pdf.Ln(8)

	y := pdf.GetY()
	pageWidth, _ := pdf.GetPageSize()
	half := (pageWidth - 2*pdfMargin) / 2
	pdf.SetXY(pdfMargin, y)
	pdf.MultiCell(half, 5.5, strings.Join(recommendedLines(d.Letterhead), "\n"), "", "L", false)
	pdf.SetXY(pdfMargin+half, y)
	pdf.MultiCell(half, 5.5, strings.Join(approvedLines(d.Letterhead), "\n"), "", "R", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFTableHeader(pdf *gofpdf.Fpdf) {
	w := pdfColumnWidths
	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 230, 230)

	pdf.CellFormat(w[0]+w[1]+w[2], 6, groupHeaders[0], "1", 0, "C", true, 0, "")
	pdf.CellFormat(w[3]+w[4]+w[5], 6, groupHeaders[1], "1", 0, "C", true, 0, "")
	for i := 6; i < len(w); i++ {
		pdf.CellFormat(w[i], 6, "", "LTR", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	headers := append(append([]string{}, subHeaders...), "DA (Rs.)")
	for i, h := range headers {
		pdf.CellFormat(w[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// pdfLines wraps text to the column width, keeping explicit line breaks.
func pdfLines(pdf *gofpdf.Fpdf, text string, width float64) int {
	n := 0
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			n++
			continue
		}
		n += len(pdf.SplitLines([]byte(part), width-2))
	}
	return n
}

func pdfRowHeight(pdf *gofpdf.Fpdf, cells []string) float64 {
	maxLines := 1
	for i, text := range cells {
		if n := pdfLines(pdf, text, pdfColumnWidths[i]); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*pdfLineHeight + 2
}

func writePDFRow(pdf *gofpdf.Fpdf, cells []string, h float64) {
	x, y := pdf.GetX(), pdf.GetY()
	for i, text := range cells {
		w := pdfColumnWidths[i]
		pdf.Rect(x, y, w, h, "D")

		align := "C"
		if i == 8 {
			align = "L"
		}
		pdf.SetXY(x, y+1)
		pdf.MultiCell(w, pdfLineHeight, text, "", align, false)
		x += w
	}
	pdf.SetXY(pdfMargin, y+h)
}
