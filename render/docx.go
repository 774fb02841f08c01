package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

// Landscape US Letter with half inch margins, in twentieths of a point.
const (
	docxPageWidth  = 15840
	docxPageHeight = 12240
	docxMargin     = 720
)

// Column widths of the trip table; they add up to the printable width.
var docxColumnWidths = []uint64{1700, 1150, 850, 1700, 1150, 850, 1400, 800, 4800}

// Font sizes in points.
const (
	docxFont      = "Times New Roman"
	docxTitleSize = 14
	docxBodySize  = 11
	docxCellSize  = 10
)

type DOCXRenderer struct{}

func (DOCXRenderer) Format() string    { return dto.FormatDOCX }
func (DOCXRenderer) Extension() string { return ".docx" }
func (DOCXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (DOCXRenderer) Render(d *dto.Diary) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create docx: %w", err)
	}
	setLandscape(doc)

	title := doc.AddEmptyParagraph()
	title.Justification(stypes.JustificationCenter)
	styleRun(title.AddText(diaryTitle), true, docxTitleSize).Underline(stypes.UnderlineSingle)

	header := doc.AddEmptyParagraph()
	header.Justification(stypes.JustificationLeft)
	addLines(header, headerLines(d), false, docxBodySize)
	doc.AddEmptyParagraph()

	tripTable(doc, tripRows(d))
	doc.AddEmptyParagraph()

	sig := doc.AddEmptyParagraph()
	sig.Justification(stypes.JustificationRight)
	addLines(sig, signatureLines(d), true, docxBodySize)
	doc.AddEmptyParagraph()

	approvalTable(doc, recommendedLines(d.Letterhead), approvedLines(d.Letterhead))

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func setLandscape(doc *docx.RootDoc) {
	body := doc.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}
	w, h := uint64(docxPageWidth), uint64(docxPageHeight)
	body.SectPr.PageSize = &ctypes.PageSize{Width: &w, Height: &h, Orient: stypes.PageOrientLandscape}

	m, gutter := docxMargin, 0
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top: &m, Right: &m, Bottom: &m, Left: &m,
		Header: &m, Footer: &m, Gutter: &gutter,
	}
}

func styleRun(r *docx.Run, bold bool, size uint64) *docx.Run {
	r.Font(docxFont).Size(size)
	if bold {
		r.Bold(true)
	}
	return r
}

// addLines writes lines into p separated by line breaks.
func addLines(p *docx.Paragraph, lines []string, bold bool, size uint64) {
	var prev *docx.Run
	for _, line := range lines {
		if prev != nil {
			prev.AddBreak(nil)
		}
		prev = styleRun(p.AddText(line), bold, size)
	}
}

func addCell(row *docx.Row, width uint64, span int, align stypes.Justification, text string, bold bool, size uint64) {
	cell := row.AddCell().Width(int(width), stypes.TableWidthDxa).VerticalAlign("center")
	if span > 1 {
		cell.ColSpan(span)
	}
	p := cell.AddEmptyPara()
	p.Justification(align)
	addLines(p, strings.Split(text, "\n"), bold, size)
}

func sumWidths(widths []uint64) uint64 {
	var total uint64
	for _, w := range widths {
		total += w
	}
	return total
}

// tripTable writes the nine column table: a merged Departure/Arrival row,
// the sub-header row, then one row per trip.
func tripTable(doc *docx.RootDoc, rows []tripRow) {
	w := docxColumnWidths
	tbl := doc.AddTable()
	tbl.Style("TableGrid")
	tbl.Width(int(sumWidths(w)), stypes.TableWidthDxa).Grid(w...).Layout(stypes.TableLayoutFixed)

	group := tbl.AddRow()
	addCell(group, sumWidths(w[0:3]), 3, stypes.JustificationCenter, groupHeaders[0], true, docxCellSize)
	addCell(group, sumWidths(w[3:6]), 3, stypes.JustificationCenter, groupHeaders[1], true, docxCellSize)
	for i := 6; i < len(w); i++ {
		addCell(group, w[i], 1, stypes.JustificationCenter, "", false, docxCellSize)
	}

	sub := tbl.AddRow()
	for i, h := range subHeaders {
		addCell(sub, w[i], 1, stypes.JustificationCenter, h, true, docxCellSize)
	}

	for _, r := range rows {
		row := tbl.AddRow()
		for i, text := range r.Cells {
			align := stypes.JustificationCenter
			if i == len(r.Cells)-1 {
				align = stypes.JustificationLeft
			}
			addCell(row, w[i], 1, align, text, false, docxCellSize)
		}
	}
}

func approvalTable(doc *docx.RootDoc, recommended, approved []string) {
	half := uint64(docxPageWidth-2*docxMargin) / 2
	tbl := doc.AddTable()
	tbl.Width(int(2*half), stypes.TableWidthDxa).Grid(half, half).Layout(stypes.TableLayoutFixed)

	row := tbl.AddRow()
	addCell(row, half, 1, stypes.JustificationLeft, strings.Join(recommended, "\n"), true, docxBodySize)
	addCell(row, half, 1, stypes.JustificationRight, strings.Join(approved, "\n"), true, docxBodySize)
}
