package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/utils"
)

const (
	diarySheet     = "Tour Diary"
	allowanceSheet = "Allowance"
	xlsxFont       = "Times New Roman"
)

var xlsxColumnWidths = []float64{22, 12, 8, 22, 12, 8, 16, 8, 60, 12}

type XLSXRenderer struct{}

func (XLSXRenderer) Format() string    { return dto.FormatXLSX }
func (XLSXRenderer) Extension() string { return ".xlsx" }
func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type xlsxStyles struct {
	title, header, cell, purpose, bold int
}

func (XLSXRenderer) Render(d *dto.Diary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", diarySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeDiarySheet(f, d, styles); err != nil {
		return nil, err
	}
	if err := writeAllowanceSheet(f, d, styles); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	var s xlsxStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Underline: "single", Size: 14, Family: xlsxFont},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10, Family: xlsxFont},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    border,
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
		}},
		{&s.cell, &excelize.Style{
			Font:      &excelize.Font{Size: 10, Family: xlsxFont},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    border,
		}},
		{&s.purpose, &excelize.Style{
			Font:      &excelize.Font{Size: 10, Family: xlsxFont},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
			Border:    border,
		}},
		{&s.bold, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11, Family: xlsxFont},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		}},
	}

	for _, def := range defs {
		id, err := f.NewStyle(def.style)
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		*def.dst = id
	}
	return s, nil
}

// sheetWriter keeps the first excelize error; later calls are no-ops once it is set.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func cell(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}

func (w *sheetWriter) value(col, row int, v interface{}) {
	if w.err != nil {
		return
	}
	name, err := cell(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, name, v)
}

func (w *sheetWriter) style(fromCol, fromRow, toCol, toRow, id int) {
	if w.err != nil {
		return
	}
	from, err := cell(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	to, err := cell(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, from, to, id)
}

func (w *sheetWriter) merge(fromCol, toCol, row int) {
	if w.err != nil {
		return
	}
	from, err := cell(fromCol, row)
	if err != nil {
		w.err = err
		return
	}
	to, err := cell(toCol, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.MergeCell(w.sheet, from, to)
}

func (w *sheetWriter) height(row int, h float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetRowHeight(w.sheet, row, h)
}

func writeDiarySheet(f *excelize.File, d *dto.Diary, s xlsxStyles) error {
	sh := diarySheet
	lastCol := len(xlsxColumnWidths)

	for i, width := range xlsxColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh, col, col, width); err != nil {
			return err
		}
	}
	orientation := "landscape"
	if err := f.SetPageLayout(sh, &excelize.PageLayoutOptions{Orientation: &orientation}); err != nil {
		return err
	}

	w := &sheetWriter{f: f, sheet: sh}
	row := 1
	w.merge(1, lastCol, row)
	w.value(1, row, diaryTitle)
	w.style(1, row, 1, row, s.title)
	row += 2

	for _, line := range headerLines(d) {
		w.value(1, row, line)
		row++
	}
	row++

	// grouped header row, then sub headers
	w.merge(1, 3, row)
	w.merge(4, 6, row)
	w.value(1, row, groupHeaders[0])
	w.value(4, row, groupHeaders[1])
	w.style(1, row, lastCol, row, s.header)
	row++

	headers := append(append([]string{}, subHeaders...), "DA (Rs.)")
	for i, h := range headers {
		w.value(i+1, row, h)
	}
	w.style(1, row, lastCol, row, s.header)
	row++

	for i, r := range tripRows(d) {
		for c, text := range r.Cells {
			w.value(c+1, row, text)
		}
		if km := d.Trips[i].DistanceKm.Float64(); km > 0 {
			w.value(8, row, km)
		}
		if a, ok := d.AllowanceFor(i); ok {
			w.value(10, row, a.Amount.InexactFloat64())
		}
		w.style(1, row, 8, row, s.cell)
		w.style(9, row, 9, row, s.purpose)
		w.style(10, row, 10, row, s.cell)
		w.height(row, 62)
		row++
	}

	w.value(7, row, "Total")
	w.value(8, row, d.TotalKm)
	w.value(10, row, d.TotalDA.InexactFloat64())
	w.style(7, row, lastCol, row, s.header)
	row += 3

	w.merge(7, lastCol, row)
	w.value(7, row, strings.Join(signatureLines(d), "\n"))
	w.style(7, row, 7, row, s.bold)
	w.height(row, 80)
	row += 2

	w.merge(1, 4, row)
	w.merge(7, lastCol, row)
	w.value(1, row, strings.Join(recommendedLines(d.Letterhead), "\n"))
	w.value(7, row, strings.Join(approvedLines(d.Letterhead), "\n"))
	w.style(1, row, lastCol, row, s.bold)
	w.height(row, 100)

	if w.err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", sh, w.err)
	}
	return nil
}

func writeAllowanceSheet(f *excelize.File, d *dto.Diary, s xlsxStyles) error {
	sh := allowanceSheet
	if _, err := f.NewSheet(sh); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := f.SetColWidth(sh, "A", "D", 14); err != nil {
		return err
	}

	w := &sheetWriter{f: f, sheet: sh}
	for i, h := range []string{"Pay level", "X", "Y", "Z"} {
		w.value(i+1, 1, h)
	}
	w.style(1, 1, 4, 1, s.header)

	row := 2
	for _, r := range utils.AllowanceTable() {
		w.value(1, row, r.PayLevel)
		w.value(2, row, r.X.IntPart())
		w.value(3, row, r.Y.IntPart())
		w.value(4, row, r.Z.IntPart())
		w.style(1, row, 4, row, s.cell)
		row++
	}

	row++
	w.value(1, row, "Applied level")
	w.value(2, row, d.PayLevel)
	w.style(1, row, 1, row, s.bold)

	if w.err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", sh, w.err)
	}
	return nil
}
