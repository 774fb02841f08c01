package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/tour-diary-generator/config"
	"github.com/Aashish23092/tour-diary-generator/dto"
)

func sampleDiary() *dto.Diary {
	return &dto.Diary{
		Employee: dto.Employee{Name: "Ravi Patel", BasicPay: 56100},
		Trips: []dto.Trip{
			{
				DepartureDate: "15/01/2025", DepartureTime: "08:00",
				ArrivalPlace: "Surat", ArrivalDate: "15/01/2025", ArrivalTime: "10:30",
				DistanceKm: 36, Purpose: "Training on IPM & pests", SystemNo: "21781756377236",
			},
			{
				DeparturePlace: "Surat", DepartureDate: "16/01/2025",
				ArrivalPlace: "NAU, Navsari", Mode: "Bus", SystemNo: "Unknown",
			},
		},
		Allowances: []dto.AllowanceLine{
			{TripIndex: 0, City: "Surat", CityClass: "Y", Amount: decimal.NewFromInt(500)},
			{TripIndex: 1, City: "NAU, Navsari", CityClass: "Z", Amount: decimal.NewFromInt(400)},
		},
		PayLevel:   "Level 6-11",
		MonthLabel: "Month: January-2025",
		TotalKm:    36,
		TotalDA:    decimal.NewFromInt(900),
		Letterhead: config.DefaultLetterhead(),
		CreatedAt:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"docx", "PDF", " xlsx "} {
		r, err := ForFormat(format)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(format)), r.Format())
	}

	r, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "NAU_Tour_Diary_Landscape.docx", Filename(r))

	_, err = ForFormat("odt")
	assert.ErrorIs(t, err, dto.ErrUnknownFormat)
}

func readZipPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestDOCXRender(t *testing.T) {
	data, err := DOCXRenderer{}.Render(sampleDiary())
	require.NoError(t, err)

	doc := readZipPart(t, data, "word/document.xml")
	assert.Contains(t, doc, `w:orient="landscape"`)
	assert.Contains(t, doc, `<w:pgSz w:w="15840" w:h="12240"`)
	assert.Contains(t, doc, "TOUR DIARY")
	assert.Contains(t, doc, "Designation: Associate Professor")
	assert.Contains(t, doc, "Name: Ravi Patel")
	assert.Contains(t, doc, "Basic salary: 56,100.00")
	assert.Contains(t, doc, "Month: January-2025")
	assert.Contains(t, doc, `<w:gridSpan w:val="3">`)
	assert.Contains(t, doc, "Training on IPM &amp; pests")
	assert.Contains(t, doc, "Tour is final Approved by the Principal, NMCA, NAU.")
	assert.Contains(t, doc, "21781756377236")
	// fallbacks for the first trip
	assert.Contains(t, doc, "NAU, Navsari")
	assert.Contains(t, doc, "Private Vehicle")
	assert.Contains(t, doc, "Recommended")
	assert.Contains(t, doc, "Principal and Dean")
	assert.Contains(t, doc, `w:ascii="Times New Roman"`)
	assert.Contains(t, doc, `<w:gridCol w:w="4800">`)
	assert.Contains(t, doc, `<w:pgMar`)
}

func TestPDFRender(t *testing.T) {
	data, err := PDFRenderer{}.Render(sampleDiary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFRenderManyTripsPaginates(t *testing.T) {
	d := sampleDiary()
	for i := 0; i < 40; i++ {
		d.Trips = append(d.Trips, d.Trips[0])
	}

	data, err := PDFRenderer{}.Render(d)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestXLSXRender(t *testing.T) {
	data, err := XLSXRenderer{}.Render(sampleDiary())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{diarySheet, allowanceSheet}, f.GetSheetList())

	title, err := f.GetCellValue(diarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "TOUR DIARY", title)

	rows, err := f.GetRows(diarySheet)
	require.NoError(t, err)
	found := false
	for _, r := range rows {
		if len(r) > 3 && r[3] == "Surat" {
			found = true
			assert.Equal(t, "36", r[7])
			assert.Equal(t, "500", r[9])
		}
	}
	assert.True(t, found, "trip row for Surat")

	level, err := f.GetCellValue(allowanceSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Level 12+", level)
}

func TestSheetWriterKeepsFirstError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	w := &sheetWriter{f: f, sheet: "Missing"}
	w.value(1, 1, "lost")
	require.Error(t, w.err)
	first := w.err

	w.style(1, 1, 2, 1, 0)
	w.height(1, 20)
	assert.Equal(t, first, w.err)

	w = &sheetWriter{f: f, sheet: "Sheet1"}
	w.value(0, 1, "bad column")
	assert.Error(t, w.err)

	w = &sheetWriter{f: f, sheet: "Sheet1"}
	w.value(1, 1, "ok")
	w.merge(1, 3, 2)
	assert.NoError(t, w.err)
}
