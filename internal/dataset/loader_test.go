package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParse_Workbook(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Nama Pelanggan", "Produk", "Kota", "Ulasan", "Rating", "Tanggal", "Sentimen", "Masalah", "Kepuasan"},
		{"Budi", "Susu UHT", "Jakarta", "Rasanya enak sekali", 5, "2025-03-01", "positive", "", "puas"},
		{"Sari", "Keripik", "Bandung", "", 3, "2025-03-02", "", "", ""},
		{"Andi", "Teh Botol", "Medan", "Kemasan bocor", "2.0", "2025-03-03", "negative", "packaging", "tidak puas"},
	})

	records, err := Parse(buf, "feedback.xlsx", nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "feedback_1", first.ID)
	assert.Equal(t, "Rasanya enak sekali", first.Text)
	assert.Equal(t, "Susu UHT", first.Product)
	assert.Equal(t, "Jakarta", first.Region)
	assert.Equal(t, "Budi", first.CustomerInfo)
	assert.Equal(t, "2025-03-01", first.Date)
	require.NotNil(t, first.Rating)
	assert.Equal(t, 5, *first.Rating)
	assert.Equal(t, "positive", first.SentimentHint)
	assert.Equal(t, "puas", first.SatisfactionHint)

	second := records[1]
	assert.Equal(t, "feedback_3", second.ID, "ids keep the data row position")
	assert.Equal(t, "packaging", second.IssueHint)
	require.NotNil(t, second.Rating)
	assert.Equal(t, 2, *second.Rating)
}

func TestParse_CSV(t *testing.T) {
	in := "\ufeffid,comment,score,channel\n" +
		"1,\"Pengiriman lambat, kecewa\",1,app\n" +
		"2,Great service,not rated,web\n" +
		",,,\n" +
		"3,  ,4,store\n"

	records, err := Parse(strings.NewReader(in), "export.CSV", nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Pengiriman lambat, kecewa", records[0].Text)
	assert.Equal(t, "app", records[0].Channel)
	require.NotNil(t, records[0].Rating)
	assert.Equal(t, 1, *records[0].Rating)
	assert.Nil(t, records[1].Rating)
	assert.Equal(t, "feedback_2", records[1].ID)
}

func TestParse_TextFallsBackToFirstColumn(t *testing.T) {
	in := "Isi,Produk\nMantap,Kopi\n"

	records, err := Parse(strings.NewReader(in), "data.csv", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mantap", records[0].Text)
	assert.Equal(t, "Kopi", records[0].Product)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("a,b"), "notes.txt", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse(strings.NewReader("feedback,rating\n"), "empty.csv", nil)
	assert.ErrorIs(t, err, ErrNoDataRows)

	_, err = Parse(strings.NewReader(""), "blank.csv", nil)
	assert.ErrorIs(t, err, ErrNoDataRows)

	_, err = Parse(strings.NewReader("not a zip"), "broken.xlsx", nil)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	require.NoError(t, os.WriteFile(path, []byte("review\nBagus\nJelek\n"), 0o600))

	records, err := Load(path, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.Error(t, err)
}

func TestDetectMapping(t *testing.T) {
	cols := []string{"Customer Name", "Product Type", "Feedback", "Customer Satisfaction", "Issue Reported", "Order Date"}
	names := DetectMapping(cols).Names(cols)

	assert.Equal(t, "Feedback", names.Feedback)
	assert.Equal(t, "Product Type", names.Product)
	assert.Equal(t, "Product Type", names.Category)
	assert.Equal(t, "Customer Name", names.Customer)
	assert.Equal(t, "Customer Satisfaction", names.Sentiment)
	assert.Equal(t, "Customer Satisfaction", names.Satisfaction)
	assert.Equal(t, "Issue Reported", names.Issue)
	assert.Equal(t, "Order Date", names.Date)
	assert.Empty(t, names.Region)
	assert.Empty(t, names.Rating)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.xlsx"))
	assert.True(t, Supported("A.XLS"))
	assert.True(t, Supported("b.csv"))
	assert.False(t, Supported("c.pdf"))
	assert.False(t, Supported("xlsx"))
}

func TestPreview(t *testing.T) {
	rows := [][]any{{"Feedback", "Product", "Region", "Date"}}
	for i := 0; i < 12; i++ {
		rows = append(rows, []any{"ok", "P" + string(rune('A'+i)), "Jakarta", "2025-03-0" + string(rune('1'+i%9))})
	}
	rows = append(rows, []any{"late", "PA", "Surabaya", "bad date"})

	p, err := Preview(workbook(t, rows), "upload.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "upload.xlsx", p.Filename)
	assert.Equal(t, 13, p.TotalRows)
	assert.Equal(t, []string{"Feedback", "Product", "Region", "Date"}, p.Columns)
	require.Len(t, p.SampleData, 5)
	assert.Equal(t, "PA", p.SampleData[0]["Product"])
	assert.Equal(t, "Feedback", p.DetectedMapping.Feedback)
	assert.Len(t, p.ProductCategories, 10)
	assert.Equal(t, []string{"Jakarta", "Surabaya"}, p.Regions)
	require.NotNil(t, p.DateRange)
	assert.Equal(t, "2025-03-01", p.DateRange.Start)
	assert.Equal(t, "2025-03-09", p.DateRange.End)
}

func TestPreview_NoOptionalColumns(t *testing.T) {
	p, err := Preview(strings.NewReader("comment\nfine\n"), "x.csv")
	require.NoError(t, err)
	assert.Nil(t, p.DateRange)
	assert.Nil(t, p.ProductCategories)
	assert.Nil(t, p.Regions)
}
