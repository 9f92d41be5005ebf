package export

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pocketledger/internal/models"
	"pocketledger/internal/testutil"
)

var (
	exportNow = time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	sample    = []models.Transaction{
		{ID: "1", Description: "Rent", Amount: 1200, Category: "Housing", Date: "2026-03-01", Type: models.TransactionTypeDebit},
		{ID: "2", Description: "Salary", Amount: 3000.5, Category: "Income", Date: "2026-03-02", Recipient: "ACME", Type: models.TransactionTypeCredit},
		{ID: "3", Description: "Coffee, large", Amount: 0.1, Category: "Food", Date: "2026-03-03"},
	}
)

func TestBuildCSV(t *testing.T) {
	res, err := Build(models.DownloadFormatCSV, sample, Options{Now: exportNow})
	require.NoError(t, err)

	assert.Equal(t, "transactions_2026-04-01.csv", res.Filename)
	assert.Equal(t, "text/csv", res.MimeType)
	assert.Equal(t, int64(len(res.Content)), res.Size)

	records, err := csv.NewReader(bytes.NewBufferString(res.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{"3", "2026-03-03", "Coffee, large", "Food", "", "0.10", ""}, records[3])
}

func TestBuildCSVNeutralizesFormulas(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Description: "=HYPERLINK(\"http://x\")", Amount: 5, Category: "+Food", Date: "2026-03-01", Recipient: "@bob"},
		{ID: "2", Description: "-refund", Amount: -5, Category: "Food", Date: "2026-03-02", Recipient: "Shop"},
		{ID: "3", Description: "\tTabbed", Amount: 1, Category: "Misc", Date: "2026-03-03"},
	}

	res, err := Build(models.DownloadFormatCSV, txs, Options{Now: exportNow})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewBufferString(res.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "'=HYPERLINK(\"http://x\")", records[1][2])
	assert.Equal(t, "'+Food", records[1][3])
	assert.Equal(t, "'@bob", records[1][6])
	assert.Equal(t, "'-refund", records[2][2])
	assert.Equal(t, "-5.00", records[2][5], "amounts are numbers, not text")
	assert.Equal(t, "Shop", records[2][6])
	assert.Equal(t, "'\tTabbed", records[3][2])
}

func TestBuildJSON(t *testing.T) {
	res, err := Build(models.DownloadFormatJSON, sample, Options{Now: exportNow, Period: "2026-03-01_to_2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "transactions_2026-03-01_to_2026-03-31.json", res.Filename)

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(res.Content), &doc))
	assert.Equal(t, 3, doc.TransactionCount)
	assert.Equal(t, "1200.1", doc.TotalDebit.String())
	assert.Equal(t, "3000.5", doc.TotalCredit.String())
	assert.Equal(t, sample, doc.Transactions)
}

func TestBuildXLSX(t *testing.T) {
	res, err := Build(models.DownloadFormatXLSX, sample, Options{Now: exportNow})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(res.Content)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), res.Size)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "Salary", rows[2][2])
}

func TestPayload(t *testing.T) {
	res, err := Build(models.DownloadFormatXLSX, sample, Options{Now: exportNow})
	require.NoError(t, err)

	raw, err := Payload(models.DownloadRecord{Format: models.DownloadFormatXLSX, FileContent: res.Content})
	require.NoError(t, err)
	assert.Equal(t, res.Size, int64(len(raw)))

	_, err = Payload(models.DownloadRecord{Format: models.DownloadFormatXLSX, FileContent: "%%%"})
	testutil.AssertAppError(t, err, "CORRUPT_RECORD")

	text, err := Payload(models.DownloadRecord{Format: models.DownloadFormatCSV, FileContent: "a,b\n"})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(text))
}

func TestBuildUnsupported(t *testing.T) {
	_, err := Build("pdf", sample, Options{Now: exportNow})
	testutil.AssertAppError(t, err, "UNSUPPORTED_FORMAT")
	assert.False(t, Supported("pdf"))
	assert.True(t, Supported(models.DownloadFormatXLSX))
}
