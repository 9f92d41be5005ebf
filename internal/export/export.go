// Package export renders transaction lists into the payloads kept in the
// download history: CSV, JSON and XLSX.
package export

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
)

const sheetName = "Transactions"

var header = []string{"ID", "Date", "Description", "Category", "Type", "Amount", "Recipient"}

var mimeTypes = map[models.DownloadFormat]string{
	models.DownloadFormatCSV:  "text/csv",
	models.DownloadFormatJSON: "application/json",
	models.DownloadFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Options controls naming and metadata of an export.
type Options struct {
	// Period labels the exported date range, e.g. "2026-01-01_to_2026-01-31".
	// Empty means all transactions.
	Period string
	// Now stamps the file name and the JSON document.
	Now time.Time
}

// Result is a rendered export. Content is text for CSV and JSON and base64
// for XLSX; Size is the byte length of the file as downloaded.
type Result struct {
	Filename string
	Format   models.DownloadFormat
	MimeType string
	Content  string
	Size     int64
}

// Document is the JSON export layout.
type Document struct {
	ExportDate       time.Time            `json:"exportDate"`
	Period           string               `json:"period,omitempty"`
	TransactionCount int                  `json:"transactionCount"`
	TotalDebit       decimal.Decimal      `json:"totalDebit"`
	TotalCredit      decimal.Decimal      `json:"totalCredit"`
	Transactions     []models.Transaction `json:"transactions"`
}

// MimeType returns the MIME type for format, or "" when unsupported.
func MimeType(format models.DownloadFormat) string {
	return mimeTypes[format]
}

// Supported reports whether format can be rendered.
func Supported(format models.DownloadFormat) bool {
	_, ok := mimeTypes[format]
	return ok
}

// Build renders txs in format.
func Build(format models.DownloadFormat, txs []models.Transaction, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var (
		raw []byte
		err error
	)
	switch format {
	case models.DownloadFormatCSV:
		raw, err = buildCSV(txs)
	case models.DownloadFormatJSON:
		raw, err = buildJSON(txs, opts)
	case models.DownloadFormatXLSX:
		raw, err = buildXLSX(txs)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	content := string(raw)
	if format == models.DownloadFormatXLSX {
		content = base64.StdEncoding.EncodeToString(raw)
	}

	return &Result{
		Filename: Filename(format, opts),
		Format:   format,
		MimeType: mimeTypes[format],
		Content:  content,
		Size:     int64(len(raw)),
	}, nil
}

// Filename names an export: transactions_<period or date>.<format>.
func Filename(format models.DownloadFormat, opts Options) string {
	stamp := opts.Period
	if stamp == "" {
		stamp = opts.Now.Format("2006-01-02")
	}
	return fmt.Sprintf("transactions_%s.%s", stamp, format)
}

// Payload returns the file bytes of a stored download record.
func Payload(rec models.DownloadRecord) ([]byte, error) {
	if rec.Format == models.DownloadFormatXLSX {
		raw, err := base64.StdEncoding.DecodeString(rec.FileContent)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCorruptRecord, err)
		}
		return raw, nil
	}
	return []byte(rec.FileContent), nil
}

func formatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// csvText neutralizes free text that a spreadsheet would evaluate as a
// formula by prefixing it with a single quote.
func csvText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func row(tx models.Transaction) []string {
	return []string{
		tx.ID,
		tx.Date,
		csvText(tx.Description),
		csvText(tx.Category),
		string(tx.Type),
		formatAmount(tx.Amount),
		csvText(tx.Recipient),
	}
}

func buildCSV(txs []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if err := w.Write(row(tx)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildJSON(txs []models.Transaction, opts Options) ([]byte, error) {
	doc := Document{
		ExportDate:       opts.Now.UTC(),
		Period:           opts.Period,
		TransactionCount: len(txs),
		TotalDebit:       decimal.Zero,
		TotalCredit:      decimal.Zero,
		Transactions:     txs,
	}
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}

	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.TransactionTypeCredit {
			doc.TotalCredit = doc.TotalCredit.Add(amount)
		} else {
			doc.TotalDebit = doc.TotalDebit.Add(amount)
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

func buildXLSX(txs []models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, tx := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{tx.ID, tx.Date, tx.Description, tx.Category, string(tx.Type), tx.Amount, tx.Recipient}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "B", "D", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
