package models

import "time"

// DownloadFormat is the file format of an export.
type DownloadFormat string

const (
	DownloadFormatCSV  DownloadFormat = "csv"
	DownloadFormatJSON DownloadFormat = "json"
	DownloadFormatXLSX DownloadFormat = "xlsx"
)

// DownloadRecord is one entry of a user's export history. FileContent holds
// the serialized payload; binary formats are base64-encoded.
type DownloadRecord struct {
	ID               string         `json:"id"`
	Filename         string         `json:"filename"`
	Format           DownloadFormat `json:"format"`
	FileSize         int64          `json:"fileSize"`
	FileContent      string         `json:"fileContent"`
	MimeType         string         `json:"mimeType"`
	DownloadDate     time.Time      `json:"downloadDate"`
	TransactionCount int            `json:"transactionCount"`
	Period           string         `json:"period,omitempty"`
}
