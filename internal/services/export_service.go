package services

import (
	"time"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/export"
	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"
)

const periodLayout = "2006-01-02"

// exportService renders exports and keeps the download history.
type exportService struct {
	store *localstore.Store
	now   func() time.Time
}

// NewExportService creates a new ExportServicer.
func NewExportService(store *localstore.Store) ExportServicer {
	return &exportService{store: store, now: time.Now}
}

// Export renders the filtered transactions in format and records the result
// at the head of the download history.
func (s *exportService) Export(phone string, format models.DownloadFormat, filter TransactionFilter) (*models.DownloadRecord, error) {
	if !export.Supported(format) {
		return nil, apperrors.ErrUnsupportedFormat
	}

	txs, err := filterTransactions(s.store, phone, filter)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(txs)

	now := s.now()
	period := periodLabel(filter)
	res, err := export.Build(format, txs, export.Options{Period: period, Now: now})
	if err != nil {
		return nil, err
	}

	rec, err := s.store.AddDownload(models.DownloadRecord{
		Filename:         res.Filename,
		Format:           res.Format,
		FileSize:         res.Size,
		FileContent:      res.Content,
		MimeType:         res.MimeType,
		DownloadDate:     now.UTC(),
		TransactionCount: len(txs),
		Period:           period,
	}, phone)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("export created",
		"user", localstore.NormalizeUserID(phone),
		"format", format,
		"transactions", len(txs),
		"bytes", res.Size,
	)
	return &rec, nil
}

// ListDownloads returns the download history, newest first.
func (s *exportService) ListDownloads(phone string) ([]models.DownloadRecord, error) {
	return s.store.GetDownloads(phone)
}

// GetDownload returns one download record.
func (s *exportService) GetDownload(phone, id string) (*models.DownloadRecord, error) {
	rec, err := s.store.GetDownload(id, phone)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.ErrDownloadNotFound
	}
	return rec, nil
}

// DeleteDownload removes one download record.
func (s *exportService) DeleteDownload(phone, id string) error {
	removed, err := s.store.DeleteDownload(id, phone)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrDownloadNotFound
	}
	return nil
}

// ClearDownloads empties the download history.
func (s *exportService) ClearDownloads(phone string) error {
	return s.store.ClearDownloads(phone)
}

// periodLabel describes the date bounds of filter, or "" for all time.
func periodLabel(filter TransactionFilter) string {
	switch {
	case filter.FromDate != nil && filter.ToDate != nil:
		return filter.FromDate.Format(periodLayout) + "_to_" + filter.ToDate.Format(periodLayout)
	case filter.FromDate != nil:
		return "from_" + filter.FromDate.Format(periodLayout)
	case filter.ToDate != nil:
		return "until_" + filter.ToDate.Format(periodLayout)
	}
	return ""
}
