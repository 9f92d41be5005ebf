package localstore

import (
	"pocketledger/internal/logger"
	"pocketledger/internal/models"
	"pocketledger/internal/uuid"
)

// GetDownloads returns the download history, newest first.
func (s *Store) GetDownloads(userID string) ([]models.DownloadRecord, error) {
	records, _, err := readList[models.DownloadRecord](s, KeyDownloads, userID)
	return records, err
}

// GetDownload returns the download record with id, or nil.
func (s *Store) GetDownload(id, userID string) (*models.DownloadRecord, error) {
	records, err := s.GetDownloads(userID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

// AddDownload puts rec at the head of the history and drops whatever falls
// beyond MaxDownloads. A record without an ID or date gets one.
func (s *Store) AddDownload(rec models.DownloadRecord, userID string) (models.DownloadRecord, error) {
	records, key, err := readList[models.DownloadRecord](s, KeyDownloads, userID)
	if err != nil {
		return rec, err
	}

	if rec.ID == "" {
		rec.ID = uuid.New()
	}
	if rec.DownloadDate.IsZero() {
		rec.DownloadDate = s.now().UTC()
	}

	records = append([]models.DownloadRecord{rec}, records...)
	if len(records) > MaxDownloads {
		logger.Named("localstore").Debugw("evicting old downloads",
			"key", key,
			"evicted", len(records)-MaxDownloads,
		)
		records = records[:MaxDownloads]
	}

	return rec, s.write(key, records)
}

// DeleteDownload removes the record with id and reports whether one was
// removed.
func (s *Store) DeleteDownload(id, userID string) (bool, error) {
	records, key, err := readList[models.DownloadRecord](s, KeyDownloads, userID)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	return true, s.write(key, kept)
}

// ClearDownloads removes the whole history.
func (s *Store) ClearDownloads(userID string) error {
	key, err := s.Key(KeyDownloads, userID)
	if err != nil {
		return err
	}
	return s.remove(key)
}
