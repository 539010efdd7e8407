package database

import (
	"time"
)

// FilingRecord is the input shape for storing one normalized record.
type FilingRecord struct {
	RecordID     string
	Title        string
	Summary      string
	Updated      string
	Href         string
	Type         string
	Fields       map[string]string
	Links        map[string]string
	Position     int
	ContentHash  string
	IsFiltered   bool
	FilterReason string
}

type WatchRepository interface {
	GetWatch(watchName string) (*Watch, error)
	GetWatchCount() (int, error)

	UpsertWatch(watchName string) error
	UpdateWatchFetched(watchName string, nextFetch time.Time) error
}

type FilingForExtraction struct {
	ID   int64
	Href string
}

type FilingRepository interface {
	GetVisibleFilings(watchName string, limit int) ([]Filing, error)
	GetFilingCount(watchName string) (int, error)
	GetFilingStats(watchName string) (int, int, int, error)

	UpsertFiling(watchName string, filing FilingRecord) error

	CheckDuplicate(watchName, contentHash string) (bool, error)

	GetFilingsForExtraction(watchName string, limit int) ([]FilingForExtraction, error)
	UpdateExtractionStatus(filingID int64, status string, extractedAt *time.Time, errorMsg string) error
	UpdateExtractedContent(filingID int64, content string, status string, extractedAt *time.Time) error
}
