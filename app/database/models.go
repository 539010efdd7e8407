package database

import (
	"time"
)

// Watch represents a watch record in the database
type Watch struct {
	Name          string
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filing represents a stored normalized filing record
type Filing struct {
	ID           int64
	WatchName    string
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

	ExtractionStatus string
	ExtractedContent string
	ExtractedAt      *time.Time
	ExtractionError  string

	CreatedAt time.Time
}
