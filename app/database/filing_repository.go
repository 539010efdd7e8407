package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

var _ FilingRepository = (*SQLFilingRepository)(nil)

// SQLFilingRepository handles database operations for normalized filings
type SQLFilingRepository struct {
	db *DB
}

func NewFilingRepository(db *DB) *SQLFilingRepository {
	return &SQLFilingRepository{db: db}
}

// CheckDuplicate reports whether a filing with the given content hash
// already exists for the watch.
func (r *SQLFilingRepository) CheckDuplicate(watchName, contentHash string) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		SELECT id FROM filings WHERE watch_name = ? AND content_hash = ? LIMIT 1
	`, watchName, contentHash).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}

	return true, nil
}

// UpsertFiling stores a normalized record; the fields and links maps
// are persisted as JSON text.
func (r *SQLFilingRepository) UpsertFiling(watchName string, filing FilingRecord) error {
	fieldsJSON, err := encodeMap(filing.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode summary fields: %w", err)
	}
	linksJSON, err := encodeMap(filing.Links)
	if err != nil {
		return fmt.Errorf("failed to encode derived links: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO filings (
			watch_name, record_id, title, summary, updated, href, type,
			fields, links, position, content_hash, is_filtered, filter_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (watch_name, content_hash) DO UPDATE SET
			record_id = excluded.record_id,
			title = excluded.title,
			summary = excluded.summary,
			updated = excluded.updated,
			href = excluded.href,
			type = excluded.type,
			fields = excluded.fields,
			links = excluded.links,
			position = excluded.position,
			is_filtered = excluded.is_filtered,
			filter_reason = excluded.filter_reason
	`, watchName, filing.RecordID, filing.Title, filing.Summary, filing.Updated,
		filing.Href, filing.Type, fieldsJSON, linksJSON, filing.Position,
		filing.ContentHash, filing.IsFiltered, filing.FilterReason)

	if err != nil {
		return fmt.Errorf("failed to upsert filing: %w", err)
	}

	return nil
}

// GetVisibleFilings returns non-filtered filings in source order.
func (r *SQLFilingRepository) GetVisibleFilings(watchName string, limit int) ([]Filing, error) {
	rows, err := r.db.Query(`
		SELECT id, watch_name, record_id, title, summary, updated, href, type,
		       fields, links, position, content_hash, is_filtered, filter_reason,
		       extraction_status, extracted_content, extracted_at, extraction_error,
		       created_at
		FROM filings
		WHERE watch_name = ?
		  AND is_filtered = 0
		ORDER BY position
		LIMIT ?
	`, watchName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get visible filings: %w", err)
	}
	defer rows.Close()

	return scanFilings(rows)
}

func (r *SQLFilingRepository) GetFilingCount(watchName string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM filings WHERE watch_name = ?", watchName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get filing count: %w", err)
	}
	return count, nil
}

// GetFilingStats returns total, visible and filtered counts for a watch.
func (r *SQLFilingRepository) GetFilingStats(watchName string) (total, visible, filtered int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_filtered = 0 THEN 1 ELSE 0 END), 0) AS visible,
			COALESCE(SUM(CASE WHEN is_filtered = 1 THEN 1 ELSE 0 END), 0) AS filtered
		FROM filings
		WHERE watch_name = ?
	`, watchName).Scan(&total, &visible, &filtered)

	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get filing stats: %w", err)
	}

	return total, visible, filtered, nil
}

// GetFilingsForExtraction returns visible filings whose document text
// has not been extracted yet.
func (r *SQLFilingRepository) GetFilingsForExtraction(watchName string, limit int) ([]FilingForExtraction, error) {
	rows, err := r.db.Query(`
		SELECT id, href
		FROM filings
		WHERE watch_name = ?
		  AND is_filtered = 0
		  AND extraction_status = ''
		  AND href != ''
		ORDER BY position
		LIMIT ?
	`, watchName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get filings for extraction: %w", err)
	}
	defer rows.Close()

	var filings []FilingForExtraction
	for rows.Next() {
		var filing FilingForExtraction
		if err := rows.Scan(&filing.ID, &filing.Href); err != nil {
			return nil, fmt.Errorf("failed to scan filing row: %w", err)
		}
		filings = append(filings, filing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating filing rows: %w", err)
	}

	return filings, nil
}

func (r *SQLFilingRepository) UpdateExtractionStatus(filingID int64, status string, extractedAt *time.Time, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE filings
		SET extraction_status = ?, extracted_at = ?, extraction_error = ?
		WHERE id = ?
	`, status, extractedAt, errorMsg, filingID)

	if err != nil {
		return fmt.Errorf("failed to update extraction status: %w", err)
	}

	return nil
}

func (r *SQLFilingRepository) UpdateExtractedContent(filingID int64, content string, status string, extractedAt *time.Time) error {
	_, err := r.db.Exec(`
		UPDATE filings
		SET extracted_content = ?, extraction_status = ?, extracted_at = ?, extraction_error = ''
		WHERE id = ?
	`, content, status, extractedAt, filingID)

	if err != nil {
		return fmt.Errorf("failed to update extracted content: %w", err)
	}

	return nil
}

func scanFilings(rows *sql.Rows) ([]Filing, error) {
	var filings []Filing
	for rows.Next() {
		var filing Filing
		var fieldsJSON, linksJSON string
		err := rows.Scan(
			&filing.ID, &filing.WatchName, &filing.RecordID, &filing.Title,
			&filing.Summary, &filing.Updated, &filing.Href, &filing.Type,
			&fieldsJSON, &linksJSON, &filing.Position, &filing.ContentHash,
			&filing.IsFiltered, &filing.FilterReason,
			&filing.ExtractionStatus, &filing.ExtractedContent,
			&filing.ExtractedAt, &filing.ExtractionError,
			&filing.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan filing row: %w", err)
		}

		if filing.Fields, err = decodeMap(fieldsJSON); err != nil {
			return nil, fmt.Errorf("failed to decode summary fields: %w", err)
		}
		if filing.Links, err = decodeMap(linksJSON); err != nil {
			return nil, fmt.Errorf("failed to decode derived links: %w", err)
		}

		filings = append(filings, filing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating filing rows: %w", err)
	}

	return filings, nil
}

func encodeMap(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeMap(data string) (map[string]string, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, err
	}
	return m, nil
}
