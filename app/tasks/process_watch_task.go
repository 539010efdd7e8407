package tasks

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"edgarcomb/app/client"
	"edgarcomb/app/database"
	"edgarcomb/app/edgar"
	"edgarcomb/app/watch"
)

type ProcessWatchTask struct {
	Task
	WatchConfig *watch.Config
	client      *client.Client
	filterer    *watch.Filterer
	watchRepo   database.WatchRepository
	filingRepo  database.FilingRepository
}

func NewProcessWatchTask(watchName string, watchConfig *watch.Config, c *client.Client, filterer *watch.Filterer, watchRepo database.WatchRepository, filingRepo database.FilingRepository) *ProcessWatchTask {
	return &ProcessWatchTask{
		Task:        NewTask(TaskTypeProcessWatch, watchName),
		WatchConfig: watchConfig,
		client:      c,
		filterer:    filterer,
		watchRepo:   watchRepo,
		filingRepo:  filingRepo,
	}
}

func (t *ProcessWatchTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.WatchConfig.Settings.Enabled {
		slog.Debug("Watch disabled, skipping", "watch", t.WatchName)
		return nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(t.WatchConfig.Settings.Timeout)*time.Second)
	defer cancel()

	records, err := t.client.Filings(fetchCtx, t.WatchConfig.FilingQuery(), t.WatchConfig.Settings.MaxRecords)
	if err != nil {
		return fmt.Errorf("failed to fetch filings: %w", err)
	}

	duplicateCount := 0
	filteredCount := 0
	newCount := 0

	if len(records) > 0 {
		results := t.filterer.Run(records, t.WatchConfig)

		for position, result := range results {
			contentHash := generateContentHash(result.Record)

			isDuplicate, err := t.filingRepo.CheckDuplicate(t.WatchName, contentHash)
			if err != nil {
				return fmt.Errorf("failed to check for duplicates: %w", err)
			}
			if isDuplicate {
				duplicateCount++
				continue
			}

			if result.IsFiltered {
				filteredCount++
			} else {
				newCount++
			}

			err = t.filingRepo.UpsertFiling(t.WatchName, database.FilingRecord{
				RecordID:     result.Record.ID,
				Title:        result.Record.Title,
				Summary:      result.Record.Summary,
				Updated:      result.Record.Updated,
				Href:         result.Record.Href,
				Type:         result.Record.Type,
				Fields:       result.Record.Fields,
				Links:        result.Record.Links,
				Position:     position,
				ContentHash:  contentHash,
				IsFiltered:   result.IsFiltered,
				FilterReason: result.FilterReason,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert filing: %w", err)
			}
		}
	}

	nextFetch := time.Now().UTC().Add(time.Duration(t.WatchConfig.Settings.RefreshInterval) * time.Second)
	if err := t.watchRepo.UpdateWatchFetched(t.WatchName, nextFetch); err != nil {
		return fmt.Errorf("failed to update watch fetch times: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessWatch",
		"watch", t.WatchName,
		"duration", t.GetDuration(),
		"total", len(records),
		"duplicates", duplicateCount,
		"filtered", filteredCount,
		"new", newCount)

	return nil
}

func generateContentHash(record edgar.Record) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(record.ID+"|"+record.Href)))
}
