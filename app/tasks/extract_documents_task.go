package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"edgarcomb/app/database"
	"edgarcomb/app/watch"
)

type ExtractDocumentsTask struct {
	Task
	WatchConfig       *watch.Config
	httpClient        *http.Client
	documentExtractor *watch.DocumentExtractor
	filingRepo        database.FilingRepository
	userAgent         string
}

func NewExtractDocumentsTask(watchName string, watchConfig *watch.Config, httpClient *http.Client, documentExtractor *watch.DocumentExtractor, filingRepo database.FilingRepository, userAgent string) *ExtractDocumentsTask {
	return &ExtractDocumentsTask{
		Task:              NewTask(TaskTypeExtractDocuments, watchName),
		WatchConfig:       watchConfig,
		httpClient:        httpClient,
		documentExtractor: documentExtractor,
		filingRepo:        filingRepo,
		userAgent:         userAgent,
	}
}

func (t *ExtractDocumentsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.WatchConfig.Settings.ExtractDocuments {
		slog.Debug("Document extraction disabled for watch", "watch", t.WatchName)
		return nil
	}

	filings, err := t.filingRepo.GetFilingsForExtraction(t.WatchName, t.WatchConfig.Settings.MaxRecords)
	if err != nil {
		return fmt.Errorf("failed to get filings for document extraction: %w", err)
	}

	if len(filings) == 0 {
		slog.Debug("No filings need document extraction", "watch", t.WatchName)
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, filing := range filings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		extractCtx, cancel := context.WithTimeout(ctx, time.Duration(t.WatchConfig.Settings.Timeout)*time.Second)

		err := t.extractDocumentForFiling(extractCtx, filing)
		cancel()

		if err != nil {
			slog.Error("Failed to extract document for filing", "filing_id", filing.ID, "url", filing.Href, "error", err)
			errorCount++

			now := time.Now().UTC()
			err = t.filingRepo.UpdateExtractionStatus(filing.ID, "failed", &now, err.Error())
			if err != nil {
				slog.Error("Failed to update document extraction status", "filing_id", filing.ID, "error", err)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"watch", t.WatchName,
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractDocumentsTask) extractDocumentForFiling(ctx context.Context, filing database.FilingForExtraction) error {
	if filing.Href == "" {
		return fmt.Errorf("filing has no document URL")
	}

	data, err := t.fetchDocument(ctx, filing.Href)
	if err != nil {
		return fmt.Errorf("failed to fetch filing document: %w", err)
	}

	extractedContent, err := t.documentExtractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract document text: %w", err)
	}

	now := time.Now().UTC()
	err = t.filingRepo.UpdateExtractedContent(filing.ID, extractedContent, "success", &now)
	if err != nil {
		return fmt.Errorf("failed to update extracted content and status: %w", err)
	}

	slog.Debug("Document extracted successfully", "filing_id", filing.ID, "url", filing.Href, "content_length", len(extractedContent))
	return nil
}

func (t *ExtractDocumentsTask) fetchDocument(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
