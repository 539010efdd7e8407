package tasks

import (
	"testing"

	"edgarcomb/app/edgar"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask(TaskTypeProcessWatch, "apple-filings")

	if task.ID == "" {
		t.Errorf("Expected non-empty task ID")
	}
	if task.Type != TaskTypeProcessWatch {
		t.Errorf("Expected type %s, got %s", TaskTypeProcessWatch, task.Type)
	}
	if task.WatchName != "apple-filings" {
		t.Errorf("Expected watch name 'apple-filings', got %s", task.WatchName)
	}
	if task.RetryCount != 0 {
		t.Errorf("Expected retry count 0, got %d", task.RetryCount)
	}
	if task.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.MaxRetries)
	}
}

func TestTaskRetryCounting(t *testing.T) {
	task := NewTask(TaskTypeExtractDocuments, "apple-filings")

	for i := 0; i < task.MaxRetries; i++ {
		if !task.CanRetry() {
			t.Errorf("Expected CanRetry true at retry count %d", task.RetryCount)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Errorf("Expected CanRetry false at retry count %d", task.RetryCount)
	}
}

func TestTaskDurationBeforeStart(t *testing.T) {
	task := NewTask(TaskTypeSyncWatchConfig, "apple-filings")

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before Start, got %v", task.GetDuration())
	}

	task.Start()
	if task.StartedAt == nil {
		t.Errorf("Expected StartedAt to be set after Start")
	}
}

func TestGenerateContentHash(t *testing.T) {
	record := edgar.Record{
		ID:   "urn:tag:sec.gov,2008:accession-number=0000066740-24-000001",
		Href: "https://www.sec.gov/Archives/edgar/data/66740/000006674024000001-index.htm",
	}

	first := generateContentHash(record)
	second := generateContentHash(record)
	if first != second {
		t.Errorf("Expected stable hash, got %s and %s", first, second)
	}

	if len(first) != 64 {
		t.Errorf("Expected 64 character hash, got %d", len(first))
	}

	other := record
	other.Href = "https://www.sec.gov/Archives/edgar/data/66740/other-index.htm"
	if generateContentHash(other) == first {
		t.Errorf("Expected different hash for different href")
	}
}
