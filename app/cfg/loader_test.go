package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:              "8080",
		BaseUrl:           "https://filings.example.com",
		UserAgent:         "Test Agent (test@example.com)",
		WorkerCount:       3,
		SchedulerInterval: 60,
		APIAccessKey:      "test-key",
		Version:           "test-version",
		WatchesDir:        "./watches",
		DBPath:            "./test.db",
		EdgarBaseUrl:      "https://www.sec.gov/cgi-bin/browse-edgar",
		EdgarArchiveUrl:   "https://www.sec.gov/Archives/edgar/data",
		Timezone:          "UTC",
		Debug:             true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WatchesDir != "./watches" {
		t.Errorf("Expected watches dir './watches', got '%s'", cfg.WatchesDir)
	}
	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.EdgarBaseUrl != "https://www.sec.gov/cgi-bin/browse-edgar" {
		t.Errorf("Unexpected EDGAR base URL: %s", cfg.EdgarBaseUrl)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestSetAndGet(t *testing.T) {
	original := globalCfg
	defer Set(original)

	cfg := &Cfg{Port: "9090"}
	Set(cfg)

	if Get().Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", Get().Port)
	}
}
