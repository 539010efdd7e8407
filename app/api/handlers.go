package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"edgarcomb/app/cfg"
	"edgarcomb/app/client"
	"edgarcomb/app/database"
	"edgarcomb/app/tasks"
	"edgarcomb/app/watch"
)

func NewHandler(configCache *watch.ConfigCache, watchRepo database.WatchRepository,
	filingRepo database.FilingRepository, c *client.Client, filterer *watch.Filterer,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		watchRepo:   watchRepo,
		filingRepo:  filingRepo,
		configCache: configCache,
		client:      c,
		filterer:    filterer,
		scheduler:   scheduler,
	}
}

// GetWatch serves the stored, filtered filings of a watch.
func (h *Handler) GetWatch(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	watchConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Watch configuration not found", "watch", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	w, err := h.watchRepo.GetWatch(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_watch", "watch", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if w == nil {
		slog.Error("Watch not found in database", "watch", name)
		c.Status(http.StatusNotFound)
		return
	}

	filings, err := h.filingRepo.GetVisibleFilings(name, watchConfig.Settings.MaxRecords)
	if err != nil {
		slog.Error("Database error", "operation", "get_filings", "watch", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Watch-Filings", strconv.Itoa(len(filings)))
	c.Header("X-Watch-Name", name)
	c.Header("X-Last-Updated", w.UpdatedAt.Format(time.RFC3339))

	response := gin.H{
		"watch":           name,
		"last_fetched_at": w.LastFetchedAt,
		"filings":         renderFilings(filings),
	}
	if baseUrl := cfg.Get().BaseUrl; baseUrl != "" {
		response["url"] = strings.TrimSuffix(baseUrl, "/") + "/watches/" + name
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if watchCount, err := h.watchRepo.GetWatchCount(); err == nil {
		health["watches"] = watchCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListWatches(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	watches := make([]map[string]interface{}, 0, len(configs))

	for _, watchConfig := range configs {
		watchInfo := map[string]interface{}{
			"name":             watchConfig.Name,
			"query":            watchConfig.Query,
			"enabled":          watchConfig.Settings.Enabled,
			"max_records":      watchConfig.Settings.MaxRecords,
			"refresh_interval": (time.Duration(watchConfig.Settings.RefreshInterval) * time.Second).String(),
			"filters":          len(watchConfig.Filters),
		}

		if w, err := h.watchRepo.GetWatch(watchConfig.Name); err == nil && w != nil {
			watchInfo["last_fetched_at"] = w.LastFetchedAt
			watchInfo["next_fetch_at"] = w.NextFetchAt
			watchInfo["updated_at"] = w.UpdatedAt
		}

		if filingCount, err := h.filingRepo.GetFilingCount(watchConfig.Name); err == nil {
			watchInfo["filing_count"] = filingCount
		}

		watches = append(watches, watchInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"watches": watches,
		"total":   len(watches),
	})
}

func (h *Handler) APIGetWatchDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing watch name parameter"})
		return
	}

	watchConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Watch configuration not found", "watch", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch configuration not found"})
		return
	}

	w, err := h.watchRepo.GetWatch(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_watch", "watch", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if w == nil {
		slog.Error("Watch not found in database", "watch", name)
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch not found in database"})
		return
	}

	details := map[string]interface{}{
		"name":              name,
		"query":             watchConfig.Query,
		"enabled":           watchConfig.Settings.Enabled,
		"max_records":       watchConfig.Settings.MaxRecords,
		"refresh_interval":  (time.Duration(watchConfig.Settings.RefreshInterval) * time.Second).String(),
		"timeout":           (time.Duration(watchConfig.Settings.Timeout) * time.Second).String(),
		"extract_documents": watchConfig.Settings.ExtractDocuments,
		"filters":           watchConfig.Filters,
	}

	details["database"] = map[string]interface{}{
		"name":            w.Name,
		"last_fetched_at": w.LastFetchedAt,
		"next_fetch_at":   w.NextFetchAt,
		"created_at":      w.CreatedAt,
		"updated_at":      w.UpdatedAt,
	}

	if total, visible, filtered, err := h.filingRepo.GetFilingStats(name); err == nil {
		details["filings"] = map[string]interface{}{
			"total":    total,
			"visible":  visible,
			"filtered": filtered,
		}
	}

	c.JSON(http.StatusOK, details)
}

// APIRefreshWatch reloads a watch configuration from disk and enqueues
// an immediate sync and fetch cycle.
func (h *Handler) APIRefreshWatch(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing watch name parameter"})
		return
	}

	_, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Watch configuration not found", "watch", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch configuration not found"})
		return
	}

	watchConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "watch", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	syncWatchTask := tasks.NewSyncWatchConfigTask(name, watchConfig, h.watchRepo)
	err = h.scheduler.EnqueueTask(syncWatchTask)
	if err != nil {
		slog.Error("Error enqueueing sync task", "watch", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	processWatchTask := tasks.NewProcessWatchTask(name, watchConfig, h.client, h.filterer, h.watchRepo, h.filingRepo)
	err = h.scheduler.EnqueueTask(processWatchTask)
	if err != nil {
		slog.Error("Error enqueueing process task", "watch", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue process task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration reloaded and tasks enqueued successfully",
		"watch": gin.H{
			"name":  name,
			"query": watchConfig.Query,
		},
		"tasks": []gin.H{
			{
				"id":   syncWatchTask.ID,
				"type": syncWatchTask.Type,
			},
			{
				"id":   processWatchTask.ID,
				"type": processWatchTask.Type,
			},
		},
	})
}

// APISearchFilings runs a live EDGAR company query without touching the
// database.
func (h *Handler) APISearchFilings(c *gin.Context) {
	query := client.FilingQuery{
		CIK:        c.Query("cik"),
		Company:    c.Query("company"),
		State:      c.Query("state"),
		Country:    c.Query("country"),
		SIC:        c.Query("sic"),
		FormType:   c.Query("type"),
		Ownership:  client.Ownership(c.Query("ownership")),
		DateAfter:  c.Query("date_after"),
		DateBefore: c.Query("date_before"),
	}

	if query.CIK == "" && query.Company == "" && query.State == "" &&
		query.Country == "" && query.SIC == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one of cik, company, state, country or sic is required"})
		return
	}

	switch query.Ownership {
	case "", client.OwnershipOnly, client.OwnershipExclude, client.OwnershipInclude:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ownership value"})
		return
	}

	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit value"})
			return
		}
		limit = parsed
	}

	records, err := h.client.Filings(c.Request.Context(), query, limit)
	if err != nil {
		slog.Error("EDGAR query failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "EDGAR query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

func (h *Handler) APIGetCompanyFilings(c *gin.Context) {
	cik := c.Param("cik")
	if cik == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cik parameter"})
		return
	}

	ownership := client.Ownership(c.Query("ownership"))
	switch ownership {
	case "", client.OwnershipOnly, client.OwnershipExclude, client.OwnershipInclude:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ownership value"})
		return
	}

	records, err := h.client.FilingsByCIK(c.Request.Context(), cik, ownership,
		c.Query("date_after"), c.Query("date_before"))
	if err != nil {
		slog.Error("EDGAR query failed", "cik", cik, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "EDGAR query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cik":     cik,
		"records": records,
		"total":   len(records),
	})
}

func (h *Handler) APIListCompanyDirectories(c *gin.Context) {
	cik := c.Param("cik")
	if cik == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cik parameter"})
		return
	}

	directories, err := h.client.CompanyDirectories(c.Request.Context(), cik)
	if err != nil {
		slog.Error("EDGAR archive query failed", "cik", cik, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "EDGAR archive query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cik":         cik,
		"directories": directories,
		"total":       len(directories),
	})
}

func (h *Handler) APIGetCompanyDirectory(c *gin.Context) {
	cik := c.Param("cik")
	filingID := c.Param("filing_id")
	if cik == "" || filingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cik or filing_id parameter"})
		return
	}

	items, err := h.client.CompanyDirectory(c.Request.Context(), cik, filingID)
	if err != nil {
		slog.Error("EDGAR archive query failed", "cik", cik, "filing_id", filingID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "EDGAR archive query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cik":       cik,
		"filing_id": filingID,
		"items":     items,
		"total":     len(items),
	})
}

func renderFilings(filings []database.Filing) []map[string]interface{} {
	rendered := make([]map[string]interface{}, 0, len(filings))
	for _, filing := range filings {
		entry := map[string]interface{}{
			"id":      filing.RecordID,
			"title":   filing.Title,
			"summary": filing.Summary,
			"updated": filing.Updated,
			"href":    filing.Href,
			"type":    filing.Type,
			"fields":  filing.Fields,
			"links":   filing.Links,
		}

		if filing.ExtractionStatus == "success" {
			entry["extracted_content"] = filing.ExtractedContent
			entry["extracted_at"] = filing.ExtractedAt
		}

		rendered = append(rendered, entry)
	}
	return rendered
}
