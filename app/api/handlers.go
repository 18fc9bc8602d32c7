package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradepulse/tradepulse/app/news"
	"github.com/tradepulse/tradepulse/app/tasks"
	"github.com/tradepulse/tradepulse/app/watchlist"
)

func NewHandler(pipeline PipelineInterface, scheduler tasks.TaskSchedulerInterface,
	watchlist *watchlist.Watchlist, configCache *news.ConfigCache) *Handler {
	return &Handler{
		pipeline:    pipeline,
		scheduler:   scheduler,
		watchlist:   watchlist,
		configCache: configCache,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	stats := h.pipeline.Stats()

	health := gin.H{
		"status":          "healthy",
		"timestamp":       time.Now().In(time.Local).Format(time.RFC3339),
		"loaded_sources":  h.configCache.GetConfigCount(),
		"watchlist_size":  h.watchlist.Len(),
		"scans_completed": stats.ScansCompleted,
		"alerts_sent":     stats.AlertsSent,
	}

	if stats.LastScanAt.IsZero() {
		health["last_scan_at"] = nil
	} else {
		health["last_scan_at"] = stats.LastScanAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := h.pipeline.Stats()

	response := gin.H{
		"scans_completed":   stats.ScansCompleted,
		"items_processed":   stats.ItemsProcessed,
		"duplicates":        stats.Duplicates,
		"below_threshold":   stats.BelowThreshold,
		"no_match":          stats.NoMatch,
		"quote_unavailable": stats.QuoteUnavailable,
		"alerts_sent":       stats.AlertsSent,
		"delivery_failures": stats.DeliveryFailures,
	}

	if !stats.LastScanAt.IsZero() {
		response["last_scan_at"] = stats.LastScanAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) TriggerScan(c *gin.Context) {
	task := tasks.NewScanTask(h.pipeline, "manual")

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue manual scan", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue scan"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scan enqueued", "task_id": task.GetID()})
}

func (h *Handler) SendTestMessage(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "AAPL")

	if !h.watchlist.Contains(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol not on watchlist", "symbol": symbol})
		return
	}

	task := tasks.NewTestMessageTask(h.pipeline, symbol)

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue test message", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue test message"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "test message enqueued", "symbol": symbol, "task_id": task.GetID()})
}

func (h *Handler) ListWatchlist(c *gin.Context) {
	symbols := h.watchlist.List()

	c.JSON(http.StatusOK, gin.H{
		"symbols": symbols,
		"count":   len(symbols),
	})
}

func (h *Handler) AddWatchlistSymbol(c *gin.Context) {
	symbol := c.Param("symbol")

	if err := h.watchlist.Add(symbol); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slog.Info("Watchlist symbol added", "symbol", symbol)
	c.JSON(http.StatusCreated, gin.H{"status": "added", "symbol": symbol})
}

func (h *Handler) RemoveWatchlistSymbol(c *gin.Context) {
	symbol := c.Param("symbol")

	if !h.watchlist.Remove(symbol) {
		c.JSON(http.StatusNotFound, gin.H{"error": "symbol not on watchlist", "symbol": symbol})
		return
	}

	slog.Info("Watchlist symbol removed", "symbol", symbol)
	c.JSON(http.StatusOK, gin.H{"status": "removed", "symbol": symbol})
}
