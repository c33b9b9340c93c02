package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/visits"
)

const recordTimeout = 5 * time.Second

// untracked lists path prefixes that are never counted as page views.
var untracked = []string{
	"/static/",
	"/images/",
	"/ai/",
	"/healthz",
	"/metrics",
	"/favicon",
}

// visitorTrackingMiddleware counts page loads in the background.
func visitorTrackingMiddleware(tracker *visits.Tracker, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || skipTracking(c.Request.URL.Path) {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		metrics.PageViews.Inc()
		if tracker.Enabled() {
			go recordVisit(tracker, logger)
		}
		c.Next()
	}
}

func skipTracking(path string) bool {
	for _, prefix := range untracked {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func recordVisit(tracker *visits.Tracker, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := tracker.Record(ctx); err != nil {
		logger.Error("error updating visitor count", "error", err)
	}
}
