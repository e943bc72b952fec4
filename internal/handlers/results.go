// Package handlers implements the report server's HTTP endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/CameronDeb/meta-aria-2/internal/config"
	"github.com/CameronDeb/meta-aria-2/internal/repository"
)

type ResultsHandler struct {
	log        *zap.Logger
	reportsDir string
}

func NewResultsHandler(log *zap.Logger, reportsDir string) *ResultsHandler {
	return &ResultsHandler{log: log, reportsDir: reportsDir}
}

// sessionSummary is one row in the session index.
type sessionSummary struct {
	Name         string  `json:"name"`
	ReportURL    string  `json:"report_url"`
	OverallScore float64 `json:"overall_score"`
	Duration     float64 `json:"duration"`
}

// ListSessions returns the analyzed sessions. With the metrics store
// enabled it reads the database; otherwise it scans the reports directory
// for generated metrics.json files.
func (h *ResultsHandler) ListSessions(c *gin.Context) {
	if config.Conf.Database.Enabled {
		records, err := repository.ListSessions(c, 0)
		if err != nil {
			h.log.Error("Failed to list sessions", zap.Error(err))
			c.String(http.StatusInternalServerError, "Failed to load sessions")
			return
		}
		summaries := make([]sessionSummary, 0, len(records))
		for _, r := range records {
			summaries = append(summaries, sessionSummary{
				Name:         r.SessionName,
				ReportURL:    "/reports/" + r.SessionName + "/report.html",
				OverallScore: r.OverallScore,
				Duration:     r.DurationS,
			})
		}
		c.JSON(http.StatusOK, summaries)
		return
	}

	summaries, err := h.scanReports()
	if err != nil {
		h.log.Error("Failed to scan reports directory", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load sessions")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ResultsHandler) scanReports() ([]sessionSummary, error) {
	entries, err := os.ReadDir(h.reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []sessionSummary{}, nil
		}
		return nil, err
	}

	summaries := make([]sessionSummary, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(h.reportsDir, entry.Name(), "metrics.json"))
		if err != nil {
			continue
		}
		var doc struct {
			SessionInfo struct {
				Duration float64 `json:"duration"`
			} `json:"session_info"`
			Metrics map[string]map[string]float64 `json:"metrics"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			h.log.Warn("Skipping unreadable metrics file", zap.String("session", entry.Name()), zap.Error(err))
			continue
		}
		summaries = append(summaries, sessionSummary{
			Name:         entry.Name(),
			ReportURL:    "/reports/" + entry.Name() + "/report.html",
			OverallScore: doc.Metrics["performance"]["overall_score"],
			Duration:     doc.SessionInfo.Duration,
		})
	}
	return summaries, nil
}

// SessionMetrics returns the stored metric rows for one session.
func (h *ResultsHandler) SessionMetrics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid session id")
		return
	}
	rows, err := repository.GetSessionMetrics(c, id)
	if err != nil {
		h.log.Error("Failed to get session metrics", zap.Error(err), zap.String("session_id", id.String()))
		c.String(http.StatusInternalServerError, "Failed to load session metrics")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Timeline renders one metric's progression across stored sessions as a
// chart page.
func (h *ResultsHandler) Timeline(c *gin.Context) {
	category := c.DefaultQuery("category", "performance")
	metricKey := c.DefaultQuery("metric", "overall_score")

	data, err := repository.GetTimelineData(c, category, metricKey)
	if err != nil {
		h.log.Error("Failed to get timeline data", zap.Error(err),
			zap.String("category", category), zap.String("metric", metricKey))
		c.String(http.StatusInternalServerError, "Failed to load timeline data")
		return
	}

	line := generateTimelineChart(data, metricLabel(metricKey))
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render timeline chart", zap.Error(err))
	}
}

func metricLabel(metricKey string) string {
	words := strings.Split(metricKey, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func generateTimelineChart(data []repository.TimelineDataPoint, metricLabel string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Metric Over Time",
			Subtitle: metricLabel,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0)
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}

	line.AddSeries(metricLabel, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
