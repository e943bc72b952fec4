package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/config"
)

func TestListSessionsFromReportsDir(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{}

	dir := t.TempDir()
	sessionDir := filepath.Join(dir, "session_a")
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		t.Fatal(err)
	}
	metricsJSON := `{
		"session_info": {"duration": 12.5},
		"metrics": {"performance": {"overall_score": 81.0}}
	}`
	if err := os.WriteFile(filepath.Join(sessionDir, "metrics.json"), []byte(metricsJSON), 0644); err != nil {
		t.Fatal(err)
	}
	// Directories without a metrics file are not sessions.
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	h := NewResultsHandler(zap.NewNop(), dir)
	router := gin.New()
	router.GET("/api/sessions", h.ListSessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var summaries []sessionSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("sessions = %d, want 1", len(summaries))
	}
	if summaries[0].Name != "session_a" || summaries[0].OverallScore != 81 || summaries[0].Duration != 12.5 {
		t.Errorf("summary = %+v", summaries[0])
	}
	if summaries[0].ReportURL != "/reports/session_a/report.html" {
		t.Errorf("report url = %q", summaries[0].ReportURL)
	}
}

func TestListSessionsMissingDir(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{}

	h := NewResultsHandler(zap.NewNop(), filepath.Join(t.TempDir(), "nope"))
	router := gin.New()
	router.GET("/api/sessions", h.ListSessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("body = %s, want empty list", body)
	}
}
