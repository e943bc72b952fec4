// Package pipeline drives the end-to-end analysis of extracted recording
// sessions: load, compute metrics, render reports, optionally persist.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/loader"
	"github.com/CameronDeb/meta-aria-2/internal/metrics"
	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/report"
	"github.com/CameronDeb/meta-aria-2/internal/repository"
)

// Pipeline processes extracted sessions into reports.
type Pipeline struct {
	log        *zap.Logger
	calculator *metrics.Calculator
	generator  *report.Generator
	opts       loader.Options

	// Persist writes session rows through the repository when set. The
	// database connection must already be initialized.
	Persist bool

	// CompanionDir overrides where the perception CSVs are read from.
	// Empty means alongside the session's own files.
	CompanionDir string
}

// Result is the outcome of one processed session.
type Result struct {
	SessionName string
	ReportPath  string
	Metrics     *models.SessionMetrics
}

func New(log *zap.Logger, calculator *metrics.Calculator, opts loader.Options) *Pipeline {
	return &Pipeline{
		log:        log,
		calculator: calculator,
		generator:  report.NewGenerator(log),
		opts:       opts,
	}
}

// ProcessSession analyzes one extracted session directory and writes its
// report under outputDir/<session name>.
func (p *Pipeline) ProcessSession(sessionDir, outputDir string) (*Result, error) {
	sessionName := filepath.Base(filepath.Clean(sessionDir))
	p.log.Info("Processing session", zap.String("session", sessionName))

	session, err := loader.LoadSession(sessionDir, p.opts, p.log)
	if err != nil {
		return nil, fmt.Errorf("could not load session %s: %w", sessionName, err)
	}

	result := p.calculator.ComputeSessionMetrics(session)
	companionDir := sessionDir
	if p.CompanionDir != "" {
		companionDir = p.CompanionDir
	}
	hand, gaze := loader.LoadCompanionData(companionDir, p.log)
	p.calculator.AttachCompanionMetrics(result, hand, gaze)
	recs := p.calculator.Recommendations(result)

	reportPath, err := p.generator.Generate(sessionName, session, result, recs, filepath.Join(outputDir, sessionName))
	if err != nil {
		return nil, fmt.Errorf("could not generate report for %s: %w", sessionName, err)
	}

	if p.Persist {
		if _, err := repository.SaveSessionTx(sessionName, session, result); err != nil {
			// The report on disk is already complete; a store failure
			// should not discard it.
			p.log.Error("Failed to persist session metrics",
				zap.String("session", sessionName), zap.Error(err))
		}
	}

	return &Result{SessionName: sessionName, ReportPath: reportPath, Metrics: result}, nil
}

// ProcessBatch analyzes every session directory under root. A failing
// session is logged and skipped; the rest of the batch still runs.
func (p *Pipeline) ProcessBatch(root, outputDir string) ([]*Result, error) {
	dirs, err := sessionDirs(root)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no session directories found under %s", root)
	}

	var results []*Result
	for _, dir := range dirs {
		res, err := p.ProcessSession(dir, outputDir)
		if err != nil {
			p.log.Error("Session failed, continuing batch",
				zap.String("session", filepath.Base(dir)), zap.Error(err))
			continue
		}
		results = append(results, res)
	}

	p.log.Info("Batch complete",
		zap.Int("processed", len(results)),
		zap.Int("failed", len(dirs)-len(results)),
	)
	return results, nil
}

// sessionDirs finds the extracted session directories under root. A
// directory qualifies when it carries a metadata.json.
func sessionDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("could not read sessions directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "metadata.json")); err == nil {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
