// Package repository persists analyzed sessions and answers the queries
// behind the progress charts.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CameronDeb/meta-aria-2/internal/database"
	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// TimelineDataPoint is one session's value for a metric, ordered by date.
type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SaveSessionTx saves the summary row and all scalar metric rows for one
// analyzed session in a single transaction.
func SaveSessionTx(sessionName string, session *models.SensorSession, m *models.SessionMetrics) (uuid.UUID, error) {
	record := models.SessionRecord{
		ID:            uuid.New(),
		SessionName:   sessionName,
		RecordingPath: session.RecordingPath,
		DurationS:     session.DurationS,
		FrameCount:    session.FrameCount,
		OverallScore:  m.Performance.OverallScore,
		CreatedAt:     time.Now().UTC(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		var rows []models.SessionMetricRecord
		for category, values := range m.Flatten() {
			for key, value := range values {
				rows = append(rows, models.SessionMetricRecord{
					SessionID:   record.ID,
					Category:    category,
					MetricKey:   key,
					MetricValue: value,
					CreatedAt:   record.CreatedAt,
				})
			}
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

// ListSessions returns the stored session summaries, newest first.
func ListSessions(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	var sessions []models.SessionRecord
	q := database.DB.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}

// GetSessionMetrics returns all stored metric rows for one session.
func GetSessionMetrics(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMetricRecord, error) {
	var rows []models.SessionMetricRecord
	err := database.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("category, metric_key").
		Find(&rows).Error
	return rows, err
}

// GetTimelineData returns one metric's value across all stored sessions,
// ordered by session date. It backs the progress-over-time chart.
func GetTimelineData(ctx context.Context, category, metricKey string) ([]TimelineDataPoint, error) {
	var data []TimelineDataPoint

	query := `
		SELECT
			m.created_at AS date,
			m.metric_value AS value
		FROM session_metric_records m
		JOIN session_records s ON m.session_id = s.id
		WHERE m.category = ? AND m.metric_key = ?
		ORDER BY m.created_at;
	`
	err := database.DB.WithContext(ctx).Raw(query, category, metricKey).Scan(&data).Error
	return data, err
}
