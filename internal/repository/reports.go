// Package repository persists completed analysis reports so that past
// interpretations can be retrieved and audited per user.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/domain"
)

// Report is a stored analysis result tied to the requesting user.
type Report struct {
	ID          uuid.UUID               `json:"id"`
	Username    string                  `json:"username"`
	RequestHash string                  `json:"request_hash"`
	Response    domain.AnalysisResponse `json:"response"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ReportRepository handles analysis report persistence
type ReportRepository struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool, logger *logrus.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: logger,
	}
}

// EnsureSchema creates the reports table if it does not exist.
func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		request_hash TEXT NOT NULL,
		response JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_reports_username ON reports(username);
	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	`
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating reports schema: %w", err)
	}
	return nil
}

// RequestHash derives a stable key from the observed panels of a request.
func RequestHash(observed domain.ObservedPanels) string {
	payload, err := json.Marshal(observed)
	if err != nil {
		payload = []byte(fmt.Sprint(observed))
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Save inserts a new analysis report.
func (r *ReportRepository) Save(ctx context.Context, username string, requestHash string, response domain.AnalysisResponse) (*Report, error) {
	payload, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	report := &Report{
		ID:          uuid.New(),
		Username:    username,
		RequestHash: requestHash,
		Response:    response,
		CreatedAt:   time.Now().UTC(),
	}

	query := `
		INSERT INTO reports (id, username, request_hash, response, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.Exec(ctx, query,
		report.ID,
		report.Username,
		report.RequestHash,
		payload,
		report.CreatedAt,
	)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"report_id": report.ID,
			"username":  username,
			"error":     err,
		}).Error("Failed to save report")
		return nil, fmt.Errorf("saving report: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"report_id":    report.ID,
		"username":     username,
		"request_hash": requestHash,
	}).Info("Report saved")

	return report, nil
}

// GetByID retrieves a report by its ID.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `
		SELECT id, username, request_hash, response, created_at
		FROM reports
		WHERE id = $1`

	report, err := r.scanReport(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("report not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}
	return report, nil
}

// ListByUser returns a user's reports, newest first.
func (r *ReportRepository) ListByUser(ctx context.Context, username string, limit, offset int) ([]*Report, error) {
	query := `
		SELECT id, username, request_hash, response, created_at
		FROM reports
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// CountByUser returns how many reports a user has.
func (r *ReportRepository) CountByUser(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM reports WHERE username = $1", username,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting reports: %w", err)
	}
	return count, nil
}

// Delete removes a report by ID.
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report not found: %s", id)
	}
	return nil
}

func (r *ReportRepository) scanReport(row pgx.Row) (*Report, error) {
	var report Report
	var payload []byte

	err := row.Scan(
		&report.ID,
		&report.Username,
		&report.RequestHash,
		&payload,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payload, &report.Response); err != nil {
		return nil, fmt.Errorf("decoding report payload: %w", err)
	}
	return &report, nil
}
