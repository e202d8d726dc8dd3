package donation

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// RetentionPeriod defines how long rejected donations are retained (3 years).
// Approved donations are kept indefinitely for reporting.
const RetentionPeriod = 3 * 365 * 24 * time.Hour

// CleanupService handles permanent deletion of rejected donations past the
// retention window
type CleanupService struct {
	db *sql.DB
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(db *sql.DB) *CleanupService {
	return &CleanupService{db: db}
}

// GetExpiredDonationsCount returns count of donations eligible for cleanup
func (s *CleanupService) GetExpiredDonationsCount(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)

	var count int
	query := `
		SELECT COUNT(*)
		FROM donations
		WHERE status = 'REJECTED'
		AND updated_at < $1
	`

	err := s.db.QueryRowContext(ctx, query, cutoffDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired donations: %w", err)
	}

	return count, nil
}

// CleanupExpiredDonations permanently deletes donations rejected more than
// the retention period ago
func (s *CleanupService) CleanupExpiredDonations(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)
	log.Printf("Starting cleanup of donations rejected before %s", cutoffDate.Format(time.RFC3339))

	query := `
		DELETE FROM donations
		WHERE status = 'REJECTED'
		AND updated_at < $1
	`

	result, err := s.db.ExecContext(ctx, query, cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired donations: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Printf("Successfully cleaned up %d expired donations", rows)
	return int(rows), nil
}
