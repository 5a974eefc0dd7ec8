package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// auditEventCap bounds the audit table; the oldest rows beyond it are
// pruned on every write.
const auditEventCap = 1000

// auditLog implements driven.AuditLog.
type auditLog struct {
	store *Store
}

var _ driven.AuditLog = (*auditLog)(nil)

// Record inserts one event and prunes the table to its cap.
func (l *auditLog) Record(ctx context.Context, eventType, description string, severity domain.Severity) error {
	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO audit_events (event_type, description, severity, created_at)
		VALUES (?, ?, ?, ?)
	`, eventType, description, severity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording audit event: %w", err)
	}

	_, err = l.store.db.ExecContext(ctx, `
		DELETE FROM audit_events
		WHERE id NOT IN (SELECT id FROM audit_events ORDER BY id DESC LIMIT ?)
	`, auditEventCap)
	if err != nil {
		return fmt.Errorf("pruning audit events: %w", err)
	}
	return nil
}

// Recent returns the newest events, up to limit.
func (l *auditLog) Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 || limit > auditEventCap {
		limit = auditEventCap
	}
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, event_type, description, severity, created_at
		FROM audit_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.Description, &e.Severity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Stats summarises the audit trail.
func (l *auditLog) Stats(ctx context.Context) (*domain.AuditStats, error) {
	var stats domain.AuditStats
	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	row := l.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN severity = 'high' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM audit_events
	`, cutoff)
	if err := row.Scan(&stats.TotalEvents, &stats.HighSeverity, &stats.Last24h); err != nil {
		return nil, fmt.Errorf("scanning audit stats: %w", err)
	}
	return &stats, nil
}
