package domain

import "time"

// Severity classifies an audit event.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
	SeverityInfo   Severity = "info"
)

// AuditEvent is one persisted security or pipeline event.
type AuditEvent struct {
	ID          int64
	EventType   string
	Description string
	Severity    Severity
	CreatedAt   time.Time
}

// AuditStats summarises the audit trail.
type AuditStats struct {
	TotalEvents  int
	HighSeverity int
	Last24h      int
}
