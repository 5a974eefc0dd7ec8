package services

import (
	"sync"
	"time"
)

// DefaultGenerationsPerHour caps completions per caller.
const DefaultGenerationsPerHour = 10

// generationLimiter counts requests per caller inside a rolling one
// hour window. A request is admitted only while fewer than perHour
// requests happened in the preceding hour, so the cap holds for any
// request pattern, not just bursts.
type generationLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	perHour int
	now     func() time.Time
}

func newGenerationLimiter(perHour int) *generationLimiter {
	if perHour <= 0 {
		perHour = DefaultGenerationsPerHour
	}
	return &generationLimiter{
		history: make(map[string][]time.Time),
		perHour: perHour,
		now:     time.Now,
	}
}

// Allow consumes one generation for caller, reporting whether the cap
// permits it. Entries older than the window are pruned on each call.
func (l *generationLimiter) Allow(caller string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-time.Hour)

	recent := l.history[caller][:0]
	for _, at := range l.history[caller] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= l.perHour {
		l.history[caller] = recent
		return false
	}
	l.history[caller] = append(recent, now)
	return true
}
