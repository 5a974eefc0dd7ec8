// Package memory provides in-memory implementations of the persistence
// ports, used by tests and as lightweight fallbacks.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
)

// Interface assertions.
var (
	_ driven.LedgerStore     = (*LedgerStore)(nil)
	_ driven.CredentialStore = (*CredentialStore)(nil)
	_ driven.DocumentStore   = (*DocumentStore)(nil)
	_ driven.KeyStore        = (*KeyStore)(nil)
	_ driven.AuditLog        = (*AuditLog)(nil)
)

// LedgerStore is an in-memory driven.LedgerStore.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[string]domain.LedgerEntry
}

// NewLedgerStore creates an empty ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{entries: make(map[string]domain.LedgerEntry)}
}

func (s *LedgerStore) Get(_ context.Context, remoteID string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[remoteID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

func (s *LedgerStore) Insert(_ context.Context, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.RemoteID]; ok {
		return domain.ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.entries[entry.RemoteID] = entry
	return nil
}

func (s *LedgerStore) Update(_ context.Context, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.RemoteID]; !ok {
		return domain.ErrNotFound
	}
	s.entries[entry.RemoteID] = entry
	return nil
}

func (s *LedgerStore) MarkError(_ context.Context, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[remoteID]
	if !ok {
		return domain.ErrNotFound
	}
	entry.Status = domain.SyncStatusError
	s.entries[remoteID] = entry
	return nil
}

func (s *LedgerStore) List(_ context.Context) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.LedgerEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastSyncedAt > entries[j].LastSyncedAt
	})
	return entries, nil
}

// CredentialStore is an in-memory driven.CredentialStore.
type CredentialStore struct {
	mu    sync.RWMutex
	creds map[string]string
}

// NewCredentialStore creates an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[string]string)}
}

func (s *CredentialStore) Save(_ context.Context, name, ciphertext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[name] = ciphertext
	return nil
}

func (s *CredentialStore) Get(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ciphertext, ok := s.creds[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return ciphertext, nil
}

func (s *CredentialStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creds[name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.creds, name)
	return nil
}

func (s *CredentialStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = make(map[string]string)
	return nil
}

func (s *CredentialStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.creds))
	for name := range s.creds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DocumentStore is an in-memory driven.DocumentStore.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]domain.Document)}
}

func (s *DocumentStore) Upsert(_ context.Context, existingID, title, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()

	if existingID == "" {
		id := uuid.NewString()
		s.docs[id] = domain.Document{
			ID:        id,
			Title:     title,
			Content:   content,
			Status:    domain.DocumentStatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return id, nil
	}

	doc, ok := s.docs[existingID]
	if !ok {
		return "", domain.ErrNotFound
	}
	doc.Title = title
	doc.Content = content
	doc.UpdatedAt = now
	s.docs[existingID] = doc
	return existingID, nil
}

func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// KeyStore is an in-memory driven.KeyStore.
type KeyStore struct {
	mu  sync.RWMutex
	key []byte
}

// NewKeyStore creates an empty key store.
func NewKeyStore() *KeyStore {
	return &KeyStore{}
}

func (s *KeyStore) Load() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return nil, domain.ErrNotFound
	}
	key := make([]byte, len(s.key))
	copy(key, s.key)
	return key, nil
}

func (s *KeyStore) Save(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = make([]byte, len(key))
	copy(s.key, key)
	return nil
}

func (s *KeyStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = nil
	return nil
}

// AuditLog is an in-memory driven.AuditLog.
type AuditLog struct {
	mu     sync.RWMutex
	events []domain.AuditEvent
	nextID int64
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Record(_ context.Context, eventType, description string, severity domain.Severity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.events = append(l.events, domain.AuditEvent{
		ID:          l.nextID,
		EventType:   eventType,
		Description: description,
		Severity:    severity,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (l *AuditLog) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	events := make([]domain.AuditEvent, len(l.events))
	copy(events, l.events)
	sort.Slice(events, func(i, j int) bool { return events[i].ID > events[j].ID })
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events, nil
}

func (l *AuditLog) Stats(_ context.Context) (*domain.AuditStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := &domain.AuditStats{TotalEvents: len(l.events)}
	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	for _, e := range l.events {
		if e.Severity == domain.SeverityHigh {
			stats.HighSeverity++
		}
		if e.CreatedAt.After(cutoff) {
			stats.Last24h++
		}
	}
	return stats, nil
}

// Events returns every recorded event in insertion order.
func (l *AuditLog) Events() []domain.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	events := make([]domain.AuditEvent, len(l.events))
	copy(events, l.events)
	return events
}
