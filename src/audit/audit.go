// Package audit records mutating operations against the Jenkins server. Each
// entry captures what was asked for and how it ended, so an operator can
// reconstruct what the agent did.
package audit

import (
	"context"
	"sync"
	"time"
)

// Entry is one recorded operation.
type Entry struct {
	ID        int64     `json:"id"`
	Tool      string    `json:"tool"`
	Resource  string    `json:"resource"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// Log stores operation entries.
type Log interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// MemoryLog keeps the most recent entries in memory. It is the default when
// no database is configured.
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
	next    int64
	cap     int
}

// NewMemoryLog creates an in-memory log bounded to cap entries.
func NewMemoryLog(cap int) *MemoryLog {
	if cap <= 0 {
		cap = 1000
	}
	return &MemoryLog{cap: cap, next: 1}
}

// Record appends an entry, evicting the oldest when the bound is reached.
func (l *MemoryLog) Record(_ context.Context, entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.ID = l.next
	l.next++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.cap {
		l.entries = l.entries[len(l.entries)-l.cap:]
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *MemoryLog) Recent(_ context.Context, limit int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

// Close is a no-op for the in-memory log.
func (l *MemoryLog) Close() error {
	return nil
}

// Open returns a Postgres-backed log when dsn is set, otherwise an in-memory
// log.
func Open(dsn string) (Log, error) {
	if dsn == "" {
		return NewMemoryLog(0), nil
	}
	return NewPostgresLog(dsn)
}
