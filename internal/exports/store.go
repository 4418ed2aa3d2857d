// Package exports holds rendered search artifacts in memory until they are
// downloaded or expire.
package exports

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Export is a rendered artifact ready for download.
type Export struct {
	ID          string    `json:"export_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`

	Data []byte `json:"-"`
}

// Store is a thread-safe in-memory artifact registry with TTL eviction.
type Store struct {
	mu    sync.Mutex
	items map[string]*Export
	ttl   time.Duration
	now   func() time.Time
	ids   *idGenerator
}

func NewStore(ttl time.Duration) *Store {
	return newStore(ttl, time.Now)
}

func newStore(ttl time.Duration, now func() time.Time) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		items: make(map[string]*Export),
		ttl:   ttl,
		now:   now,
		ids:   newIDGenerator(now),
	}
}

// Add stores data under a fresh ID. The returned value shares Data with the
// store; callers must not modify it.
func (s *Store) Add(filename, contentType string, data []byte) Export {
	now := s.now()
	e := &Export{
		ID:          s.ids.next(),
		Filename:    filename,
		ContentType: contentType,
		Size:        len(data),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		Data:        data,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID] = e
	return *e
}

// Get returns the export unless it is unknown or expired.
func (s *Store) Get(id string) (Export, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok || !s.now().Before(e.ExpiresAt) {
		return Export{}, false
	}
	return *e, true
}

// List returns live exports, oldest first, without their data.
func (s *Store) List() []Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := make([]Export, 0, len(s.items))
	for _, e := range s.items {
		if now.Before(e.ExpiresAt) {
			cp := *e
			cp.Data = nil
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Cleanup removes expired exports and reports how many were dropped.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.items {
		if !now.Before(e.ExpiresAt) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 && log != nil {
				log.Info("expired exports removed", "count", n, "remaining", s.Len())
			}
		}
	}
}
