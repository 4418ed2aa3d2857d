// Package document holds the caller-owned set of searchable documents.
package document

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Document is raw text ingested under an identifier. It is never modified
// after it is stored.
type Document struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Text    string    `json:"-"`
	Size    int       `json:"size"`
	AddedAt time.Time `json:"added_at"`
}

// Store is a thread-safe in-memory document set.
type Store struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewStore() *Store {
	return &Store{docs: make(map[string]Document)}
}

// Put stores doc, replacing any document with the same ID. It reports
// whether a document was replaced.
func (s *Store) Put(doc Document) bool {
	if doc.AddedAt.IsZero() {
		doc.AddedAt = time.Now()
	}
	doc.Size = len(doc.Text)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.docs[doc.ID]
	s.docs[doc.ID] = doc
	return existed
}

func (s *Store) Get(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Lookup returns the raw text of a document.
func (s *Store) Lookup(id string) (string, bool) {
	doc, ok := s.Get(id)
	return doc.Text, ok
}

// Delete removes a document and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[id]
	delete(s.docs, id)
	return ok
}

// List returns all documents ordered by ID.
func (s *Store) List() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns all document IDs in sorted order.
func (s *Store) IDs() []string {
	docs := s.List()
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Set is a plain identifier -> text mapping for one-off searches.
type Set map[string]string

func (s Set) Lookup(id string) (string, bool) {
	text, ok := s[id]
	return text, ok
}

// IDFor derives a stable identifier from the content hash.
func IDFor(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])[:16]
}
