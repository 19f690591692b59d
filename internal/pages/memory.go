package pages

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*PageDocument
}

var _ BatchStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*PageDocument)}
}

func (s *MemoryStore) Load(_ context.Context, tenantID, slug string) (*PageDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[storeKey(tenantID, slug)]
	if !ok {
		return nil, notFound(tenantID, slug)
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, doc *PageDocument) error {
	if doc == nil {
		return ErrDocumentRequired
	}
	s.mu.Lock()
	s.docs[storeKey(doc.TenantID, doc.Slug)] = doc.Clone()
	s.mu.Unlock()
	return nil
}

// SaveAll stores every document under one lock.
func (s *MemoryStore) SaveAll(_ context.Context, docs ...*PageDocument) error {
	for _, doc := range docs {
		if doc == nil {
			return ErrDocumentRequired
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		s.docs[storeKey(doc.TenantID, doc.Slug)] = doc.Clone()
	}
	return nil
}

// Len returns the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
