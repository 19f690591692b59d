package editor

import (
	"sync"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/variants"
)

// stagingArea holds payloads the host UI is editing but has not committed.
type stagingArea struct {
	mu     sync.RWMutex
	staged map[string]blocks.Data
}

var _ variants.Staging = (*stagingArea)(nil)

func newStagingArea() *stagingArea {
	return &stagingArea{staged: make(map[string]blocks.Data)}
}

func stagingKey(blockType, variantID string) string {
	return variants.NormalizeType(blockType) + "/" + variantID
}

func (s *stagingArea) Staged(blockType, variantID string) (blocks.Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.staged[stagingKey(blockType, variantID)]
	if !ok {
		return nil, false
	}
	return blocks.CloneData(data), true
}

func (s *stagingArea) stage(blockType, variantID string, data blocks.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := stagingKey(blockType, variantID)
	if data == nil {
		delete(s.staged, key)
		return
	}
	s.staged[key] = blocks.CloneData(data)
}
