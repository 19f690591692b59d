package pages

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator assigns ids to component instances that lack one.
type IDGenerator interface {
	NewID(blockType string) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(blockType string) string

func (f IDGeneratorFunc) NewID(blockType string) string { return f(blockType) }

// SyntheticIDs produces "<type>-<uuid>-<counter>" ids. The counter is
// monotonic for the generator's lifetime.
type SyntheticIDs struct {
	counter atomic.Uint64
	uuid    func() uuid.UUID
}

// NewSyntheticIDs returns a generator backed by random UUIDs.
func NewSyntheticIDs() *SyntheticIDs {
	return &SyntheticIDs{uuid: uuid.New}
}

func (g *SyntheticIDs) NewID(blockType string) string {
	prefix := strings.TrimSpace(blockType)
	if prefix == "" {
		prefix = "block"
	}
	next := g.counter.Add(1)
	return fmt.Sprintf("%s-%s-%d", prefix, g.uuid().String(), next)
}
