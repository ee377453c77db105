package allocation

import (
	"sync"

	"github.com/google/uuid"
)

// ProcessingGuard tracks patients with an allocation in flight so that at
// most one run per patient id is active at a time.
type ProcessingGuard struct {
	mu         sync.Mutex
	processing map[uuid.UUID]struct{}
}

func NewProcessingGuard() *ProcessingGuard {
	return &ProcessingGuard{processing: make(map[uuid.UUID]struct{})}
}

// Admit records the patient id and returns true if no run is in flight for
// it. Concurrent calls for the same id admit exactly one caller.
func (g *ProcessingGuard) Admit(patientID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.processing[patientID]; ok {
		return false
	}
	g.processing[patientID] = struct{}{}
	return true
}

// Release removes the patient id. Idempotent, releasing an absent id is a no-op.
func (g *ProcessingGuard) Release(patientID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.processing, patientID)
}

// IsProcessing reports whether a run is currently in flight for the id.
func (g *ProcessingGuard) IsProcessing(patientID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.processing[patientID]
	return ok
}
