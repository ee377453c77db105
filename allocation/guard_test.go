package allocation

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

func TestProcessingGuard_AdmitRelease(t *testing.T) {
	g := NewProcessingGuard()
	id := uuid.New()

	if !g.Admit(id) {
		t.Fatal("first Admit() = false, want true")
	}
	if g.Admit(id) {
		t.Error("second Admit() = true, want false while in flight")
	}
	if !g.IsProcessing(id) {
		t.Error("IsProcessing() = false, want true")
	}

	g.Release(id)
	if g.IsProcessing(id) {
		t.Error("IsProcessing() after Release = true, want false")
	}
	if !g.Admit(id) {
		t.Error("Admit() after Release = false, want true")
	}
}

func TestProcessingGuard_ReleaseIdempotent(t *testing.T) {
	g := NewProcessingGuard()
	id := uuid.New()

	// Releasing an absent id must not fail or affect later admissions
	g.Release(id)
	g.Release(id)
	if !g.Admit(id) {
		t.Error("Admit() after no-op releases = false, want true")
	}
}

func TestProcessingGuard_DistinctIDsIndependent(t *testing.T) {
	g := NewProcessingGuard()
	a, b := uuid.New(), uuid.New()

	if !g.Admit(a) {
		t.Fatal("Admit(a) = false, want true")
	}
	if !g.Admit(b) {
		t.Error("Admit(b) = false, want true; distinct ids must not conflict")
	}
}

func TestProcessingGuard_ConcurrentSameID(t *testing.T) {
	g := NewProcessingGuard()
	id := uuid.New()

	const n = 64
	var admitted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if g.Admit(id) {
				admitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := admitted.Load(); got != 1 {
		t.Errorf("concurrent Admit() successes = %d, want exactly 1", got)
	}
}
