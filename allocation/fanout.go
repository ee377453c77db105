package allocation

import (
	"context"
	"sync"
	"time"

	"medhead-allocator/metrics"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultDelayWorkers bounds the number of concurrent travel-time lookups
	// per run. Excess candidates queue until a worker frees up.
	DefaultDelayWorkers = 10

	// DefaultDelayTimeout bounds each individual travel-time call.
	DefaultDelayTimeout = 2 * time.Second
)

// DelayFanOut computes travel delays for all candidates of a run by fanning
// out one provider call per candidate over a bounded worker pool, then
// joining before returning.
type DelayFanOut struct {
	provider TravelTimeProvider
	workers  int
	timeout  time.Duration
}

func NewDelayFanOut(provider TravelTimeProvider, workers int, timeout time.Duration) *DelayFanOut {
	if workers <= 0 {
		workers = DefaultDelayWorkers
	}
	if timeout <= 0 {
		timeout = DefaultDelayTimeout
	}
	return &DelayFanOut{provider: provider, workers: workers, timeout: timeout}
}

// ComputeAll writes a delay onto every candidate and blocks until all
// lookups finish. A failed or timed-out lookup never aborts its siblings:
// it is logged, counted, and the candidate keeps DelayUnknown, which ranks
// it after every candidate with a known delay.
func (f *DelayFanOut) ComputeAll(ctx context.Context, originLat, originLon float64, candidates []Hospital) {
	if len(candidates) == 0 {
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := f.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f.computeOne(ctx, originLat, originLon, &candidates[i])
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (f *DelayFanOut) computeOne(ctx context.Context, originLat, originLon float64, c *Hospital) {
	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	delay, err := f.provider.Estimate(callCtx, originLat, originLon, c.Latitude, c.Longitude)
	if err != nil {
		metrics.DelayLookupFailures.Inc()
		log.Warn().Err(err).Str("hospital", c.Name).Msg("fanout: travel delay lookup failed; keeping unknown delay")
		return
	}
	if delay < 0 {
		metrics.DelayLookupFailures.Inc()
		log.Warn().Int("delay", delay).Str("hospital", c.Name).Msg("fanout: provider returned negative delay; keeping unknown delay")
		return
	}
	c.Delay = delay
	log.Debug().Str("hospital", c.Name).Int("delay", delay).Msg("fanout: travel delay computed")
}
