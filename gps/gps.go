// Package gps simulates a travel-time API. Delays are drawn uniformly from
// a fixed window; coordinates are accepted but not used by the simulation.
package gps

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

const (
	minDelay = 5  // minutes
	maxDelay = 17 // minutes
)

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// Estimate returns a simulated travel delay in minutes between the origin
// and destination coordinates.
func (p *Provider) Estimate(ctx context.Context, originLat, originLon, destLat, destLon float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	delay := minDelay + rand.IntN(maxDelay-minDelay+1)
	log.Debug().Int("delay", delay).Msg("gps: travel delay computed")
	return delay, nil
}
