package allocation

import (
	"context"

	"medhead-allocator/metrics"

	"github.com/rs/zerolog/log"
)

// Negotiator attempts to lock a bed across ranked candidates in order,
// stopping at the first success.
type Negotiator struct {
	reserver BedReserver
}

func NewNegotiator(reserver BedReserver) *Negotiator {
	return &Negotiator{reserver: reserver}
}

// Negotiate calls the reservation collaborator for each ranked candidate and
// returns the first that locks, with reserved=true. When every attempt fails
// it falls back to the first ranked candidate with reserved=false. No retries
// and no compensation are performed. The ranked slice must be non-empty;
// callers guard the empty case upstream.
func (n *Negotiator) Negotiate(ctx context.Context, ranked []Hospital) (Hospital, bool) {
	for i := range ranked {
		ok, err := n.reserver.Reserve(ctx, &ranked[i])
		if err != nil {
			metrics.ReservationAttempts.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("hospital", ranked[i].Name).Msg("negotiate: reservation attempt errored; trying next candidate")
			continue
		}
		if ok {
			metrics.ReservationAttempts.WithLabelValues("success").Inc()
			log.Info().Str("hospital", ranked[i].Name).Int("delay", ranked[i].Delay).Msg("negotiate: bed reserved")
			return ranked[i], true
		}
		metrics.ReservationAttempts.WithLabelValues("failure").Inc()
		log.Warn().Str("hospital", ranked[i].Name).Msg("negotiate: reservation refused; trying next candidate")
	}

	log.Warn().Str("hospital", ranked[0].Name).Msg("negotiate: all reservations refused; falling back to first ranked candidate")
	return ranked[0], false
}
