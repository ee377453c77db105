// Package reserve is the bed reservation collaborator. It locks beds against
// the directory's shared bed-count state. No retries, no compensation: a
// successful lock is never undone by the pipeline.
package reserve

import (
	"context"

	"medhead-allocator/allocation"
	"medhead-allocator/directory"

	"github.com/rs/zerolog/log"
)

type Service struct {
	directory *directory.Service
}

func New(dir *directory.Service) *Service {
	return &Service{directory: dir}
}

// Reserve attempts an immediate bed lock at the hospital. Returns true when
// a bed was decremented from the shared count.
func (s *Service) Reserve(ctx context.Context, h *allocation.Hospital) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	log.Info().Str("hospital", h.Name).Msg("reserve: attempting bed reservation")
	if s.directory.ReserveBed(h.Name) {
		log.Info().Str("hospital", h.Name).Msg("reserve: reservation succeeded")
		return true, nil
	}
	log.Warn().Str("hospital", h.Name).Msg("reserve: reservation failed, no bed available")
	return false, nil
}
