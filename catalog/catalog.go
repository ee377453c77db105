// Package catalog resolves specialty names to the service group offered by
// hospitals. The dictionary ships embedded with the binary.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"medhead-allocator/allocation"

	"github.com/rs/zerolog/log"
)

//go:embed specialities.json
var specialitiesJSON []byte

type Catalog struct {
	specialties map[string]int
}

func New() (*Catalog, error) {
	var specialties map[string]int
	if err := json.Unmarshal(specialitiesJSON, &specialties); err != nil {
		return nil, fmt.Errorf("parsing specialities dictionary: %w", err)
	}
	log.Info().Int("count", len(specialties)).Msg("catalog: specialities dictionary loaded")
	return &Catalog{specialties: specialties}, nil
}

// Resolve returns the service group id for a specialty name, or
// allocation.ErrUnknownSpecialty when the name is not registered.
func (c *Catalog) Resolve(specialty string) (int, error) {
	id, ok := c.specialties[specialty]
	if !ok {
		return 0, fmt.Errorf("%w: %q", allocation.ErrUnknownSpecialty, specialty)
	}
	return id, nil
}
