package allocation

import (
	"context"

	"github.com/google/uuid"
)

// DelayUnknown is the sentinel travel delay carried by a candidate whose
// lookup has not completed or failed. It sorts after any real delay.
const DelayUnknown = 9999

// Patient is one emergency-care request. ServiceID is resolved from Specialty
// before the pipeline runs.
type Patient struct {
	ID          uuid.UUID
	Specialty   string
	ServiceID   int
	Responsible string
	Quality     string
	Latitude    float64
	Longitude   float64
}

// Hospital is a facility snapshot considered during a single allocation run.
// Snapshots are owned by the run that fetched them and never shared.
type Hospital struct {
	Name          string
	ServiceIDs    []int
	Latitude      float64
	Longitude     float64
	AvailableBeds int
	Delay         int
}

// Result is the immutable record of one completed allocation run.
type Result struct {
	ID               uuid.UUID
	PatientID        uuid.UUID
	Specialty        string
	HospitalName     string
	Delay            int
	ServiceAvailable bool
	BedReserved      bool
}

// Catalog resolves a specialty name to its service group id.
type Catalog interface {
	Resolve(specialty string) (int, error)
}

// Directory looks up candidate hospitals for a required service near a
// requester location. Returns an empty slice (never nil) when nothing matches.
type Directory interface {
	FindByService(ctx context.Context, serviceID int, lat, lon float64) ([]Hospital, error)
}

// TravelTimeProvider estimates the travel delay in minutes between two
// coordinate pairs. May block and may fail transiently.
type TravelTimeProvider interface {
	Estimate(ctx context.Context, originLat, originLon, destLat, destLon float64) (int, error)
}

// BedReserver attempts an immediate bed lock at a hospital. A true result is
// a successful lock; idempotency is not guaranteed.
type BedReserver interface {
	Reserve(ctx context.Context, h *Hospital) (bool, error)
}
