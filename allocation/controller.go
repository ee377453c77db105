package allocation

import (
	"context"
	"fmt"
	"time"

	"medhead-allocator/metrics"
	"medhead-allocator/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultResultCapacity bounds the result store.
	DefaultResultCapacity = 100

	// DefaultPatientCapacity bounds the patient store.
	DefaultPatientCapacity = 1000
)

// Options tunes a Controller. Zero values fall back to defaults.
type Options struct {
	DelayWorkers    int
	DelayTimeout    time.Duration
	ResultCapacity  int
	PatientCapacity int
}

// Controller runs the end-to-end allocation pipeline: admit the patient,
// fetch candidates, fan out delay lookups, rank, negotiate a reservation and
// record the outcome. One run per inbound request; the only intra-request
// parallelism is the delay fan-out.
type Controller struct {
	catalog    Catalog
	directory  Directory
	fanout     *DelayFanOut
	negotiator *Negotiator
	guard      *ProcessingGuard
	results    *store.Store[uuid.UUID, Result]
	patients   *store.Store[uuid.UUID, Patient]
}

func NewController(catalog Catalog, directory Directory, provider TravelTimeProvider, reserver BedReserver, opts Options) *Controller {
	if opts.ResultCapacity <= 0 {
		opts.ResultCapacity = DefaultResultCapacity
	}
	if opts.PatientCapacity <= 0 {
		opts.PatientCapacity = DefaultPatientCapacity
	}
	return &Controller{
		catalog:    catalog,
		directory:  directory,
		fanout:     NewDelayFanOut(provider, opts.DelayWorkers, opts.DelayTimeout),
		negotiator: NewNegotiator(reserver),
		guard:      NewProcessingGuard(),
		results:    store.New[uuid.UUID, Result](opts.ResultCapacity),
		patients:   store.New[uuid.UUID, Patient](opts.PatientCapacity),
	}
}

// Allocate routes one patient to the best-matching hospital and attempts to
// lock a bed there. Returns ErrConflict when a run for the same patient id is
// already in flight, a ValidationError or ErrUnknownSpecialty for malformed
// input, ErrNoCandidates when the directory has nothing for the service, and
// ErrUpstream when the directory is unreachable. The processing guard is
// released on every path once the patient was admitted.
func (c *Controller) Allocate(ctx context.Context, patient *Patient) (*Result, error) {
	start := time.Now()

	if err := c.initialize(patient); err != nil {
		metrics.AllocationsTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	if !c.guard.Admit(patient.ID) {
		metrics.AllocationsTotal.WithLabelValues("conflict").Inc()
		log.Warn().Str("patientId", patient.ID.String()).Msg("controller: allocation already in flight for patient")
		return nil, ErrConflict
	}
	defer c.guard.Release(patient.ID)

	c.patients.Put(patient.ID, *patient)
	log.Info().Str("patientId", patient.ID.String()).Str("specialty", patient.Specialty).Int("serviceId", patient.ServiceID).Msg("controller: handling allocation request")

	candidates, err := c.directory.FindByService(ctx, patient.ServiceID, patient.Latitude, patient.Longitude)
	if err != nil {
		metrics.AllocationsTotal.WithLabelValues("failure").Inc()
		log.Error().Err(err).Str("patientId", patient.ID.String()).Msg("controller: hospital directory lookup failed")
		return nil, fmt.Errorf("%w: hospital directory: %s", ErrUpstream, err)
	}
	if len(candidates) == 0 {
		metrics.AllocationsTotal.WithLabelValues("no_candidates").Inc()
		log.Warn().Str("patientId", patient.ID.String()).Int("serviceId", patient.ServiceID).Msg("controller: no candidate hospital for service")
		return nil, ErrNoCandidates
	}

	c.fanout.ComputeAll(ctx, patient.Latitude, patient.Longitude, candidates)

	ranked := Rank(candidates)
	selected, reserved := c.negotiator.Negotiate(ctx, ranked)

	result := Result{
		ID:               uuid.New(),
		PatientID:        patient.ID,
		Specialty:        patient.Specialty,
		HospitalName:     selected.Name,
		Delay:            selected.Delay,
		ServiceAvailable: true,
		BedReserved:      reserved,
	}
	c.results.Put(result.ID, result)

	duration := time.Since(start)
	metrics.AllocationDuration.Observe(duration.Seconds())
	metrics.AllocationsTotal.WithLabelValues("success").Inc()
	log.Info().
		Str("patientId", patient.ID.String()).
		Str("resultId", result.ID.String()).
		Str("hospital", result.HospitalName).
		Int("delay", result.Delay).
		Bool("bedReserved", result.BedReserved).
		Dur("duration", duration).
		Msg("controller: allocation recorded")
	return &result, nil
}

// initialize validates the request and resolves its specialty, assigning a
// fresh id when none was provided.
func (c *Controller) initialize(patient *Patient) error {
	if patient.Specialty == "" {
		return &ValidationError{Field: "specialty", Reason: "must not be empty"}
	}
	if patient.Latitude < -90 || patient.Latitude > 90 {
		return &ValidationError{Field: "latitude", Reason: "must be within [-90, 90]"}
	}
	if patient.Longitude < -180 || patient.Longitude > 180 {
		return &ValidationError{Field: "longitude", Reason: "must be within [-180, 180]"}
	}
	serviceID, err := c.catalog.Resolve(patient.Specialty)
	if err != nil {
		return err
	}
	patient.ServiceID = serviceID
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	return nil
}

// GetResult returns the recorded outcome for an id, or ErrNotFound.
func (c *Controller) GetResult(id uuid.UUID) (*Result, error) {
	res, ok := c.results.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

// GetPatient returns a previously processed patient, or ErrNotFound.
func (c *Controller) GetPatient(id uuid.UUID) (*Patient, error) {
	p, ok := c.patients.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}
