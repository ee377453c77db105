package allocation

import (
	"context"
	"errors"
	"fmt"

	"medhead-allocator/queues"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handler wires queue consumption to the allocation pipeline and publishes
// the outcome envelope.
type Handler struct {
	controller *Controller
	publisher  queues.Publisher
}

func NewHandler(controller *Controller, publisher queues.Publisher) *Handler {
	return &Handler{controller: controller, publisher: publisher}
}

// publishFailure builds and publishes a failure AllocationResult.
func (h *Handler) publishFailure(ctx context.Context, req *queues.AllocationRequest, serviceAvailable bool, message string) error {
	res := &queues.AllocationResult{
		EnvelopeVersion:  "1.0",
		Type:             "allocation-result",
		PatientID:        req.PatientID,
		Specialty:        req.Specialty,
		Status:           queues.StatusFailure,
		ServiceAvailable: serviceAvailable,
		ErrorMessage:     &message,
	}
	if err := h.publisher.PublishResult(ctx, res); err != nil {
		log.Error().Err(err).Str("patientId", req.PatientID).Msg("handler: failed to publish failure result")
		return err
	}
	return nil
}

// Handle runs the pipeline for one queued request. A returned error means
// the message should be redelivered; terminal failures (bad input, unknown
// specialty, no candidates) publish a failure result and return nil so the
// message is acked.
func (h *Handler) Handle(ctx context.Context, req *queues.AllocationRequest) error {
	patient := &Patient{
		Specialty:   req.Specialty,
		Responsible: req.Responsible,
		Quality:     req.Quality,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.PatientID != "" {
		id, err := uuid.Parse(req.PatientID)
		if err != nil {
			log.Error().Err(err).Str("patientId", req.PatientID).Msg("handler: malformed patient id; dropping request")
			return h.publishFailure(ctx, req, false, fmt.Sprintf("malformed patient id: %v", err))
		}
		patient.ID = id
	}

	result, err := h.controller.Allocate(ctx, patient)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, ErrUnknownSpecialty):
			log.Error().Err(err).Str("patientId", req.PatientID).Msg("handler: invalid request; dropping")
			return h.publishFailure(ctx, req, false, err.Error())
		case errors.Is(err, ErrNoCandidates):
			return h.publishFailure(ctx, req, false, err.Error())
		default:
			// Conflict and upstream failures are worth a redelivery.
			log.Error().Err(err).Str("patientId", req.PatientID).Msg("handler: allocation failed; will retry")
			return err
		}
	}

	resultID := result.ID.String()
	res := &queues.AllocationResult{
		EnvelopeVersion:  "1.0",
		Type:             "allocation-result",
		ResultID:         &resultID,
		PatientID:        result.PatientID.String(),
		Specialty:        result.Specialty,
		Status:           queues.StatusSuccess,
		HospitalName:     &result.HospitalName,
		DelayMinutes:     &result.Delay,
		ServiceAvailable: result.ServiceAvailable,
		BedReserved:      result.BedReserved,
	}
	if err := h.publisher.PublishResult(ctx, res); err != nil {
		log.Error().Err(err).Str("patientId", res.PatientID).Msg("handler: failed to publish result")
		return err
	}
	log.Info().Str("patientId", res.PatientID).Str("hospital", result.HospitalName).Bool("bedReserved", result.BedReserved).Msg("handler: allocation result published")
	return nil
}
