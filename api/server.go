// Package api exposes the allocation pipeline over a thin JSON surface:
// submit a request, read back a recorded outcome.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"medhead-allocator/allocation"
	"medhead-allocator/queues"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func Register(mux *http.ServeMux, controller *allocation.Controller) {
	mux.HandleFunc("POST /api/allocations", func(w http.ResponseWriter, r *http.Request) {
		handleAllocate(w, r, controller)
	})
	mux.HandleFunc("GET /api/allocations/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetResult(w, r, controller)
	})
}

func handleAllocate(w http.ResponseWriter, r *http.Request, controller *allocation.Controller) {
	var req queues.AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	patient := &allocation.Patient{
		Specialty:   req.Specialty,
		Responsible: req.Responsible,
		Quality:     req.Quality,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.PatientID != "" {
		id, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed patient id")
			return
		}
		patient.ID = id
	}

	result, err := controller.Allocate(r.Context(), patient)
	if err != nil {
		var verr *allocation.ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, allocation.ErrUnknownSpecialty):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, allocation.ErrConflict):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, allocation.ErrNoCandidates):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, allocation.ErrUpstream):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			log.Error().Err(err).Msg("api: allocation failed")
			writeError(w, http.StatusInternalServerError, "allocation failed")
		}
		return
	}
	writeJSON(w, http.StatusCreated, resultEnvelope(result))
}

func handleGetResult(w http.ResponseWriter, r *http.Request, controller *allocation.Controller) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed result id")
		return
	}
	result, err := controller.GetResult(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	writeJSON(w, http.StatusOK, resultEnvelope(result))
}

func resultEnvelope(result *allocation.Result) *queues.AllocationResult {
	resultID := result.ID.String()
	return &queues.AllocationResult{
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
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("api: failed to encode response")
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
