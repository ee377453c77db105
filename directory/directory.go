// Package directory is the in-memory hospital directory. It keeps a matrix
// of service group id to hospitals and owns the shared bed-count state that
// reservations mutate. A real deployment would back this with the regional
// facility registry; the lookup contract stays the same.
package directory

import (
	"context"
	"sync"

	"medhead-allocator/allocation"

	"github.com/rs/zerolog/log"
)

type Service struct {
	mu        sync.Mutex
	hospitals map[string]*allocation.Hospital
	matrix    map[int][]string // service id -> hospital names, insertion order
}

// New returns a directory seeded with the sample facilities.
func New() *Service {
	s := NewEmpty()
	for _, h := range sampleHospitals() {
		s.Add(h)
	}
	return s
}

// NewEmpty returns a directory with no facilities.
func NewEmpty() *Service {
	return &Service{
		hospitals: make(map[string]*allocation.Hospital),
		matrix:    make(map[int][]string),
	}
}

// Add registers a hospital under every service it offers. The stored record
// is canonical: its bed count is the shared state reservations decrement.
func (s *Service) Add(h allocation.Hospital) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := h
	s.hospitals[h.Name] = &rec
	for _, serviceID := range h.ServiceIDs {
		s.matrix[serviceID] = append(s.matrix[serviceID], h.Name)
	}
}

// FindByService returns snapshots of the hospitals offering a service. Each
// snapshot carries the bed count at lookup time and an unknown delay; the
// caller owns the returned slice. Returns an empty slice, never nil.
func (s *Service) FindByService(ctx context.Context, serviceID int, lat, lon float64) ([]allocation.Hospital, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.matrix[serviceID]
	out := make([]allocation.Hospital, 0, len(names))
	for _, name := range names {
		snapshot := *s.hospitals[name]
		snapshot.ServiceIDs = append([]int(nil), snapshot.ServiceIDs...)
		snapshot.Delay = allocation.DelayUnknown
		out = append(out, snapshot)
	}
	log.Debug().Int("serviceId", serviceID).Int("candidates", len(out)).Msg("directory: candidates fetched")
	return out, nil
}

// ReserveBed decrements the hospital's bed count if any bed remains.
// Returns false for an unknown hospital or when no bed is left.
func (s *Service) ReserveBed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hospitals[name]
	if !ok || h.AvailableBeds <= 0 {
		return false
	}
	h.AvailableBeds--
	return true
}

// AvailableBeds returns the current bed count for a hospital.
func (s *Service) AvailableBeds(name string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hospitals[name]
	if !ok {
		return 0, false
	}
	return h.AvailableBeds, true
}

func sampleHospitals() []allocation.Hospital {
	return []allocation.Hospital{
		{Name: "Hopital A", ServiceIDs: []int{1, 2, 4, 5, 6, 7, 8, 11}, Latitude: 48.8566, Longitude: 2.3522, AvailableBeds: 15},
		{Name: "Hopital B", ServiceIDs: []int{2, 3, 4, 5, 7, 9, 10, 11, 12}, Latitude: 48.8648, Longitude: 2.3499, AvailableBeds: 8},
		{Name: "Hopital C", ServiceIDs: []int{1, 2, 3, 5, 6, 7, 12}, Latitude: 48.8584, Longitude: 2.2945, AvailableBeds: 20},
		{Name: "Hopital D", ServiceIDs: []int{2, 3, 4, 5, 9, 10, 11}, Latitude: 48.8600, Longitude: 2.3270, AvailableBeds: 12},
		{Name: "Hopital E", ServiceIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12}, Latitude: 48.8675, Longitude: 2.3300, AvailableBeds: 5},
		{Name: "Hopital F", ServiceIDs: []int{1, 2, 5, 6, 7, 9, 10}, Latitude: 48.8619, Longitude: 2.3364, AvailableBeds: 18},
		{Name: "Hopital G", ServiceIDs: []int{1, 3, 4, 5, 8, 9, 11}, Latitude: 48.8545, Longitude: 2.3478, AvailableBeds: 10},
		{Name: "Hopital H", ServiceIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 12}, Latitude: 48.8550, Longitude: 2.3419, AvailableBeds: 7},
		{Name: "Hopital I", ServiceIDs: []int{1, 2, 3, 4, 5, 6, 9, 10, 11}, Latitude: 48.8590, Longitude: 2.3540, AvailableBeds: 25},
		{Name: "Hopital J", ServiceIDs: []int{1, 5, 6, 7, 8, 10}, Latitude: 48.8534, Longitude: 2.3488, AvailableBeds: 9},
	}
}
