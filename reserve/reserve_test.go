package reserve

import (
	"context"
	"testing"

	"medhead-allocator/allocation"
	"medhead-allocator/directory"
)

func TestService_Reserve(t *testing.T) {
	dir := directory.NewEmpty()
	dir.Add(allocation.Hospital{Name: "Hopital A", ServiceIDs: []int{1}, AvailableBeds: 1})
	s := New(dir)

	h := &allocation.Hospital{Name: "Hopital A"}

	ok, err := s.Reserve(context.Background(), h)
	if err != nil || !ok {
		t.Fatalf("Reserve() = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = s.Reserve(context.Background(), h)
	if err != nil || ok {
		t.Fatalf("Reserve() with no beds left = (%v, %v), want (false, nil)", ok, err)
	}

	if beds, _ := dir.AvailableBeds("Hopital A"); beds != 0 {
		t.Errorf("bed count after reservations = %d, want 0", beds)
	}
}

func TestService_ReserveUnknownHospital(t *testing.T) {
	s := New(directory.NewEmpty())

	ok, err := s.Reserve(context.Background(), &allocation.Hospital{Name: "Inconnu"})
	if err != nil || ok {
		t.Errorf("Reserve(unknown) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestService_ReserveCanceledContext(t *testing.T) {
	dir := directory.NewEmpty()
	dir.Add(allocation.Hospital{Name: "Hopital A", AvailableBeds: 1})
	s := New(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Reserve(ctx, &allocation.Hospital{Name: "Hopital A"}); err == nil {
		t.Error("Reserve() with canceled context returned nil error")
	}
}
