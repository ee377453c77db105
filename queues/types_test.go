package queues

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAllocationRequest_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   AllocationRequest
	}{
		{"basic", AllocationRequest{Specialty: "Cardiologie", Latitude: 48.8566, Longitude: 2.3522}},
		{"with identity", AllocationRequest{PatientID: "7f9c24e5-2f1a-4b0a-9d26-0e4a2b7f9c10", Specialty: "Urgence", Latitude: 43.8336, Longitude: 4.3652}},
		{"with metadata", AllocationRequest{Specialty: "Pédiatrie", Responsible: "Dr. Smith", Quality: "Qualité A", Latitude: 48.8566, Longitude: 2.3522}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal err: %#v", err)
			}
			var out AllocationRequest
			if err := json.Unmarshal(b, &out); err != nil {
				t.Fatalf("unmarshal err: %#v", err)
			}
			if !reflect.DeepEqual(tt.in, out) {
				t.Errorf("round-trip mismatch\nin:  %#v\nout: %#v", tt.in, out)
			}
		})
	}
}

func TestAllocationResult_JSON(t *testing.T) {
	delay := 8
	tests := []struct {
		name string
		in   AllocationResult
	}{
		{"success", AllocationResult{EnvelopeVersion: "1.0", Type: "allocation-result", ResultID: strPtr("r1"), PatientID: "p1", Specialty: "Cardiologie", Status: StatusSuccess, HospitalName: strPtr("Hopital A"), DelayMinutes: &delay, ServiceAvailable: true, BedReserved: true}},
		{"success without reservation", AllocationResult{EnvelopeVersion: "1.0", Type: "allocation-result", ResultID: strPtr("r2"), PatientID: "p2", Specialty: "Urgence", Status: StatusSuccess, HospitalName: strPtr("Hopital B"), DelayMinutes: &delay, ServiceAvailable: true, BedReserved: false}},
		{"failure", AllocationResult{EnvelopeVersion: "1.0", Type: "allocation-result", PatientID: "p3", Specialty: "Alchimie", Status: StatusFailure, ErrorMessage: strPtr("unknown specialty")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal err: %#v", err)
			}
			var out AllocationResult
			if err := json.Unmarshal(b, &out); err != nil {
				t.Fatalf("unmarshal err: %#v", err)
			}
			if !reflect.DeepEqual(tt.in, out) {
				t.Errorf("roundtrip mismatch\n in=%#v\nout=%#v", tt.in, out)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
