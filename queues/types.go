package queues

import "context"

// AllocationRequest is the JSON envelope for one inbound patient request.
type AllocationRequest struct {
	PatientID   string  `json:"patientId,omitempty"`
	Specialty   string  `json:"specialty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Responsible string  `json:"responsible,omitempty"`
	Quality     string  `json:"quality,omitempty"`
}

type AllocationStatus string

const (
	StatusSuccess AllocationStatus = "Success"
	StatusFailure AllocationStatus = "Failure"
)

// AllocationResult is the JSON envelope published after a run completes.
type AllocationResult struct {
	EnvelopeVersion  string           `json:"envelopeVersion"`
	Type             string           `json:"type"`
	ResultID         *string          `json:"resultId,omitempty"`
	PatientID        string           `json:"patientId"`
	Specialty        string           `json:"specialty"`
	Status           AllocationStatus `json:"status"`
	HospitalName     *string          `json:"hospitalName,omitempty"`
	DelayMinutes     *int             `json:"delayMinutes,omitempty"`
	ServiceAvailable bool             `json:"serviceAvailable"`
	BedReserved      bool             `json:"bedReserved"`
	ErrorMessage     *string          `json:"errorMessage,omitempty"`
}

type Subscriber interface {
	Start(ctx context.Context, handler func(context.Context, *AllocationRequest) error) error
}

type Publisher interface {
	PublishResult(ctx context.Context, res *AllocationResult) error
}
