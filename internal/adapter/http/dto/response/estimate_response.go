package response

import (
	"time"

	"paintbuddy/internal/domain/entities"
)

// EstimateResponse is the generated estimate as shown to the customer.
type EstimateResponse struct {
	PriceRange  string   `json:"priceRange"`
	Explanation string   `json:"explanation"`
	Details     []string `json:"details,omitempty"`
}

// SubmissionResponse wraps a fresh estimate with its persistence outcome.
// Saved is false when the record failed to store; the estimate is still
// present so the customer never loses a computed quote.
type SubmissionResponse struct {
	ID                   string           `json:"id,omitempty"`
	Estimate             EstimateResponse `json:"estimate"`
	Saved                bool             `json:"saved"`
	StorageError         string           `json:"storageError,omitempty"`
	RemainingSubmissions *int             `json:"remainingSubmissions,omitempty"`
}

// EstimateRecordResponse is the admin view of a stored submission,
// including the full job options the customer entered.
type EstimateRecordResponse struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"userId"`
	Options   entities.JobSpecification `json:"options"`
	Estimate  EstimateResponse         `json:"estimate"`
	CreatedAt time.Time                `json:"createdAt"`
}

// ValidationErrorResponse carries the per-field messages for a rejected
// submission, keyed by the form field path.
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func FromEstimate(e entities.EstimateResult) EstimateResponse {
	return EstimateResponse{
		PriceRange:  e.PriceRange,
		Explanation: e.Explanation,
		Details:     e.Details,
	}
}

func FromRecord(r entities.EstimateRecord) EstimateRecordResponse {
	return EstimateRecordResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Options:   r.Options,
		Estimate:  FromEstimate(r.Estimate),
		CreatedAt: r.CreatedAt,
	}
}

func FromRecords(records []entities.EstimateRecord) []EstimateRecordResponse {
	out := make([]EstimateRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}
