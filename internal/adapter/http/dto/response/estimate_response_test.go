package response

import (
	"testing"
	"time"

	"paintbuddy/internal/domain/entities"
)

func TestFromRecord(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	record := entities.EstimateRecord{
		ID:     "rec-1",
		UserID: "user-1",
		Options: entities.JobSpecification{
			Name:  "Jane Citizen",
			Email: "jane@example.com",
		},
		Estimate: entities.EstimateResult{
			PriceRange:  "$2,500 - $8,000 AUD",
			Explanation: "One bedroom, walls only.",
			Details:     []string{"Interior rooms: Bedroom 1"},
		},
		CreatedAt: created,
	}

	resp := FromRecord(record)
	if resp.ID != "rec-1" || resp.UserID != "user-1" {
		t.Fatalf("identity fields not carried: %+v", resp)
	}
	if resp.Options.Name != "Jane Citizen" {
		t.Fatalf("options not carried: %+v", resp.Options)
	}
	if resp.Estimate.PriceRange != "$2,500 - $8,000 AUD" {
		t.Fatalf("estimate not carried: %+v", resp.Estimate)
	}
	if !resp.CreatedAt.Equal(created) {
		t.Fatalf("created at not carried: %v", resp.CreatedAt)
	}
}

func TestFromRecords_EmptySliceNotNil(t *testing.T) {
	out := FromRecords(nil)
	if out == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(out) != 0 {
		t.Fatalf("expected no elements, got %d", len(out))
	}
}
