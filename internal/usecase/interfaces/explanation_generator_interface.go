package interfaces

import (
	"context"
	"errors"

	"paintbuddy/internal/domain/entities"
)

// Generator failure classes. The concrete provider wraps its transport and
// schema errors into these so callers can map them to user-facing messages
// without knowing which backend is wired in.
var (
	// ErrGeneratorRateLimited covers provider quota/429 responses and
	// deadline expiry; the user should retry after a delay.
	ErrGeneratorRateLimited = errors.New("explanation generator rate limited")
	// ErrGeneratorNotConfigured covers missing/rejected credentials; fatal
	// to the request, the user is told to contact support.
	ErrGeneratorNotConfigured = errors.New("explanation generator not configured")
	// ErrGeneratorBadResponse covers output that fails the response schema.
	ErrGeneratorBadResponse = errors.New("explanation generator returned malformed output")
)

// IExplanationGenerator abstracts the generative-text backend that turns a
// computed price band into a customer-facing explanation.
//
// Contract is schema-in/schema-out: the backend formats and explains the
// band it is given, it never invents its own pricing.
type IExplanationGenerator interface {
	Generate(ctx context.Context, spec entities.JobSpecification, band entities.PriceBand) (entities.EstimateResult, error)
}
