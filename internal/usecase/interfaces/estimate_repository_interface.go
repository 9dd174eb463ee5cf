package interfaces

import (
	"context"

	"paintbuddy/internal/domain/entities"
)

// IEstimateRepository abstracts DynamoDB persistence for EstimateRecord.
//
// The estimate store is append-only:
//   - Save writes one record per successful submission, exactly once
//   - GetByID returns the zero record (ID == "") for unknown ids, not an error
//   - CountByUser backs the submission quota
//   - ListAll backs the admin review surface
type IEstimateRepository interface {
	Save(ctx context.Context, record entities.EstimateRecord) (entities.EstimateRecord, error)
	GetByID(ctx context.Context, id string) (entities.EstimateRecord, error)
	ListAll(ctx context.Context) ([]entities.EstimateRecord, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
