package usecase

import (
	"context"
	"errors"
	"time"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/domain/pricing"
	"paintbuddy/internal/domain/validation"
	"paintbuddy/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQuotaExceeded  = errors.New("estimate quota exceeded")
	ErrRecordNotFound = errors.New("estimate record not found")
)

// ValidationError carries the field-scoped messages for a rejected
// submission. It is an expected outcome, not a failure.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string { return "invalid job specification" }

// SubmissionResult is the outcome of one submission. SaveFailed reports a
// persistence error: the estimate was computed and must still be shown,
// but the record did not land in the store.
type SubmissionResult struct {
	Record     entities.EstimateRecord
	Remaining  int // -1 when unknown or unlimited
	SaveFailed bool
}

// QuotaStatus is the user-visible quota snapshot.
type QuotaStatus struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

// IEstimateUseCase runs the submission pipeline and the read paths of the
// admin review surface.
//
// Pipeline order: validate -> quota gate -> price band -> explanation ->
// persist -> refresh remaining count. The quota gate runs before any
// pricing or backend work so a throttled user costs nothing. The gate and
// the write are not transactional; two concurrent submissions can both
// pass the count check, which is accepted for a soft usage limit.
type IEstimateUseCase interface {
	SubmitEstimate(ctx context.Context, userID string, isAdmin bool, input validation.SpecificationInput) (SubmissionResult, error)
	Quota(ctx context.Context, userID string, isAdmin bool) (QuotaStatus, error)
	GetByID(ctx context.Context, id string) (entities.EstimateRecord, error)
	ListAll(ctx context.Context) ([]entities.EstimateRecord, error)
}

type EstimateUseCase struct {
	repo      interfaces.IEstimateRepository
	generator interfaces.IExplanationGenerator
	quota     int
	logger    *zap.Logger
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, generator interfaces.IExplanationGenerator, quota int, logger *zap.Logger) *EstimateUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateUseCase{repo: repo, generator: generator, quota: quota, logger: logger}
}

func (u *EstimateUseCase) SubmitEstimate(ctx context.Context, userID string, isAdmin bool, input validation.SpecificationInput) (SubmissionResult, error) {
	spec, fieldErrs := validation.Validate(input)
	if !fieldErrs.Empty() {
		u.logger.Debug("submission rejected by validator", zap.Int("fields", len(fieldErrs)))
		return SubmissionResult{}, &ValidationError{Fields: fieldErrs}
	}

	if !isAdmin {
		used, err := u.repo.CountByUser(ctx, userID)
		if err != nil {
			return SubmissionResult{}, err
		}
		if used >= u.quota {
			return SubmissionResult{}, ErrQuotaExceeded
		}
	}

	band := pricing.ComputeBand(spec)

	result, err := u.generator.Generate(ctx, spec, band)
	if err != nil {
		return SubmissionResult{}, err
	}

	record := entities.EstimateRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Options:   spec,
		Estimate:  result,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := u.repo.Save(ctx, record); err != nil {
		// The estimate itself succeeded; report the storage failure instead
		// of discarding the computed result.
		u.logger.Error("failed to persist estimate record",
			zap.String("record_id", record.ID), zap.Error(err))
		return SubmissionResult{Record: record, Remaining: -1, SaveFailed: true}, nil
	}

	remaining := -1
	if !isAdmin {
		// Plain re-count, deliberately not part of any transaction with the
		// write above; an eventually consistent value is fine here.
		if used, err := u.repo.CountByUser(ctx, userID); err == nil {
			remaining = u.quota - used
			if remaining < 0 {
				remaining = 0
			}
		} else {
			u.logger.Warn("failed to refresh submission count", zap.Error(err))
		}
	}

	return SubmissionResult{Record: record, Remaining: remaining}, nil
}

func (u *EstimateUseCase) Quota(ctx context.Context, userID string, isAdmin bool) (QuotaStatus, error) {
	used, err := u.repo.CountByUser(ctx, userID)
	if err != nil {
		return QuotaStatus{}, err
	}
	status := QuotaStatus{Used: used, Limit: u.quota, Unlimited: isAdmin}
	if !isAdmin {
		status.Remaining = u.quota - used
		if status.Remaining < 0 {
			status.Remaining = 0
		}
	}
	return status, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.EstimateRecord, error) {
	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.EstimateRecord{}, err
	}
	if record.ID == "" {
		return entities.EstimateRecord{}, ErrRecordNotFound
	}
	return record, nil
}

func (u *EstimateUseCase) ListAll(ctx context.Context) ([]entities.EstimateRecord, error) {
	return u.repo.ListAll(ctx)
}
