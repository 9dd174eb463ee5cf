package interfaces

import (
	"context"

	"paintbuddy/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User accounts.
//
// GetByEmail, GetByVerificationToken and GetByResetToken return the zero
// user (ID == "") when nothing matches; absence is an expected outcome
// during login, verification and password reset, not an error.
type IUserRepository interface {
	Create(ctx context.Context, user entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	GetByVerificationToken(ctx context.Context, token string) (entities.User, error)
	GetByResetToken(ctx context.Context, token string) (entities.User, error)
	MarkVerified(ctx context.Context, id string) (entities.User, error)
	SetResetToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) (entities.User, error)
}
