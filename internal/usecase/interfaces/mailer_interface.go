package interfaces

import "context"

// IMailer sends transactional mail for the verification and password-reset
// flows.
type IMailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
}
