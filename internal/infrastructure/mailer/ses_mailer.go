package mailer

import (
	"context"
	"fmt"
	"net/url"

	"paintbuddy/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

const charset = "UTF-8"

// SESMailer sends transactional mail through Amazon SES.
type SESMailer struct {
	client        *ses.Client
	sender        string
	verifyBaseURL string
	resetBaseURL  string
	logger        *zap.Logger
}

var _ interfaces.IMailer = (*SESMailer)(nil)

func NewSESMailer(awsCfg aws.Config, sender, verifyBaseURL, resetBaseURL string, logger *zap.Logger) *SESMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SESMailer{
		client:        ses.NewFromConfig(awsCfg),
		sender:        sender,
		verifyBaseURL: verifyBaseURL,
		resetBaseURL:  resetBaseURL,
		logger:        logger,
	}
}

func (m *SESMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s?token=%s", m.verifyBaseURL, url.QueryEscape(token))
	subject := "Verify your Paint Buddy account"
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for signing up. Confirm your email address to start getting instant painting estimates:\n\n%s\n\nIf you didn't create this account you can ignore this email.\n",
		name, link)

	if err := m.send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	m.logger.Info("verification email sent", zap.String("to", to))
	return nil
}

func (m *SESMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s?token=%s", m.resetBaseURL, url.QueryEscape(token))
	subject := "Reset your Paint Buddy password"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Use this link to choose a new one:\n\n%s\n\nIf you didn't ask for a reset you can ignore this email; your password is unchanged.\n",
		name, link)

	if err := m.send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	m.logger.Info("password reset email sent", zap.String("to", to))
	return nil
}

func (m *SESMailer) send(ctx context.Context, to, subject, body string) error {
	if m.sender == "" {
		return fmt.Errorf("no sender address configured")
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String(charset)},
			},
		},
	})
	return err
}
