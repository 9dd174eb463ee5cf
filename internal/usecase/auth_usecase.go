package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("an account with this email already exists")
	ErrWeakPassword        = errors.New("password must be at least 8 characters with an uppercase letter and a special character")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidVerification = errors.New("invalid or expired verification token")
	ErrInvalidReset        = errors.New("invalid or expired reset token")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidToken        = errors.New("invalid token")
)

const passwordSpecials = `!@#$%^&*()-_=+[]{};:'",.<>/?~` + "`|\\"

// RegisterInput is the email/password sign-up payload.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Claims is what the middleware extracts from a bearer token.
type Claims struct {
	UserID        string
	Role          entities.Role
	EmailVerified bool
}

func (c Claims) IsAdmin() bool { return c.Role == entities.RoleAdmin }

// AuthResult bundles a signed token with the user it represents.
type AuthResult struct {
	Token string
	User  entities.User
}

// IAuthUseCase covers account lifecycle: email/password registration with
// mandatory email verification, login, Google sign-in and token checks.
type IAuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (entities.User, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	VerifyEmail(ctx context.Context, token string) (AuthResult, error)
	GoogleSignIn(ctx context.Context, idToken string) (AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirmPassword string) (AuthResult, error)
	VerifyToken(token string) (Claims, error)
	GetUser(ctx context.Context, id string) (entities.User, error)
}

type AuthUseCase struct {
	users       interfaces.IUserRepository
	mailer      interfaces.IMailer
	google      interfaces.IGoogleVerifier
	jwtSecret   []byte
	tokenTTL    time.Duration
	adminEmails map[string]bool
	logger      *zap.Logger
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(
	users interfaces.IUserRepository,
	mailer interfaces.IMailer,
	google interfaces.IGoogleVerifier,
	jwtSecret string,
	tokenTTL time.Duration,
	adminEmails []string,
	logger *zap.Logger,
) *AuthUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = true
	}
	return &AuthUseCase{
		users:       users,
		mailer:      mailer,
		google:      google,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		adminEmails: admins,
		logger:      logger,
	}
}

func (u *AuthUseCase) Register(ctx context.Context, input RegisterInput) (entities.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Name) == "" {
		return entities.User{}, errors.New("name and email are required")
	}
	if input.Password != input.ConfirmPassword {
		return entities.User{}, ErrPasswordMismatch
	}
	if !passwordStrongEnough(input.Password) {
		return entities.User{}, ErrWeakPassword
	}

	existing, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := entities.User{
		ID:                uuid.NewString(),
		Email:             email,
		Name:              strings.TrimSpace(input.Name),
		PasswordHash:      string(hash),
		Role:              u.roleFor(email),
		VerificationToken: uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
	}

	created, err := u.users.Create(ctx, user)
	if err != nil {
		return entities.User{}, err
	}

	// A lost verification mail is recoverable; a lost account is not.
	if err := u.mailer.SendVerificationEmail(ctx, created.Email, created.Name, created.VerificationToken); err != nil {
		u.logger.Error("failed to send verification email",
			zap.String("user_id", created.ID), zap.Error(err))
	}

	return created, nil
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" || user.PasswordHash == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return u.issueToken(user)
}

func (u *AuthUseCase) VerifyEmail(ctx context.Context, token string) (AuthResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return AuthResult{}, ErrInvalidVerification
	}

	user, err := u.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		return AuthResult{}, ErrInvalidVerification
	}

	verified, err := u.users.MarkVerified(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	// Fresh token so the verified claim takes effect without a second login.
	return u.issueToken(verified)
}

func (u *AuthUseCase) GoogleSignIn(ctx context.Context, idToken string) (AuthResult, error) {
	profile, err := u.google.Verify(ctx, idToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if !profile.EmailVerified || profile.Email == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	email := normalizeEmail(profile.Email)
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		name := profile.Name
		if name == "" {
			name = email
		}
		user, err = u.users.Create(ctx, entities.User{
			ID:            uuid.NewString(),
			Email:         email,
			Name:          name,
			Role:          u.roleFor(email),
			EmailVerified: true, // Google asserts the address
			CreatedAt:     time.Now().UTC(),
		})
		if err != nil {
			return AuthResult{}, err
		}
		u.logger.Info("created account from google sign-in", zap.String("user_id", user.ID))
	}
	return u.issueToken(user)
}

// RequestPasswordReset stores a one-shot reset token and emails the link.
// An unknown address returns nil so the endpoint cannot be used to probe
// which emails have accounts.
func (u *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.ID == "" {
		u.logger.Debug("password reset requested for unknown email")
		return nil
	}

	token := uuid.NewString()
	if err := u.users.SetResetToken(ctx, user.ID, token); err != nil {
		return err
	}
	if err := u.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	u.logger.Info("password reset requested", zap.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token and replaces the password, then signs
// the user in. Google-only accounts gain a password this way, which also
// enables email login for them.
func (u *AuthUseCase) ResetPassword(ctx context.Context, token, password, confirmPassword string) (AuthResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return AuthResult{}, ErrInvalidReset
	}
	if password != confirmPassword {
		return AuthResult{}, ErrPasswordMismatch
	}
	if !passwordStrongEnough(password) {
		return AuthResult{}, ErrWeakPassword
	}

	user, err := u.users.GetByResetToken(ctx, token)
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		return AuthResult{}, ErrInvalidReset
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	updated, err := u.users.UpdatePassword(ctx, user.ID, string(hash))
	if err != nil {
		return AuthResult{}, err
	}

	u.logger.Info("password reset completed", zap.String("user_id", updated.ID))
	return u.issueToken(updated)
}

func (u *AuthUseCase) VerifyToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return u.jwtSecret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	verified, _ := claims["verified"].(bool)
	role := entities.Role(roleStr)
	if userID == "" || !role.Valid() {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: userID, Role: role, EmailVerified: verified}, nil
}

func (u *AuthUseCase) GetUser(ctx context.Context, id string) (entities.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

func (u *AuthUseCase) issueToken(user entities.User) (AuthResult, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"role":     string(user.Role),
		"verified": user.EmailVerified,
		"iat":      now.Unix(),
		"exp":      now.Add(u.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}

func (u *AuthUseCase) roleFor(email string) entities.Role {
	if u.adminEmails[email] {
		return entities.RoleAdmin
	}
	return entities.RoleCustomer
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func passwordStrongEnough(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	return hasUpper && strings.ContainsAny(password, passwordSpecials)
}
