package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/usecase/interfaces"
	mock_interfaces "paintbuddy/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuthForTest(t *testing.T, users *mock_interfaces.MockIUserRepository, mailer *mock_interfaces.MockIMailer, google *mock_interfaces.MockIGoogleVerifier, adminEmails ...string) *AuthUseCase {
	t.Helper()
	return NewAuthUseCase(users, mailer, google, testSecret, time.Hour, adminEmails, nil)
}

func TestAuthUseCase_Register(t *testing.T) {
	t.Run("password mismatch", func(t *testing.T) {
		uc := newAuthForTest(t, nil, nil, nil)
		_, err := uc.Register(context.Background(), RegisterInput{
			Name: "Jane", Email: "jane@example.com",
			Password: "Str0ng!pass", ConfirmPassword: "different",
		})
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Fatalf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("weak passwords rejected", func(t *testing.T) {
		uc := newAuthForTest(t, nil, nil, nil)
		for _, password := range []string{"short!A", "nouppercase1!", "NoSpecialChar1"} {
			_, err := uc.Register(context.Background(), RegisterInput{
				Name: "Jane", Email: "jane@example.com",
				Password: password, ConfirmPassword: password,
			})
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword for %q, got %v", password, err)
			}
		}
	})

	t.Run("email already registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
			Return(entities.User{ID: "existing"}, nil)

		_, err := uc.Register(context.Background(), RegisterInput{
			Name: "Jane", Email: "Jane@Example.com",
			Password: "Str0ng!pass", ConfirmPassword: "Str0ng!pass",
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("creates user and sends verification mail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := newAuthForTest(t, users, mailer, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(entities.User{}, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u entities.User) (entities.User, error) {
				if u.ID == "" || u.VerificationToken == "" {
					t.Fatalf("expected generated ids, got %+v", u)
				}
				if u.Email != "jane@example.com" || u.Name != "Jane" {
					t.Fatalf("email/name not normalized: %+v", u)
				}
				if u.Role != entities.RoleCustomer {
					t.Fatalf("expected customer role, got %q", u.Role)
				}
				if u.EmailVerified {
					t.Fatalf("fresh accounts must start unverified")
				}
				if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Str0ng!pass")) != nil {
					t.Fatalf("password hash does not match the password")
				}
				return u, nil
			})
		mailer.EXPECT().SendVerificationEmail(gomock.Any(), "jane@example.com", "Jane", gomock.Any()).Return(nil)

		user, err := uc.Register(context.Background(), RegisterInput{
			Name: " Jane ", Email: " Jane@Example.COM ",
			Password: "Str0ng!pass", ConfirmPassword: "Str0ng!pass",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "jane@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("mail failure does not fail registration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := newAuthForTest(t, users, mailer, nil)

		users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(entities.User{}, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u entities.User) (entities.User, error) { return u, nil })
		mailer.EXPECT().SendVerificationEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("ses throttled"))

		_, err := uc.Register(context.Background(), RegisterInput{
			Name: "Jane", Email: "jane@example.com",
			Password: "Str0ng!pass", ConfirmPassword: "Str0ng!pass",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("configured admin email gets the admin role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := newAuthForTest(t, users, mailer, nil, "Boss@Example.com")

		users.EXPECT().GetByEmail(gomock.Any(), "boss@example.com").Return(entities.User{}, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u entities.User) (entities.User, error) {
				if u.Role != entities.RoleAdmin {
					t.Fatalf("expected admin role, got %q", u.Role)
				}
				return u, nil
			})
		mailer.EXPECT().SendVerificationEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := uc.Register(context.Background(), RegisterInput{
			Name: "Boss", Email: "boss@example.com",
			Password: "Str0ng!pass", ConfirmPassword: "Str0ng!pass",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	stored := entities.User{
		ID: "user-1", Email: "jane@example.com", Name: "Jane",
		PasswordHash: string(hash), Role: entities.RoleCustomer, EmailVerified: true,
	}

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(entities.User{}, nil)

		_, err := uc.Login(context.Background(), "nobody@example.com", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)

		_, err := uc.Login(context.Background(), "jane@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("google-only account has no password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		googleUser := stored
		googleUser.PasswordHash = ""
		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(googleUser, nil)

		_, err := uc.Login(context.Background(), "jane@example.com", "Str0ng!pass")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("issues a verifiable token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)

		result, err := uc.Login(context.Background(), "Jane@Example.com", "Str0ng!pass")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := uc.VerifyToken(result.Token)
		if err != nil {
			t.Fatalf("token does not verify: %v", err)
		}
		if claims.UserID != "user-1" || claims.Role != entities.RoleCustomer || !claims.EmailVerified {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})
}

func TestAuthUseCase_VerifyEmail(t *testing.T) {
	t.Run("blank token", func(t *testing.T) {
		uc := newAuthForTest(t, nil, nil, nil)
		_, err := uc.VerifyEmail(context.Background(), "   ")
		if !errors.Is(err, ErrInvalidVerification) {
			t.Fatalf("expected ErrInvalidVerification, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByVerificationToken(gomock.Any(), "bogus").Return(entities.User{}, nil)

		_, err := uc.VerifyEmail(context.Background(), "bogus")
		if !errors.Is(err, ErrInvalidVerification) {
			t.Fatalf("expected ErrInvalidVerification, got %v", err)
		}
	})

	t.Run("marks verified and issues a fresh token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByVerificationToken(gomock.Any(), "tok-1").
			Return(entities.User{ID: "user-1", Email: "jane@example.com", Role: entities.RoleCustomer}, nil)
		users.EXPECT().MarkVerified(gomock.Any(), "user-1").
			Return(entities.User{ID: "user-1", Email: "jane@example.com", Role: entities.RoleCustomer, EmailVerified: true}, nil)

		result, err := uc.VerifyEmail(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := uc.VerifyToken(result.Token)
		if err != nil {
			t.Fatalf("token does not verify: %v", err)
		}
		if !claims.EmailVerified {
			t.Fatalf("expected verified claim on fresh token")
		}
	})
}

func TestAuthUseCase_GoogleSignIn(t *testing.T) {
	t.Run("verifier rejects the token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		google := mock_interfaces.NewMockIGoogleVerifier(ctrl)
		uc := newAuthForTest(t, nil, nil, google)

		google.EXPECT().Verify(gomock.Any(), "bad").
			Return(interfaces.GoogleProfile{}, errors.New("expired"))

		_, err := uc.GoogleSignIn(context.Background(), "bad")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unverified google address rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		google := mock_interfaces.NewMockIGoogleVerifier(ctrl)
		uc := newAuthForTest(t, nil, nil, google)

		google.EXPECT().Verify(gomock.Any(), "tok").
			Return(interfaces.GoogleProfile{Subject: "sub", Email: "jane@example.com", EmailVerified: false}, nil)

		_, err := uc.GoogleSignIn(context.Background(), "tok")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("existing account signs in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		google := mock_interfaces.NewMockIGoogleVerifier(ctrl)
		uc := newAuthForTest(t, users, nil, google)

		google.EXPECT().Verify(gomock.Any(), "tok").
			Return(interfaces.GoogleProfile{Subject: "sub", Email: "Jane@Example.com", EmailVerified: true, Name: "Jane"}, nil)
		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
			Return(entities.User{ID: "user-1", Email: "jane@example.com", Role: entities.RoleCustomer, EmailVerified: true}, nil)

		result, err := uc.GoogleSignIn(context.Background(), "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.User.ID != "user-1" {
			t.Fatalf("unexpected user: %+v", result.User)
		}
	})

	t.Run("first sign-in creates a verified account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		google := mock_interfaces.NewMockIGoogleVerifier(ctrl)
		uc := newAuthForTest(t, users, nil, google)

		google.EXPECT().Verify(gomock.Any(), "tok").
			Return(interfaces.GoogleProfile{Subject: "sub", Email: "jane@example.com", EmailVerified: true, Name: "Jane"}, nil)
		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(entities.User{}, nil)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u entities.User) (entities.User, error) {
				if !u.EmailVerified {
					t.Fatalf("google accounts must be created verified")
				}
				if u.PasswordHash != "" {
					t.Fatalf("google accounts must not carry a password hash")
				}
				return u, nil
			})

		result, err := uc.GoogleSignIn(context.Background(), "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := uc.VerifyToken(result.Token)
		if err != nil {
			t.Fatalf("token does not verify: %v", err)
		}
		if !claims.EmailVerified {
			t.Fatalf("expected verified claim, got %+v", claims)
		}
	})
}

func TestAuthUseCase_RequestPasswordReset(t *testing.T) {
	t.Run("unknown email succeeds without a mail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := newAuthForTest(t, users, mailer, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(entities.User{}, nil)

		if err := uc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
			t.Fatalf("unknown address must not surface an error, got %v", err)
		}
	})

	t.Run("stores a token and mails the link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := newAuthForTest(t, users, mailer, nil)

		users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
			Return(entities.User{ID: "user-1", Email: "jane@example.com", Name: "Jane"}, nil)

		var storedToken string
		users.EXPECT().SetResetToken(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, token string) error {
				if token == "" {
					t.Fatalf("expected a generated reset token")
				}
				storedToken = token
				return nil
			})
		mailer.EXPECT().SendPasswordResetEmail(gomock.Any(), "jane@example.com", "Jane", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, token string) error {
				if token != storedToken {
					t.Fatalf("emailed token %q differs from stored token %q", token, storedToken)
				}
				return nil
			})

		if err := uc.RequestPasswordReset(context.Background(), " Jane@Example.com "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("mail failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		mailer := mock_interfaces.NewMockIMailer(ctrl)
		uc := newAuthForTest(t, users, mailer, nil)

		users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).
			Return(entities.User{ID: "user-1", Email: "jane@example.com", Name: "Jane"}, nil)
		users.EXPECT().SetResetToken(gomock.Any(), "user-1", gomock.Any()).Return(nil)
		mailer.EXPECT().SendPasswordResetEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("ses throttled"))

		if err := uc.RequestPasswordReset(context.Background(), "jane@example.com"); err == nil {
			t.Fatalf("expected the mail failure to surface; the link is the whole flow")
		}
	})
}

func TestAuthUseCase_ResetPassword(t *testing.T) {
	t.Run("blank token", func(t *testing.T) {
		uc := newAuthForTest(t, nil, nil, nil)
		_, err := uc.ResetPassword(context.Background(), "  ", "Str0ng!pass", "Str0ng!pass")
		if !errors.Is(err, ErrInvalidReset) {
			t.Fatalf("expected ErrInvalidReset, got %v", err)
		}
	})

	t.Run("mismatch and weak password rejected", func(t *testing.T) {
		uc := newAuthForTest(t, nil, nil, nil)

		_, err := uc.ResetPassword(context.Background(), "tok", "Str0ng!pass", "different")
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Fatalf("expected ErrPasswordMismatch, got %v", err)
		}
		_, err = uc.ResetPassword(context.Background(), "tok", "weak", "weak")
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByResetToken(gomock.Any(), "bogus").Return(entities.User{}, nil)

		_, err := uc.ResetPassword(context.Background(), "bogus", "Str0ng!pass", "Str0ng!pass")
		if !errors.Is(err, ErrInvalidReset) {
			t.Fatalf("expected ErrInvalidReset, got %v", err)
		}
	})

	t.Run("replaces the password and signs in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByResetToken(gomock.Any(), "tok-1").
			Return(entities.User{ID: "user-1", Email: "jane@example.com", Role: entities.RoleCustomer, EmailVerified: true}, nil)
		users.EXPECT().UpdatePassword(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, id, hash string) (entities.User, error) {
				if bcrypt.CompareHashAndPassword([]byte(hash), []byte("N3w!passwd")) != nil {
					t.Fatalf("stored hash does not match the new password")
				}
				return entities.User{ID: id, Email: "jane@example.com", PasswordHash: hash,
					Role: entities.RoleCustomer, EmailVerified: true}, nil
			})

		result, err := uc.ResetPassword(context.Background(), "tok-1", "N3w!passwd", "N3w!passwd")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := uc.VerifyToken(result.Token)
		if err != nil {
			t.Fatalf("token does not verify: %v", err)
		}
		if claims.UserID != "user-1" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})
}

func TestAuthUseCase_VerifyToken(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		uc := newAuthForTest(t, nil, nil, nil)
		_, err := uc.VerifyToken("not.a.jwt")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthUseCase(nil, nil, nil, "other-secret", time.Hour, nil, nil)
		result, err := other.issueToken(entities.User{ID: "user-1", Role: entities.RoleCustomer})
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		uc := newAuthForTest(t, nil, nil, nil)
		if _, err := uc.VerifyToken(result.Token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthUseCase(nil, nil, nil, testSecret, -time.Minute, nil, nil)
		result, err := expired.issueToken(entities.User{ID: "user-1", Role: entities.RoleCustomer})
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		uc := newAuthForTest(t, nil, nil, nil)
		if _, err := uc.VerifyToken(result.Token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestAuthUseCase_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByID(gomock.Any(), "user-1").
			Return(entities.User{ID: "user-1", Email: "jane@example.com"}, nil)

		user, err := uc.GetUser(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "jane@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := newAuthForTest(t, users, nil, nil)

		users.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.User{}, nil)

		_, err := uc.GetUser(context.Background(), "missing")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
