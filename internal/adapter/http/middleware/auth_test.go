package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/usecase"

	"github.com/gin-gonic/gin"
)

type stubVerifier struct {
	claims usecase.Claims
	err    error
	seen   string
}

func (s *stubVerifier) VerifyToken(token string) (usecase.Claims, error) {
	s.seen = token
	return s.claims, s.err
}

func newAuthedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", append(mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})...)
	return router
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing header is rejected", func(t *testing.T) {
		router := newAuthedRouter(RequireAuth(&stubVerifier{}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router := newAuthedRouter(RequireAuth(&stubVerifier{}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("verifier failure is rejected", func(t *testing.T) {
		verifier := &stubVerifier{err: errors.New("expired")}
		router := newAuthedRouter(RequireAuth(verifier))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if verifier.seen != "not-a-token" {
			t.Fatalf("verifier received %q", verifier.seen)
		}
	})

	t.Run("valid token stores claims", func(t *testing.T) {
		verifier := &stubVerifier{claims: usecase.Claims{UserID: "user-1", Role: entities.RoleCustomer, EmailVerified: true}}

		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/protected", RequireAuth(verifier), func(c *gin.Context) {
			claims, ok := ClaimsFrom(c)
			if !ok || claims.UserID != "user-1" {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer signed-token")
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if verifier.seen != "signed-token" {
			t.Fatalf("verifier received %q", verifier.seen)
		}
	})
}

func TestRequireVerified(t *testing.T) {
	withClaims := func(claims usecase.Claims) gin.HandlerFunc {
		return func(c *gin.Context) {
			SetClaims(c, claims)
			c.Next()
		}
	}

	t.Run("unverified customer is blocked", func(t *testing.T) {
		router := newAuthedRouter(withClaims(usecase.Claims{UserID: "u", Role: entities.RoleCustomer}), RequireVerified())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("verified customer passes", func(t *testing.T) {
		router := newAuthedRouter(withClaims(usecase.Claims{UserID: "u", Role: entities.RoleCustomer, EmailVerified: true}), RequireVerified())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("unverified admin passes", func(t *testing.T) {
		router := newAuthedRouter(withClaims(usecase.Claims{UserID: "u", Role: entities.RoleAdmin}), RequireVerified())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("missing claims is unauthorized", func(t *testing.T) {
		router := newAuthedRouter(RequireVerified())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	withClaims := func(claims usecase.Claims) gin.HandlerFunc {
		return func(c *gin.Context) {
			SetClaims(c, claims)
			c.Next()
		}
	}

	t.Run("customer is forbidden", func(t *testing.T) {
		router := newAuthedRouter(withClaims(usecase.Claims{UserID: "u", Role: entities.RoleCustomer, EmailVerified: true}), RequireAdmin())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		router := newAuthedRouter(withClaims(usecase.Claims{UserID: "u", Role: entities.RoleAdmin, EmailVerified: true}), RequireAdmin())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Bearer   padded  ", "padded"},
		{"Bearer", ""},
		{"Bearer ", ""},
		{"Token abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
