package interfaces

import "context"

// GoogleProfile is the subset of the tokeninfo response the auth flow needs.
type GoogleProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IGoogleVerifier validates a Google ID token and returns the profile it
// asserts. Implementations call Google's tokeninfo endpoint.
type IGoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleProfile, error)
}
