package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"paintbuddy/internal/usecase/interfaces"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Verifier checks Google ID tokens against the tokeninfo endpoint. Google
// recommends local JWT verification for high volume; at sign-in volume the
// endpoint is simpler and keeps key rotation out of this codebase.
type Verifier struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.IGoogleVerifier = (*Verifier)(nil)

func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		clientID:   clientID,
		baseURL:    tokenInfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenInfo struct {
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Expiry        string `json:"exp"`
}

func (v *Verifier) Verify(ctx context.Context, idToken string) (interfaces.GoogleProfile, error) {
	if v.clientID == "" {
		return interfaces.GoogleProfile{}, fmt.Errorf("google sign-in not configured")
	}

	endpoint := fmt.Sprintf("%s?id_token=%s", v.baseURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return interfaces.GoogleProfile{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return interfaces.GoogleProfile{}, fmt.Errorf("call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return interfaces.GoogleProfile{}, fmt.Errorf("read tokeninfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return interfaces.GoogleProfile{}, fmt.Errorf("tokeninfo rejected token (status %d)", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return interfaces.GoogleProfile{}, fmt.Errorf("decode tokeninfo: %w", err)
	}

	if info.Audience != v.clientID {
		return interfaces.GoogleProfile{}, fmt.Errorf("token issued for a different client")
	}

	return interfaces.GoogleProfile{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
	}, nil
}
