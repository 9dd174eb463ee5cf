package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/usecase/interfaces"
)

func testSpec() entities.JobSpecification {
	return entities.JobSpecification{
		Name:            "Jane Citizen",
		Email:           "jane@example.com",
		TypeOfWork:      []entities.WorkType{entities.WorkTypeInterior},
		ScopeOfPainting: entities.ScopeSpecificAreas,
		PropertyType:    "House",
		RoomsToPaint:    []string{"Kitchen"},
		TimingPurpose:   entities.TimingMaintenance,
		PaintAreas:      entities.PaintAreas{WallPaint: true},
		TrimPaint:       entities.NoTrimPaint(),
	}
}

var testBand = entities.PriceBand{Min: 2500, Max: 8000}

func newTestGateway(t *testing.T, handler http.HandlerFunc) *GeminiGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	g := NewGeminiGateway("test-key", "gemini-2.0-flash", time.Second, false, nil)
	g.baseURL = server.URL
	return g
}

func modelAnswer(t *testing.T, doc map[string]interface{}) string {
	t.Helper()
	text, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal answer: %v", err)
	}
	envelope := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": string(text)}},
			}},
		},
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return string(raw)
}

func TestGeminiGateway_Generate(t *testing.T) {
	t.Run("stamps the authoritative price range", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.Path, "gemini-2.0-flash") {
				t.Fatalf("unexpected path: %s", r.URL.Path)
			}
			w.Write([]byte(modelAnswer(t, map[string]interface{}{
				"priceRange":  "$999 - $1,000 AUD",
				"explanation": "A tidy kitchen repaint.",
				"details":     []string{"Kitchen walls"},
			})))
		})

		result, err := g.Generate(context.Background(), testSpec(), testBand)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PriceRange != "$2,500 - $8,000 AUD" {
			t.Fatalf("model-supplied range must be overridden, got %q", result.PriceRange)
		}
		if result.Explanation != "A tidy kitchen repaint." {
			t.Fatalf("unexpected explanation: %q", result.Explanation)
		}
	})

	t.Run("rate limit maps to sentinel", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorRateLimited) {
			t.Fatalf("expected ErrGeneratorRateLimited, got %v", err)
		}
	})

	t.Run("deadline expiry maps to rate limited", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(modelAnswer(t, map[string]interface{}{
				"priceRange":  "$2,500 - $8,000 AUD",
				"explanation": "Too late.",
				"details":     []string{},
			})))
		})
		g.timeout = 20 * time.Millisecond

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorRateLimited) {
			t.Fatalf("expected ErrGeneratorRateLimited, got %v", err)
		}
	})

	t.Run("auth failure maps to not configured", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorNotConfigured) {
			t.Fatalf("expected ErrGeneratorNotConfigured, got %v", err)
		}
	})

	t.Run("missing key maps to not configured", func(t *testing.T) {
		g := NewGeminiGateway("", "gemini-2.0-flash", time.Second, false, nil)

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorNotConfigured) {
			t.Fatalf("expected ErrGeneratorNotConfigured, got %v", err)
		}
	})

	t.Run("schema violation maps to bad response", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(modelAnswer(t, map[string]interface{}{
				"details": []string{"no explanation field"},
			})))
		})

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorBadResponse) {
			t.Fatalf("expected ErrGeneratorBadResponse, got %v", err)
		}
	})

	t.Run("missing details maps to bad response", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(modelAnswer(t, map[string]interface{}{
				"priceRange":  "$2,500 - $8,000 AUD",
				"explanation": "No factor list this time.",
			})))
		})

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorBadResponse) {
			t.Fatalf("expected ErrGeneratorBadResponse, got %v", err)
		}
	})

	t.Run("non-json answer maps to bad response", func(t *testing.T) {
		g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			envelope := `{"candidates":[{"content":{"parts":[{"text":"sorry, no"}]}}]}`
			w.Write([]byte(envelope))
		})

		_, err := g.Generate(context.Background(), testSpec(), testBand)
		if !errors.Is(err, interfaces.ErrGeneratorBadResponse) {
			t.Fatalf("expected ErrGeneratorBadResponse, got %v", err)
		}
	})

	t.Run("mock mode is deterministic and offline", func(t *testing.T) {
		g := NewGeminiGateway("", "gemini-2.0-flash", time.Second, true, nil)

		first, err := g.Generate(context.Background(), testSpec(), testBand)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, _ := g.Generate(context.Background(), testSpec(), testBand)
		if first.Explanation != second.Explanation || first.PriceRange != second.PriceRange {
			t.Fatalf("mock results differ:\n%+v\n%+v", first, second)
		}
		if first.PriceRange != "$2,500 - $8,000 AUD" {
			t.Fatalf("unexpected mock range: %q", first.PriceRange)
		}
	})
}

func TestBuildPrompt_ContainsBandAndFields(t *testing.T) {
	prompt := buildPrompt(testSpec(), testBand)
	if !strings.Contains(prompt, "$2,500 - $8,000 AUD") {
		t.Fatalf("prompt missing calculated range:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Kitchen") || !strings.Contains(prompt, "Interior Painting") {
		t.Fatalf("prompt missing job details:\n%s", prompt)
	}
	if strings.Contains(prompt, "jane@example.com") {
		t.Fatalf("prompt must not leak contact details:\n%s", prompt)
	}
}
