package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/domain/pricing"
	"paintbuddy/internal/usecase/interfaces"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// responseSchema is enforced twice: sent to the model as the expected
// output shape, and checked locally before the answer is trusted.
var responseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"priceRange", "explanation", "details"},
	"properties": map[string]interface{}{
		"priceRange":  map[string]interface{}{"type": "string"},
		"explanation": map[string]interface{}{"type": "string", "minLength": 1},
		"details": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
}

// GeminiGateway generates the customer-facing explanation for a computed
// price band. The band itself is never produced by the model; the gateway
// stamps the authoritative formatted range onto every result.
type GeminiGateway struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	mockMode   bool
	logger     *zap.Logger
}

var _ interfaces.IExplanationGenerator = (*GeminiGateway)(nil)

func NewGeminiGateway(apiKey, model string, timeout time.Duration, mockMode bool, logger *zap.Logger) *GeminiGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if mockMode {
		logger.Info("explanation generator running in mock mode")
	}
	return &GeminiGateway{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
		mockMode:   mockMode,
		logger:     logger,
	}
}

func (g *GeminiGateway) Generate(ctx context.Context, spec entities.JobSpecification, band entities.PriceBand) (entities.EstimateResult, error) {
	if g.mockMode {
		return g.mockResult(spec, band), nil
	}
	if g.apiKey == "" {
		return entities.EstimateResult{}, interfaces.ErrGeneratorNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(g.buildRequest(spec, band))
	if err != nil {
		return entities.EstimateResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return entities.EstimateResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// Deadline expiry is a retry-later condition, same as a 429.
		if errors.Is(err, context.DeadlineExceeded) {
			return entities.EstimateResult{}, interfaces.ErrGeneratorRateLimited
		}
		return entities.EstimateResult{}, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.EstimateResult{}, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return entities.EstimateResult{}, interfaces.ErrGeneratorRateLimited
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		g.logger.Error("model rejected credentials", zap.Int("status", resp.StatusCode))
		return entities.EstimateResult{}, interfaces.ErrGeneratorNotConfigured
	case resp.StatusCode != http.StatusOK:
		return entities.EstimateResult{}, fmt.Errorf("model returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	result, err := g.parseResponse(raw)
	if err != nil {
		g.logger.Error("unusable model response", zap.Error(err))
		return entities.EstimateResult{}, fmt.Errorf("%w: %v", interfaces.ErrGeneratorBadResponse, err)
	}

	result.PriceRange = pricing.FormatBand(band)
	return result, nil
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiGateway) buildRequest(spec entities.JobSpecification, band entities.PriceBand) map[string]interface{} {
	return map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": buildPrompt(spec, band)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema":   responseSchema,
			"temperature":      0.4,
		},
	}
}

func (g *GeminiGateway) parseResponse(raw []byte) (entities.EstimateResult, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return entities.EstimateResult{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return entities.EstimateResult{}, fmt.Errorf("no candidates in response")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return entities.EstimateResult{}, fmt.Errorf("decode answer: %w", err)
	}

	if err := validateAgainstSchema(doc); err != nil {
		return entities.EstimateResult{}, err
	}

	var result entities.EstimateResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return entities.EstimateResult{}, fmt.Errorf("decode result: %w", err)
	}
	return result, nil
}

func validateAgainstSchema(doc map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(responseSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("answer failed schema: %v", errs)
	}
	return nil
}

func buildPrompt(spec entities.JobSpecification, band entities.PriceBand) string {
	var b strings.Builder
	b.WriteString("You are writing a short, friendly quote explanation for a painting job.\n")
	b.WriteString("The price range has already been calculated and must not be changed or restated with different numbers.\n")
	fmt.Fprintf(&b, "Calculated range: %s\n\n", pricing.FormatBand(band))
	b.WriteString("Job details:\n")
	fmt.Fprintf(&b, "- Type of work: %s\n", joinWorkTypes(spec.TypeOfWork))
	fmt.Fprintf(&b, "- Scope: %s\n", spec.ScopeOfPainting)
	fmt.Fprintf(&b, "- Property type: %s\n", spec.PropertyType)
	if len(spec.RoomsToPaint) > 0 {
		fmt.Fprintf(&b, "- Rooms: %s\n", strings.Join(spec.RoomsToPaint, ", "))
	}
	if len(spec.ExteriorAreas) > 0 {
		fmt.Fprintf(&b, "- Exterior areas: %s\n", joinExteriorAreas(spec.ExteriorAreas))
	}
	if spec.ApproxSize != nil {
		fmt.Fprintf(&b, "- Approximate size: %.0f sqm\n", *spec.ApproxSize)
	}
	fmt.Fprintf(&b, "- Paint condition: %s\n", spec.EffectiveCondition())
	if len(spec.JobDifficulty) > 0 {
		fmt.Fprintf(&b, "- Difficulty factors: %s\n", joinDifficulties(spec.JobDifficulty))
	}
	if sel, ok := spec.TrimPaint.Selection(); ok {
		fmt.Fprintf(&b, "- Trim painting: %s on %s\n", sel.PaintType, joinTrimItems(sel.TrimItems))
	}
	if spec.TimingPurpose != "" {
		fmt.Fprintf(&b, "- Timing: %s\n", spec.TimingPurpose)
	}
	b.WriteString("\nRespond with JSON: priceRange (the calculated range, repeated exactly), ")
	b.WriteString("explanation (2-4 sentences addressed to the customer) ")
	b.WriteString("and details (a short bullet list of what drives the price).")
	return b.String()
}

// mockResult is a deterministic stand-in for local development and tests.
func (g *GeminiGateway) mockResult(spec entities.JobSpecification, band entities.PriceBand) entities.EstimateResult {
	details := []string{}
	if len(spec.RoomsToPaint) > 0 {
		details = append(details, fmt.Sprintf("Interior rooms: %s", strings.Join(spec.RoomsToPaint, ", ")))
	}
	if len(spec.ExteriorAreas) > 0 {
		details = append(details, fmt.Sprintf("Exterior areas: %s", joinExteriorAreas(spec.ExteriorAreas)))
	}
	if len(spec.JobDifficulty) > 0 {
		details = append(details, fmt.Sprintf("Difficulty factors: %s", joinDifficulties(spec.JobDifficulty)))
	}
	details = append(details, fmt.Sprintf("Paint condition: %s", spec.EffectiveCondition()))

	return entities.EstimateResult{
		PriceRange: pricing.FormatBand(band),
		Explanation: fmt.Sprintf(
			"Based on the details you provided, we estimate this job at %s. The final price depends on surface condition and access on the day.",
			pricing.FormatBand(band)),
		Details: details,
	}
}

func joinWorkTypes(in []entities.WorkType) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinExteriorAreas(in []entities.ExteriorArea) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinDifficulties(in []entities.DifficultyFactor) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinTrimItems(in []entities.TrimItem) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func truncate(raw []byte, n int) string {
	s := string(raw)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
