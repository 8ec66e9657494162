// Package ai - gemini.go
// Google Gemini adapter implementing the LLMProvider interface.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/platform/metrics"
)

// GeminiProvider implements LLMProvider for the Gemini generateContent API.
type GeminiProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
	budgetGate *BudgetGate
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// NewGeminiProvider creates a new Gemini adapter. The model defaults to
// gemini-2.5-flash and can be overridden via GEMINI_MODEL.
func NewGeminiProvider(budgetGate *BudgetGate) *GeminiProvider {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		budgetGate: budgetGate,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "Gemini"
}

// IsAvailable checks if the API key is configured.
func (p *GeminiProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Complete sends a generateContent request to Gemini. Chat roles are
// flattened into a single prompt; the API has no system role on this
// endpoint.
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	estimatedCost := p.cost(1000 + req.MaxTokens)
	if !p.budgetGate.CanSpend(estimatedCost) {
		return nil, fmt.Errorf("LLM budget limit exceeded")
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	var prompt bytes.Buffer
	for _, m := range req.Messages {
		prompt.WriteString(m.Content)
		prompt.WriteString("\n\n")
	}

	gReq := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt.String()}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if req.JSONMode {
		gReq.GenerationConfig.ResponseMimeType = "application/json"
	}

	body, err := json.Marshal(gReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		model, p.apiKey,
	)

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Gemini error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gResp geminiResponse
	if err := json.Unmarshal(respBody, &gResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no candidates returned")
	}

	latency := time.Since(start)
	p.budgetGate.RecordSpend(p.cost(gResp.UsageMetadata.TotalTokenCount))
	metrics.Get().RecordLLMCall(gResp.UsageMetadata.TotalTokenCount, p.cost(gResp.UsageMetadata.TotalTokenCount), latency)

	return &CompletionResponse{
		Content:     gResp.Candidates[0].Content.Parts[0].Text,
		Model:       model,
		TotalTokens: gResp.UsageMetadata.TotalTokenCount,
		Latency:     latency,
	}, nil
}

// cost mirrors the flash-tier blended rate.
func (p *GeminiProvider) cost(tokens int) float64 {
	return float64(tokens) * 0.0000005
}

var _ LLMProvider = (*GeminiProvider)(nil)
