// Package ai - anthropic.go
// Anthropic Claude adapter implementing the LLMProvider interface.
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

// AnthropicProvider implements LLMProvider for the Anthropic API.
type AnthropicProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	budgetGate *BudgetGate
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewAnthropicProvider creates a new Claude adapter.
func NewAnthropicProvider(budgetGate *BudgetGate) *AnthropicProvider {
	return &AnthropicProvider{
		apiKey:     os.Getenv("ANTHROPIC_API_KEY"),
		baseURL:    "https://api.anthropic.com/v1/messages",
		model:      "claude-3-5-haiku-20241022",
		httpClient: &http.Client{Timeout: 60 * time.Second},
		budgetGate: budgetGate,
	}
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return "Anthropic Claude"
}

// IsAvailable checks if the API key is configured.
func (p *AnthropicProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Complete sends a completion request to Claude. The API has no JSON
// response mode, so JSONMode is enforced via an extra instruction.
func (p *AnthropicProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("Anthropic API key not configured")
	}

	estimatedCost := p.cost(1000 + req.MaxTokens)
	if !p.budgetGate.CanSpend(estimatedCost) {
		return nil, fmt.Errorf("LLM budget limit exceeded")
	}

	var systemMsg string
	var messages []anthropicMessage
	for _, m := range req.Messages {
		if m.Role == "system" {
			systemMsg = m.Content
		} else {
			messages = append(messages, anthropicMessage{Role: m.Role, Content: m.Content})
		}
	}
	if req.JSONMode {
		if systemMsg != "" {
			systemMsg += "\n\n"
		}
		systemMsg += "Respond with valid JSON only, no markdown fences."
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	anthReq := anthropicRequest{
		Model:     model,
		MaxTokens: req.MaxTokens,
		System:    systemMsg,
		Messages:  messages,
	}

	body, err := json.Marshal(anthReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

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
		return nil, fmt.Errorf("Anthropic error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(respBody, &anthResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("no response content returned")
	}

	totalTokens := anthResp.Usage.InputTokens + anthResp.Usage.OutputTokens
	latency := time.Since(start)
	p.budgetGate.RecordSpend(p.cost(totalTokens))
	metrics.Get().RecordLLMCall(totalTokens, p.cost(totalTokens), latency)

	return &CompletionResponse{
		Content:     anthResp.Content[0].Text,
		Model:       anthResp.Model,
		TotalTokens: totalTokens,
		Latency:     latency,
	}, nil
}

// cost is a blended haiku-tier estimate.
func (p *AnthropicProvider) cost(tokens int) float64 {
	return float64(tokens) * 0.000002
}

var _ LLMProvider = (*AnthropicProvider)(nil)
