// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/zzangoobrother/ddalkkak-date/internal/config"
	"github.com/zzangoobrother/ddalkkak-date/internal/logging"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 2000
)

// OpenAIProvider generates itinerary proposals through the OpenAI chat
// completions API.
type OpenAIProvider struct {
	cfg     config.ProviderConfig
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[*chatCompletion]
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewOpenAIProvider builds the OpenAI adapter from its configuration.
func NewOpenAIProvider(cfg config.ProviderConfig) *OpenAIProvider {
	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), cfg.RatePerMinute)
	}
	return &OpenAIProvider{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		cb:      newProviderBreaker("openai"),
		limiter: limiter,
		log:     logging.With().Str("provider", "openai").Logger(),
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// chatMessage is one entry of the chat completions messages array.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
	MaxTokens      int                 `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate implements Provider. Every failure mode — rate limit,
// breaker open, transport error, non-200, empty or malformed reply —
// comes back as an error for the orchestrator to absorb.
func (p *OpenAIProvider) Generate(ctx context.Context, req *Request) (*models.Proposal, error) {
	start := time.Now()

	userPrompt, err := BuildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	completion, err := p.cb.Execute(func() (*chatCompletion, error) {
		return p.complete(ctx, userPrompt)
	})
	if err != nil {
		p.log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("generation attempt failed")
		return nil, err
	}

	proposal := &models.Proposal{}
	if err := json.Unmarshal([]byte(extractJSON(completion.text)), proposal); err != nil {
		return nil, fmt.Errorf("parse proposal: %w", err)
	}

	p.log.Info().
		Dur("elapsed", time.Since(start)).
		Int("stops", len(proposal.Stops)).
		Msg("generation attempt succeeded")
	return proposal, nil
}

// complete performs one chat completions call.
func (p *OpenAIProvider) complete(ctx context.Context, userPrompt string) (*chatCompletion, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    generationTemperature,
		ResponseFormat: &chatResponseFormat{Type: "json_object"},
		MaxTokens:      generationMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("api status %d: %s", resp.StatusCode, payload)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response")
	}

	p.log.Debug().
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Int("completion_tokens", parsed.Usage.CompletionTokens).
		Msg("token usage")

	return &chatCompletion{text: parsed.Choices[0].Message.Content}, nil
}
