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

const anthropicVersion = "2023-06-01"

// AnthropicProvider generates itinerary proposals through the
// Anthropic messages API.
type AnthropicProvider struct {
	cfg     config.ProviderConfig
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[*chatCompletion]
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewAnthropicProvider builds the Anthropic adapter from its
// configuration.
func NewAnthropicProvider(cfg config.ProviderConfig) *AnthropicProvider {
	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), cfg.RatePerMinute)
	}
	return &AnthropicProvider{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		cb:      newProviderBreaker("anthropic"),
		limiter: limiter,
		log:     logging.With().Str("provider", "anthropic").Logger(),
	}
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Generate implements Provider.
func (p *AnthropicProvider) Generate(ctx context.Context, req *Request) (*models.Proposal, error) {
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

	// The messages API has no JSON response mode; the reply may carry
	// prose around the object.
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

func (p *AnthropicProvider) complete(ctx context.Context, userPrompt string) (*chatCompletion, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:       p.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: userPrompt}},
		MaxTokens:   generationMaxTokens,
		Temperature: generationTemperature,
		System:      systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("x-api-key", p.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
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

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return nil, fmt.Errorf("empty response")
	}

	p.log.Debug().
		Int("input_tokens", parsed.Usage.InputTokens).
		Int("output_tokens", parsed.Usage.OutputTokens).
		Msg("token usage")

	return &chatCompletion{text: parsed.Content[0].Text}, nil
}
