// Package identity implements the HTTP client for the external identity
// provider that exchanges one-time session ids for member profiles.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/circuitbreaker"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
	"github.com/studio-hub/studio-hub-elite/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the identity provider client.
type ClientConfig struct {
	// BaseURL is the identity provider base URL.
	BaseURL string

	// SessionDataPath is the endpoint that resolves a session id.
	SessionDataPath string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:         baseURL,
		SessionDataPath: "/auth/v1/env/oauth/session-data",
		Timeout:         30 * time.Second,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// sessionDataDTO is the provider's wire format.
type sessionDataDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// Client calls the identity provider. Requests are retried on transient
// failures and guarded by a circuit breaker so provider outages fail fast.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	log        *logger.Logger
}

var _ member.IdentityProvider = (*Client)(nil)

// NewClient creates a new identity provider client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = logger.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	log := config.Logger.With(logger.Component("identity-client"))
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		retrier:    retry.IdentityRetrier(),
		breaker: circuitbreaker.IdentityBreaker(func(name string, from, to circuitbreaker.State) {
			log.Warn("identity breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		}),
		log: log,
	}
}

// ExchangeSession resolves a one-time session id into a member profile.
// A rejected session id maps to ErrIdentityRejected; transport errors and
// provider failures map to ErrIdentityUnavailable.
func (c *Client) ExchangeSession(ctx context.Context, sessionID string) (*member.IdentityProfile, error) {
	if sessionID == "" {
		return nil, shared.NewDomainError("member", "ExchangeSession", shared.ErrEmptyValue,
			"session id cannot be empty")
	}

	var profile *member.IdentityProfile
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Do(ctx, func(ctx context.Context) error {
			p, err := c.fetchSessionData(ctx, sessionID)
			if err != nil {
				return err
			}
			profile = p
			return nil
		})
	})
	if err != nil {
		if circuitbreaker.IsCircuitError(err) {
			return nil, shared.ErrIdentityUnavailable
		}
		return nil, err
	}
	return profile, nil
}

func (c *Client) fetchSessionData(ctx context.Context, sessionID string) (*member.IdentityProfile, error) {
	url := c.config.BaseURL + c.config.SessionDataPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("X-Session-ID", sessionID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("identity request failed", logger.Err(err))
		return nil, retry.Retryable(shared.ErrIdentityUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, retry.Retryable(shared.ErrIdentityUnavailable)
	}

	c.log.Debug("identity session exchange",
		logger.Int("status", resp.StatusCode),
		logger.Latency(time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 500:
		return nil, retry.Retryable(shared.ErrIdentityUnavailable)
	default:
		// 4xx means the session id is invalid or expired.
		return nil, retry.Permanent(shared.ErrIdentityRejected)
	}

	var dto sessionDataDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, retry.Permanent(fmt.Errorf("parse session data: %w", err))
	}
	if dto.Email == "" {
		return nil, retry.Permanent(shared.ErrIdentityRejected)
	}

	return &member.IdentityProfile{
		Email:        dto.Email,
		Name:         dto.Name,
		Picture:      dto.Picture,
		SessionToken: dto.SessionToken,
	}, nil
}
