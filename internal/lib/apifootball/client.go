// Package apifootball is the client of the API-Football v3 service.
//
// Every call goes through the shared admission limiter and the retrying
// executor, then has its response envelope unwrapped. It is the only code
// that talks to API-Football and it never touches the database.
package apifootball

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/config"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/admission"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/retry"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	headerKey  = "x-apisports-key"
	headerHost = "x-rapidapi-host"

	// maxErrorBody bounds how much of a failed response ends up in errors.
	maxErrorBody = 512

	rateLimitEvent = "ApiFootballRateLimited"
)

// Client is safe for concurrent use. Create one per process and share it,
// so that all callers draw from the same quota.
type Client struct {
	baseURL string
	key     string
	host    string

	http    *http.Client
	limiter *admission.Limiter
	policy  retry.Policy
	nrApp   *newrelic.Application
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter replaces the limiter built from config.
func WithLimiter(l *admission.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithRetryPolicy replaces the policy built from config.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithNewRelic records rate limit rejections as custom events.
func WithNewRelic(app *newrelic.Application) Option {
	return func(c *Client) { c.nrApp = app }
}

// New builds a client from cfg.
func New(cfg config.APIFootballConfig, logger *zerolog.Logger, opts ...Option) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = cfg.Timeout
	hc.Transport = newrelic.NewRoundTripper(hc.Transport)

	c := &Client{
		baseURL: cfg.BaseURL,
		key:     cfg.Key,
		host:    cfg.Host,
		http:    hc,
		limiter: admission.New(cfg.RateLimit, cfg.RateWindow, admission.WithLogger(*logger)),
		logger:  logger,
	}
	c.policy = retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		Base:        cfg.BackoffBase,
		Max:         cfg.BackoffMax,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.policy.OnRetry == nil {
		c.policy.OnRetry = func(attempt int, delay time.Duration, err error) {
			c.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("api-football request failed, retrying")
		}
	}
	return c
}

// Quota reports the state of the admission window.
func (c *Client) Quota(ctx context.Context) (admission.Stats, error) {
	return c.limiter.Stats(ctx)
}

// Paging is the envelope's page information.
type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Envelope is the wrapper API-Football puts around every response.
type Envelope struct {
	Get        string          `json:"get"`
	Parameters json.RawMessage `json:"parameters"`
	Errors     json.RawMessage `json:"errors"`
	Results    int             `json:"results"`
	Paging     Paging          `json:"paging"`
	Response   json.RawMessage `json:"response"`
}

// Items returns the response array. An object response becomes a single
// item and a missing one an empty list.
func (e *Envelope) Items() ([]json.RawMessage, error) {
	body := bytes.TrimSpace(e.Response)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []json.RawMessage{}, nil
	}
	if body[0] == '{' {
		return []json.RawMessage{e.Response}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: response is not a list: %v", errs.ErrUpstreamAPI, err)
	}
	return items, nil
}

// envelopeErrors reads the errors field, which API-Football sends as an
// empty list when there are none and as an object otherwise.
func envelopeErrors(raw json.RawMessage) (map[string]string, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return nil, nil
	}

	switch body[0] {
	case '{':
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			return nil, nil
		}
		out := make(map[string]string, len(fields))
		for k, v := range fields {
			out[k] = fmt.Sprint(v)
		}
		return out, nil
	case '[':
		var list []any
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, nil
		}
		out := make(map[string]string, len(list))
		for i, v := range list {
			out[strconv.Itoa(i)] = fmt.Sprint(v)
		}
		return out, nil
	case 'n':
		return nil, nil
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return map[string]string{"error": s}, nil
	}
	return map[string]string{"error": string(body)}, nil
}

// fetch runs one endpoint call: admission, then retried requests.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	if err := c.limiter.Admit(ctx); err != nil {
		return nil, err
	}

	env, err := retry.Do(ctx, c.policy, Classify, func(ctx context.Context) (*Envelope, error) {
		return c.doRequest(ctx, path, params)
	})
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamRateLimited) {
			c.recordRateLimit(path, err)
		}
		c.logger.Error().Err(err).Str("path", path).Msg("api-football request failed")
		return nil, err
	}

	c.logger.Info().
		Str("path", path).
		Int("results", env.Results).
		Int("page", env.Paging.Current).
		Int("pages", env.Paging.Total).
		Msg("api-football response")

	return env, nil
}

// list fetches an endpoint whose response is an array.
func (c *Client) list(ctx context.Context, path string, params url.Values) ([]json.RawMessage, error) {
	env, err := c.fetch(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return env.Items()
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building api-football request")
	}
	req.Header.Set(headerKey, c.key)
	req.Header.Set(headerHost, c.host)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("path", path).Str("query", params.Encode()).Msg("api-football request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			Status:     resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: truncate(body)}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", errs.ErrUpstreamAPI, err)
	}

	apiErrors, err := envelopeErrors(env.Errors)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding errors field: %v", errs.ErrUpstreamAPI, err)
	}
	if len(apiErrors) > 0 {
		for _, key := range []string{"requests", "rateLimit"} {
			if msg, ok := apiErrors[key]; ok {
				return nil, &RateLimitError{Status: resp.StatusCode, Message: msg}
			}
		}
		return nil, &APIError{Errors: apiErrors}
	}

	return &env, nil
}

func (c *Client) recordRateLimit(path string, err error) {
	if c.nrApp == nil {
		return
	}
	c.nrApp.RecordCustomEvent(rateLimitEvent, map[string]any{
		"path":  path,
		"error": err.Error(),
	})
}

func parseRetryAfter(v string) time.Duration {
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
