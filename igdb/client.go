// Package igdb is a client for the IGDB v4 game metadata API. It authenticates
// with Twitch client credentials, refreshes its token before expiry and memoizes
// query responses in a short-lived in-process cache.
package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/briangreenhill/questhub/cache"
	"github.com/briangreenhill/questhub/internal/metrics"
)

const (
	DefaultBaseURL  = "https://api.igdb.com/v4"
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"
	DefaultCacheTTL = 5 * time.Minute

	tokenTimeout      = 10 * time.Second
	requestTimeout    = 15 * time.Second
	tokenExpiryMargin = 60 * time.Second
)

// Client is an IGDB API client. Each instance owns its token and response
// cache; instances never share state.
type Client struct {
	clientID     string
	clientSecret string
	http         *http.Client
	baseURL      string
	tokenURL     string
	oauth        *clientcredentials.Config

	cache cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time

	mu    sync.Mutex
	token *accessToken

	tokenGroup   singleflight.Group
	requestGroup singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for token and data requests
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithBaseURL overrides the IGDB API base URL
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.baseURL = strings.TrimRight(raw, "/")
		}
	}
}

// WithTokenURL overrides the Twitch OAuth2 token endpoint
func WithTokenURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.tokenURL = raw
		}
	}
}

// WithCache replaces the default in-memory cache
func WithCache(rc cache.Cache) Option {
	return func(c *Client) { c.cache = rc }
}

// WithCacheTTL sets how long responses stay fresh; non-positive keeps the default
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for cache, token and request events
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithClock overrides the time source for token expiry and cache ageing
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a client. Empty credentials are allowed: the client is then
// unconfigured and every API call fails with ErrConfiguration.
func New(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         &http.Client{},
		baseURL:      DefaultBaseURL,
		tokenURL:     DefaultTokenURL,
		ttl:          DefaultCacheTTL,
		log:          zerolog.Nop(),
		now:          time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.cache == nil {
		c.cache = cache.NewMemoryCache(cache.WithClock(c.now))
	}
	c.oauth = &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	c.log = c.log.With().Str("component", "igdb").Str("instance", uuid.NewString()).Logger()
	return c
}

// IsConfigured reports whether both client id and secret are set
func (c *Client) IsConfigured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// MakeCustomRequest sends an arbitrary query to an endpoint, with the same
// caching and error semantics as the typed methods
func (c *Client) MakeCustomRequest(ctx context.Context, endpoint, query string) (json.RawMessage, error) {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if !endpointPattern.MatchString(endpoint) {
		return nil, validationError("endpoint %q is not a valid IGDB endpoint name", endpoint)
	}
	return c.request(ctx, endpoint, query)
}

// ClearCache drops every cached response
func (c *Client) ClearCache() {
	c.cache.Clear()
	c.log.Debug().Msg("response cache cleared")
}

// CacheStats returns the number of cached responses and their keys
func (c *Client) CacheStats() CacheStats {
	keys := c.cache.Keys()
	return CacheStats{Size: len(keys), Keys: keys}
}

var endpointPattern = regexp.MustCompile(`^[a-z0-9_]+(/[a-z0-9_]+)*$`)

// request returns the JSON array for a query, from cache when fresh.
// Identical concurrent misses share one outbound request.
func (c *Client) request(ctx context.Context, endpoint, query string) (json.RawMessage, error) {
	if !c.IsConfigured() {
		return nil, &Error{Kind: ErrConfiguration}
	}

	key := c.cache.KeyFor(endpoint, query)
	if entry, ok := c.cache.Read(key, c.ttl); ok && len(entry.Body) > 0 {
		metrics.RecordCacheLookup(endpoint, true)
		c.log.Debug().Str("endpoint", endpoint).Msg("cache hit")
		return entry.Body, nil
	}
	metrics.RecordCacheLookup(endpoint, false)

	if err := ctx.Err(); err != nil {
		return nil, transportError(endpoint, err)
	}

	// The shared fetch outlives any single caller; each caller still
	// stops waiting at its own deadline.
	ch := c.requestGroup.DoChan(key, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), endpoint, query, key)
	})

	select {
	case <-ctx.Done():
		return nil, transportError(endpoint, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		body := res.Val.(json.RawMessage)
		if res.Shared {
			body = append(json.RawMessage(nil), body...)
		}
		return body, nil
	}
}

func (c *Client) fetch(ctx context.Context, endpoint, query, key string) (json.RawMessage, error) {
	token, err := c.accessTokenFor(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(query))
	if err != nil {
		return nil, &Error{Kind: ErrUpstream, Endpoint: endpoint, Msg: "build request", Err: err}
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstream(endpoint, 0, start)
		return nil, transportError(endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	metrics.RecordUpstream(endpoint, resp.StatusCode, start)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn().Str("endpoint", endpoint).Msg("rate limited by IGDB")
		return nil, &Error{Kind: ErrRateLimited, Endpoint: endpoint, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusUnauthorized:
		c.invalidateToken(token)
		c.log.Warn().Str("endpoint", endpoint).Msg("access token rejected, cleared")
		return nil, &Error{Kind: ErrAuthentication, Endpoint: endpoint, Status: resp.StatusCode, Msg: "access token rejected"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{
			Kind:     ErrUpstream,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Msg:      fmt.Sprintf("POST %s -> %s: %s", endpoint, resp.Status, strings.TrimSpace(string(b))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if !isJSONArray(body) {
		return nil, &Error{Kind: ErrUpstream, Endpoint: endpoint, Status: resp.StatusCode, Msg: "response is not a JSON array"}
	}

	if err := c.cache.Write(key, &cache.Entry{Body: body}); err != nil {
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("cache write failed")
	}
	c.log.Debug().Str("endpoint", endpoint).Dur("took", time.Since(start)).Msg("fetched from IGDB")
	return json.RawMessage(body), nil
}

func transportError(endpoint string, err error) error {
	if isTimeout(err) {
		return &Error{Kind: ErrTimeout, Endpoint: endpoint, Err: err}
	}
	return &Error{Kind: ErrUpstream, Endpoint: endpoint, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '[' && json.Valid(trimmed)
}
