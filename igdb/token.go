package igdb

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/briangreenhill/questhub/internal/metrics"
)

// accessToken is valid while now is before expiresAt
type accessToken struct {
	value     string
	expiresAt time.Time
}

// accessTokenFor returns the held token, exchanging credentials for a new one
// when it is missing or inside the expiry margin. Concurrent refreshes share
// one exchange.
func (c *Client) accessTokenFor(ctx context.Context) (string, error) {
	if !c.IsConfigured() {
		return "", &Error{Kind: ErrConfiguration}
	}
	if tok, ok := c.validToken(); ok {
		return tok, nil
	}

	ch := c.tokenGroup.DoChan("token", func() (any, error) {
		// Another caller may have refreshed while we waited
		if tok, ok := c.validToken(); ok {
			return tok, nil
		}
		return c.refreshToken(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", transportError("", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) validToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != nil && c.now().Before(c.token.expiresAt) {
		return c.token.value, true
	}
	return "", false
}

// refreshToken performs the client-credentials exchange. It never retries.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := c.oauth.Token(ctx)
	received := time.Now()
	metrics.RecordTokenRefresh(err)
	if err != nil {
		c.log.Warn().Err(err).Msg("token exchange failed")
		return "", &Error{Kind: ErrAuthentication, Msg: "token exchange failed", Err: err}
	}

	now := c.now()
	expiresAt := now.Add(tokenLifetime(tok, received) - tokenExpiryMargin)

	c.mu.Lock()
	c.token = &accessToken{value: tok.AccessToken, expiresAt: expiresAt}
	c.mu.Unlock()

	c.log.Debug().Time("expires_at", expiresAt).Msg("access token refreshed")
	return tok.AccessToken, nil
}

// invalidateToken clears the held token if it is still the rejected one
func (c *Client) invalidateToken(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != nil && c.token.value == rejected {
		c.token = nil
	}
}

// tokenLifetime reads the provider's expires_in, falling back to the
// Expiry oauth2 derives from it, measured from when the token was received.
func tokenLifetime(tok *oauth2.Token, received time.Time) time.Duration {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return time.Duration(n) * time.Second
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	if !tok.Expiry.IsZero() {
		return tok.Expiry.Sub(received)
	}
	return 0
}
