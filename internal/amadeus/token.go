// README: Client-credentials token cache for the inventory API; one token shared process-wide.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrAuthFailure means no token could be obtained. Callers treat the
// inventory service as unavailable and do not retry.
var ErrAuthFailure = errors.New("inventory auth failure")

type cachedToken struct {
	value  string
	expiry time.Time
}

// TokenCache hands out the cached bearer token while it is fresh and performs
// a client-credentials exchange otherwise. Reads never block; two goroutines
// that both see an expired token may both refresh, and the last store wins.
type TokenCache struct {
	tokenURL     string
	clientID     string
	clientSecret string

	client *http.Client
	now    func() time.Time
	log    *zap.Logger

	current atomic.Pointer[cachedToken]
}

func NewTokenCache(tokenURL, clientID, clientSecret string, client *http.Client, log *zap.Logger) *TokenCache {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenCache{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
		now:          time.Now,
		log:          log,
	}
}

// Token returns a bearer token valid at the time of the call.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if t := c.current.Load(); t != nil && c.now().Before(t.expiry) {
		return t.value, nil
	}
	t, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("inventory token refresh failed", zap.Error(err))
		return "", err
	}
	c.current.Store(t)
	return t.value, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *TokenCache) fetch(ctx context.Context) (*cachedToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// the expiry clock starts before the round trip
	issued := c.now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: token request failed (%d): %s", ErrAuthFailure, resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("%w: parse token response: %v", ErrAuthFailure, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access_token", ErrAuthFailure)
	}
	return &cachedToken{
		value:  tr.AccessToken,
		expiry: issued.Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
