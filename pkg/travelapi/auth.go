package travelapi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"tripdesk/pkg/logger"
)

// ErrAuthUnavailable wraps credential-exchange failures so call sites can
// answer with a service-unavailable response instead of leaking upstream 401s.
var ErrAuthUnavailable = errors.New("travelapi: credential exchange failed")

// TokenProvider holds the shared bearer token for the travel-data API and
// lazily (re)acquires it via the client-credentials grant. Concurrent
// refreshes collapse into a single in-flight exchange.
type TokenProvider struct {
	conf   *clientcredentials.Config
	logger logger.Client

	mu    sync.Mutex
	token *oauth2.Token

	group singleflight.Group
}

func NewTokenProvider(baseURL, clientID, clientSecret string, log logger.Client) *TokenProvider {
	return &TokenProvider{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     baseURL + "/v1/security/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		logger: log,
	}
}

// Token returns a valid bearer token, performing the credential exchange
// when none is held.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	tok := p.token
	p.mu.Unlock()

	if tok.Valid() {
		return tok.AccessToken, nil
	}

	v, err, _ := p.group.Do("token", func() (any, error) {
		fresh, err := p.conf.Token(ctx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.token = fresh
		p.mu.Unlock()

		return fresh.AccessToken, nil
	})
	if err != nil {
		p.logger.Error("credential exchange failed", logger.Field{Key: "err", Value: err})
		return "", fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}

	return v.(string), nil
}

// Invalidate drops the held token so the next call re-exchanges. Used after
// an upstream 401 since token expiry is not tracked explicitly.
func (p *TokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = nil
	p.mu.Unlock()
}
