package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"follower-tracker/feature/followers"

	"github.com/juju/clock"
	"github.com/juju/retry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	minPageSize   = 5
	maxPageSize   = 1000
	lookupMaxIDs  = 100
	maxErrorBody  = 4 << 10
	userAgentName = "follower-tracker"
)

// Options carries the collaborators of a Client. Zero values pick defaults.
type Options struct {
	// HTTPClient performs API and token requests.
	HTTPClient *http.Client
	// Clock drives retry backoff.
	Clock clock.Clock
	// OnTokenRefresh receives refreshed grants so they can be persisted.
	OnTokenRefresh func(ctx context.Context, cred followers.Credential) error
	// In and Out are used by Authorize for the consent prompt.
	In  io.Reader
	Out io.Writer
	// Logger receives request and retry diagnostics.
	Logger *zap.Logger
}

// Client talks to the Twitter API v2 on behalf of the tracker.
type Client struct {
	cfg        Config
	baseURL    *url.URL
	oauth      *oauth2.Config
	http       *http.Client
	limiter    *rate.Limiter
	clock      clock.Clock
	attempts   int
	retryDelay time.Duration
	onRefresh  func(ctx context.Context, cred followers.Credential) error
	in         io.Reader
	out        io.Writer
	logger     *zap.Logger
}

// New creates a client from configuration.
func New(cfg Config, opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid twitter base url %q", cfg.BaseURL)
	}

	if opts.HTTPClient == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		opts.HTTPClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if delay <= 0 {
		delay = time.Second
	}

	return &Client{
		cfg:        cfg,
		baseURL:    base,
		oauth:      oauthConfig(cfg),
		http:       opts.HTTPClient,
		limiter:    newLimiter(cfg.RequestsPerWindow, cfg.WindowSeconds),
		clock:      opts.Clock,
		attempts:   attempts,
		retryDelay: delay,
		onRefresh:  opts.OnTokenRefresh,
		in:         opts.In,
		out:        opts.Out,
		logger:     opts.Logger,
	}, nil
}

func oauthConfig(cfg Config) *oauth2.Config {
	style := oauth2.AuthStyleInHeader
	if cfg.ClientSecret == "" {
		style = oauth2.AuthStyleInParams
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.ScopeList(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: style,
		},
	}
}

func newLimiter(requests, windowSeconds int) *rate.Limiter {
	if requests <= 0 || windowSeconds <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	window := time.Duration(windowSeconds) * time.Second
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// session is an authenticated HTTP client bound to one credential.
func (c *Client) session(ctx context.Context, cred followers.Credential) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	src := &persistingSource{
		ctx:    ctx,
		base:   c.oauth.TokenSource(ctx, tokenFromCredential(cred)),
		last:   cred.Key,
		save:   c.onRefresh,
		logger: c.logger,
	}
	return oauth2.NewClient(ctx, src)
}

// getJSON performs a paced, retried GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, hc *http.Client, path string, query url.Values, out any) error {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()
	endpoint := u.String()

	err := retry.Call(retry.CallArgs{
		Func: func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			return c.fetch(ctx, hc, endpoint, out)
		},
		IsFatalError: func(err error) bool {
			return ctx.Err() != nil || !isTransient(err)
		},
		NotifyFunc: func(err error, attempt int) {
			c.logger.Debug("Twitter request failed, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err))
		},
		Attempts:    c.attempts,
		Delay:       c.retryDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       c.clock,
		Stop:        ctx.Done(),
	})
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case retry.IsAttemptsExceeded(err):
		return fmt.Errorf("GET %s failed after %d attempts: %w", path, c.attempts, retry.LastError(err))
	}
	return classify(err)
}

func (c *Client) fetch(ctx context.Context, hc *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgentName)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", req.URL.Path, err)
	}
	return nil
}

// StatusError is a non-200 API response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("twitter api returned %d", e.Code)
	}
	return fmt.Sprintf("twitter api returned %d: %s", e.Code, e.Body)
}

// isTransient reports whether a failed request may succeed when repeated.
func isTransient(err error) bool {
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code == http.StatusTooManyRequests || status.Code >= http.StatusInternalServerError
	}
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return retrieve.Response != nil && retrieve.Response.StatusCode >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// classify marks errors caused by the credential itself.
func classify(err error) error {
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", followers.ErrCredentialRejected, err)
	}
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return fmt.Errorf("%w: token refresh failed: %w", followers.ErrCredentialRejected, err)
	}
	return err
}

// persistingSource hands refreshed tokens to save.
type persistingSource struct {
	ctx    context.Context
	base   oauth2.TokenSource
	save   func(ctx context.Context, cred followers.Credential) error
	logger *zap.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last {
		return tok, nil
	}
	s.last = tok.AccessToken
	if s.save != nil {
		if err := s.save(s.ctx, credentialFromToken(tok)); err != nil {
			s.logger.Warn("Failed to persist refreshed token", zap.Error(err))
		} else {
			s.logger.Info("Persisted refreshed token")
		}
	}
	return tok, nil
}

func tokenFromCredential(cred followers.Credential) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  cred.Key,
		RefreshToken: cred.Secret,
		TokenType:    "Bearer",
	}
	if cred.Expiry != nil {
		tok.Expiry = *cred.Expiry
	}
	return tok
}

func credentialFromToken(tok *oauth2.Token) followers.Credential {
	cred := followers.Credential{Key: tok.AccessToken, Secret: tok.RefreshToken}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry.UTC()
		cred.Expiry = &expiry
	}
	return cred
}
