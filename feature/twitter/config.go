package twitter

import "strings"

// Config holds configuration for the Twitter API v2 client.
type Config struct {
	// ClientID is the OAuth 2.0 client id of the registered app.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is only set for confidential clients.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// RedirectURL must match the callback registered for the app.
	RedirectURL string `mapstructure:"redirect_url" default:"http://127.0.0.1/callback"`
	// Scopes is a space separated list of OAuth 2.0 scopes.
	Scopes string `mapstructure:"scopes" default:"tweet.read users.read follows.read offline.access"`
	// AuthURL is the consent page users are sent to.
	AuthURL string `mapstructure:"auth_url" default:"https://twitter.com/i/oauth2/authorize"`
	// TokenURL exchanges codes and refresh tokens.
	TokenURL string `mapstructure:"token_url" default:"https://api.twitter.com/2/oauth2/token"`
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.twitter.com"`
	// PageSize is the max_results sent to the followers endpoint.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// RequestsPerWindow bounds requests sent per WindowSeconds.
	RequestsPerWindow int `mapstructure:"requests_per_window" default:"15"`
	// WindowSeconds is the length of the rate limit window.
	WindowSeconds int `mapstructure:"window_seconds" default:"900"`
	// RetryAttempts is how many times a transient failure is tried.
	RetryAttempts int `mapstructure:"retry_attempts" default:"4"`
	// RetryDelaySeconds is the first backoff delay, doubled on each attempt.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"5"`
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// ScopeList splits Scopes on whitespace.
func (c Config) ScopeList() []string {
	return strings.Fields(c.Scopes)
}

// pageSize clamps PageSize to what the followers endpoint accepts.
func (c Config) pageSize() int {
	switch {
	case c.PageSize <= 0 || c.PageSize > maxPageSize:
		return maxPageSize
	case c.PageSize < minPageSize:
		return minPageSize
	default:
		return c.PageSize
	}
}
