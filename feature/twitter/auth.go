package twitter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"follower-tracker/feature/followers"

	"golang.org/x/oauth2"
)

// Authorize runs the OAuth 2.0 authorization code flow with PKCE. The consent
// URL is written to Out and the redirect URL (or bare code) the user pastes is
// read from In.
func (c *Client) Authorize(ctx context.Context) (followers.Credential, error) {
	if c.cfg.ClientID == "" {
		return followers.Credential{}, errors.New("twitter client id is not configured")
	}

	verifier := oauth2.GenerateVerifier()
	state := oauth2.GenerateVerifier()
	consent := c.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	fmt.Fprintf(c.out, "Open the following URL and approve access:\n\n  %s\n\nPaste the URL you were redirected to: ", consent)

	line, err := readLine(ctx, c.in)
	if err != nil {
		return followers.Credential{}, fmt.Errorf("failed to read authorization code: %w", err)
	}
	code, err := extractCode(strings.TrimSpace(line), state)
	if err != nil {
		return followers.Credential{}, err
	}

	tok, err := c.oauth.Exchange(context.WithValue(ctx, oauth2.HTTPClient, c.http), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return followers.Credential{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return credentialFromToken(tok), nil
}

// readLine reads one line from in, giving up when ctx is done. The reader
// goroutine stays blocked until in yields or is closed.
func readLine(ctx context.Context, in io.Reader) (string, error) {
	type read struct {
		line string
		err  error
	}
	ch := make(chan read, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		ch <- read{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// extractCode accepts either the full redirect URL or the bare code. A
// redirect URL must carry the state that was sent.
func extractCode(input, state string) (string, error) {
	if input == "" {
		return "", errors.New("no authorization code entered")
	}
	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid redirect url: %w", err)
	}
	q := u.Query()
	if reason := q.Get("error"); reason != "" {
		return "", fmt.Errorf("authorization denied: %s", reason)
	}
	if q.Get("state") != state {
		return "", errors.New("authorization state mismatch")
	}
	code := q.Get("code")
	if code == "" {
		return "", errors.New("redirect url carries no code")
	}
	return code, nil
}
