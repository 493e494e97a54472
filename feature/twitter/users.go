package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"follower-tracker/core/utils"
	"follower-tracker/feature/followers"
)

type user struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (u user) profile() (followers.Profile, error) {
	id, err := utils.ParseID(u.ID)
	if err != nil {
		return followers.Profile{}, err
	}
	return followers.Profile{PlatformID: id, Handle: u.Username, Name: u.Name}, nil
}

// apiError is a problem reported inside a 200 response.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
	Value  string `json:"value"`
}

func (e apiError) Error() string {
	if e.Detail != "" {
		return e.Title + ": " + e.Detail
	}
	return e.Title
}

func joinErrors(errs []apiError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("twitter api: %s", strings.Join(msgs, "; "))
}

type userResponse struct {
	Data   *user      `json:"data"`
	Errors []apiError `json:"errors"`
}

type usersResponse struct {
	Data   []user     `json:"data"`
	Errors []apiError `json:"errors"`
}

// lookupUser resolves a handle to its profile.
func (c *Client) lookupUser(ctx context.Context, sess *http.Client, handle string) (followers.Profile, error) {
	var resp userResponse
	path := "/2/users/by/username/" + url.PathEscape(strings.TrimPrefix(handle, "@"))
	if err := c.getJSON(ctx, sess, path, url.Values{}, &resp); err != nil {
		return followers.Profile{}, fmt.Errorf("failed to look up %s: %w", handle, err)
	}
	if resp.Data == nil {
		if len(resp.Errors) > 0 {
			return followers.Profile{}, fmt.Errorf("failed to look up %s: %w", handle, joinErrors(resp.Errors))
		}
		return followers.Profile{}, fmt.Errorf("failed to look up %s: empty response", handle)
	}
	return resp.Data.profile()
}

// LookupProfiles resolves ids in batches. Ids the platform no longer knows,
// such as suspended or deleted accounts, are omitted.
func (c *Client) LookupProfiles(ctx context.Context, cred followers.Credential, ids []int64) ([]followers.Profile, error) {
	sess := c.session(ctx, cred)
	var out []followers.Profile
	for _, chunk := range utils.Chunk(ids, lookupMaxIDs) {
		var resp usersResponse
		if err := c.getJSON(ctx, sess, "/2/users", url.Values{"ids": {utils.JoinIDs(chunk)}}, &resp); err != nil {
			return out, fmt.Errorf("failed to look up %d users: %w", len(chunk), err)
		}
		for _, u := range resp.Data {
			p, err := u.profile()
			if err != nil {
				return out, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}
