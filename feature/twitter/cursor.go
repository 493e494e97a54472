package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"follower-tracker/core/utils"
	"follower-tracker/feature/followers"
)

type followersPage struct {
	Data   []user     `json:"data"`
	Errors []apiError `json:"errors"`
	Meta   struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

// Followers resolves handle and returns a cursor over its followers. Pages are
// fetched lazily as the cursor advances.
func (c *Client) Followers(ctx context.Context, handle string, cred followers.Credential) (followers.Cursor, error) {
	sess := c.session(ctx, cred)
	owner, err := c.lookupUser(ctx, sess, handle)
	if err != nil {
		return nil, err
	}
	return &cursor{client: c, sess: sess, userID: owner.PlatformID}, nil
}

// cursor walks the paginated followers listing once.
type cursor struct {
	client *Client
	sess   *http.Client
	userID int64

	next      string
	exhausted bool
	page      []followers.Profile
	pos       int
	current   followers.Profile
	consumed  bool
	err       error
	pages     int
}

// Next advances to the next follower, fetching a page when needed. After the
// listing is exhausted Next returns false; calling it again marks the cursor
// with ErrCursorConsumed.
func (c *cursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if c.consumed {
		c.err = followers.ErrCursorConsumed
		return false
	}
	for c.pos >= len(c.page) {
		if c.exhausted {
			c.consumed = true
			return false
		}
		if err := c.fetch(ctx); err != nil {
			c.err = err
			return false
		}
	}
	c.current = c.page[c.pos]
	c.pos++
	return true
}

func (c *cursor) Profile() followers.Profile { return c.current }

func (c *cursor) Err() error { return c.err }

func (c *cursor) fetch(ctx context.Context) error {
	q := url.Values{"max_results": {strconv.Itoa(c.client.cfg.pageSize())}}
	if c.next != "" {
		q.Set("pagination_token", c.next)
	}

	var resp followersPage
	path := "/2/users/" + utils.FormatID(c.userID) + "/followers"
	if err := c.client.getJSON(ctx, c.sess, path, q, &resp); err != nil {
		return fmt.Errorf("failed to fetch followers page %d: %w", c.pages+1, err)
	}
	if len(resp.Data) == 0 && len(resp.Errors) > 0 {
		return fmt.Errorf("failed to fetch followers page %d: %w", c.pages+1, joinErrors(resp.Errors))
	}

	page := make([]followers.Profile, 0, len(resp.Data))
	for _, u := range resp.Data {
		p, err := u.profile()
		if err != nil {
			return fmt.Errorf("failed to fetch followers page %d: %w", c.pages+1, err)
		}
		page = append(page, p)
	}

	c.pages++
	c.page, c.pos = page, 0
	c.next = resp.Meta.NextToken
	c.exhausted = c.next == ""
	return nil
}
