package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clearday/clearday/internal/server"
	"github.com/clearday/clearday/internal/streak"
	"github.com/clearday/clearday/pkg/sobriety"
	"github.com/clearday/clearday/pkg/versioninfo"
)

// Client talks to a running clearday server. It satisfies
// streak.DataSource so the watch command can drive a Controller straight
// off the API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return res.StatusCode, fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return res.StatusCode, err
		}
	}
	return res.StatusCode, nil
}

func (c *Client) PutProfile(ctx context.Context, userID string, req server.ProfileRequest) (*sobriety.Profile, error) {
	var out sobriety.Profile
	if _, err := c.do(ctx, http.MethodPut, "/users/"+userID+"/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns nil without error when the user has no profile yet,
// matching the storage contract the streak controller expects.
func (c *Client) Profile(ctx context.Context, userID string) (*sobriety.Profile, error) {
	var out sobriety.Profile
	code, err := c.do(ctx, http.MethodGet, "/users/"+userID+"/profile", nil, &out)
	if code == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LogReset(ctx context.Context, userID string, req server.ResetRequest) (*sobriety.ResetEvent, error) {
	var out sobriety.ResetEvent
	if _, err := c.do(ctx, http.MethodPost, "/users/"+userID+"/resets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListResets(ctx context.Context, userID string) ([]sobriety.ResetEvent, error) {
	var out server.ResetListResponse
	if _, err := c.do(ctx, http.MethodGet, "/users/"+userID+"/resets", nil, &out); err != nil {
		return nil, err
	}
	return out.Resets, nil
}

// LatestResetEvent returns nil without error when no reset was ever logged.
func (c *Client) LatestResetEvent(ctx context.Context, userID string) (*sobriety.ResetEvent, error) {
	events, err := c.ListResets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return streak.MostRecentReset(events), nil
}

func (c *Client) Streak(ctx context.Context, userID string) (*server.StreakResponse, error) {
	var out server.StreakResponse
	if _, err := c.do(ctx, http.MethodGet, "/users/"+userID+"/streak", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Version(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	if _, err := c.do(ctx, http.MethodGet, "/version", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ streak.DataSource = (*Client)(nil)
