// Package notion implements the remote source port against the Notion
// HTTP API.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/inkpress/inkpress/internal/core/domain"
	"github.com/inkpress/inkpress/internal/core/ports/driven"
	"github.com/inkpress/inkpress/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RemoteSource = (*Client)(nil)

const (
	defaultBaseURL = "https://api.notion.com"

	// apiVersion pins the wire format; payload shapes differ across
	// versions.
	apiVersion = "2022-06-28"

	// pageSize is the per-request result cap; larger sets paginate via
	// cursors.
	pageSize = 100

	// requestsPerSecond is the API's average rate limit for
	// integrations; requests are throttled proactively to stay under it.
	requestsPerSecond = 3
)

// Config holds the connection settings for one Notion integration.
type Config struct {
	// Token is the integration token.
	Token string

	// DatabaseID selects the database queried for publishable items.
	DatabaseID string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string

	// Timeout bounds each request. Zero selects 30s.
	Timeout time.Duration
}

// Client is a pull-only Notion API client.
type Client struct {
	http       *resty.Client
	databaseID string
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a Notion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: notion integration token", domain.ErrMissingCredential)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.Token).
		SetHeader("Notion-Version", apiVersion).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:       httpClient,
		databaseID: cfg.DatabaseID,
		limiter:    rate.NewLimiter(requestsPerSecond, requestsPerSecond),
		log:        logger.New("notion"),
	}, nil
}

// request builds a throttled request; pagination loops in particular
// must not outrun the API's rate limit.
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.http.R().SetContext(ctx), nil
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type userResponse struct {
	Name string `json:"name"`
	Bot  *struct {
		WorkspaceName string `json:"workspace_name"`
	} `json:"bot"`
}

type page struct {
	ID             string                  `json:"id"`
	LastEditedTime string                  `json:"last_edited_time"`
	Properties     map[string]pageProperty `json:"properties"`
}

type pageProperty struct {
	Title []domain.RemoteSpan `json:"title"`
}

type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type blocksResponse struct {
	Results    []domain.RemoteBlock `json:"results"`
	HasMore    bool                 `json:"has_more"`
	NextCursor string               `json:"next_cursor"`
}

type searchResponse struct {
	Results []struct {
		ID    string              `json:"id"`
		Title []domain.RemoteSpan `json:"title"`
	} `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Probe checks connectivity and credentials, returning the
// integration's user name on success.
func (c *Client) Probe(ctx context.Context) (string, error) {
	var user userResponse
	var apiErr errorBody

	req, err := c.request(ctx)
	if err != nil {
		return "", c.transportError(err)
	}
	resp, err := req.
		SetResult(&user).
		SetError(&apiErr).
		Get("/v1/users/me")
	if err != nil {
		return "", c.transportError(err)
	}
	if err := mapAPIError(resp, &apiErr); err != nil {
		return "", err
	}

	name := user.Name
	if name == "" {
		name = "unnamed integration"
	}
	return name, nil
}

// QueryItems lists items whose Status select is Published, most
// recently edited first. Results paginate until exhausted.
func (c *Client) QueryItems(ctx context.Context) ([]domain.RemoteItem, error) {
	if c.databaseID == "" {
		return nil, fmt.Errorf("%w: notion database ID", domain.ErrInvalidInput)
	}

	body := map[string]any{
		"filter": map[string]any{
			"property": "Status",
			"select":   map[string]any{"equals": "Published"},
		},
		"sorts": []map[string]any{
			{"timestamp": "last_edited_time", "direction": "descending"},
		},
		"page_size": pageSize,
	}

	var items []domain.RemoteItem
	for {
		var result queryResponse
		var apiErr errorBody

		req, err := c.request(ctx)
		if err != nil {
			return nil, c.transportError(err)
		}
		resp, err := req.
			SetBody(body).
			SetResult(&result).
			SetError(&apiErr).
			Post("/v1/databases/" + url.PathEscape(c.databaseID) + "/query")
		if err != nil {
			return nil, c.transportError(err)
		}
		if err := mapAPIError(resp, &apiErr); err != nil {
			return nil, err
		}

		for _, p := range result.Results {
			items = append(items, domain.RemoteItem{
				RemoteID:     p.ID,
				LastEditedAt: p.LastEditedTime,
				Title:        pageTitle(p),
			})
		}
		if !result.HasMore {
			break
		}
		body["start_cursor"] = result.NextCursor
	}

	c.log.Debug().Int("items", len(items)).Msg("queried published items")
	return items, nil
}

// ItemBlocks fetches the full block content of one item, paginating
// until exhausted.
func (c *Client) ItemBlocks(ctx context.Context, remoteID string) ([]domain.RemoteBlock, error) {
	var blocks []domain.RemoteBlock
	cursor := ""

	for {
		var result blocksResponse
		var apiErr errorBody

		req, err := c.request(ctx)
		if err != nil {
			return nil, c.transportError(err)
		}
		req.
			SetQueryParam("page_size", fmt.Sprint(pageSize)).
			SetResult(&result).
			SetError(&apiErr)
		if cursor != "" {
			req.SetQueryParam("start_cursor", cursor)
		}

		resp, err := req.Get("/v1/blocks/" + url.PathEscape(remoteID) + "/children")
		if err != nil {
			return nil, c.transportError(err)
		}
		if err := mapAPIError(resp, &apiErr); err != nil {
			return nil, err
		}

		blocks = append(blocks, result.Results...)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}
	return blocks, nil
}

// ListDatabases searches for databases shared with the integration,
// paginating until exhausted.
func (c *Client) ListDatabases(ctx context.Context) ([]domain.RemoteDatabase, error) {
	body := map[string]any{
		"filter": map[string]any{
			"property": "object",
			"value":    "database",
		},
		"page_size": pageSize,
	}

	var databases []domain.RemoteDatabase
	for {
		var result searchResponse
		var apiErr errorBody

		req, err := c.request(ctx)
		if err != nil {
			return nil, c.transportError(err)
		}
		resp, err := req.
			SetBody(body).
			SetResult(&result).
			SetError(&apiErr).
			Post("/v1/search")
		if err != nil {
			return nil, c.transportError(err)
		}
		if err := mapAPIError(resp, &apiErr); err != nil {
			return nil, err
		}

		for _, r := range result.Results {
			title := spanText(r.Title)
			if title == "" {
				title = "Untitled"
			}
			databases = append(databases, domain.RemoteDatabase{ID: r.ID, Title: title})
		}
		if !result.HasMore {
			break
		}
		body["start_cursor"] = result.NextCursor
	}
	return databases, nil
}

// pageTitle extracts the item title from the Name property, falling
// back to Title, then to a placeholder.
func pageTitle(p page) string {
	for _, key := range []string{"Name", "Title"} {
		if prop, ok := p.Properties[key]; ok {
			if title := spanText(prop.Title); title != "" {
				return title
			}
		}
	}
	return "Untitled Post"
}

func spanText(spans []domain.RemoteSpan) string {
	for _, s := range spans {
		if s.PlainText != "" {
			return s.PlainText
		}
		if s.Text.Content != "" {
			return s.Text.Content
		}
	}
	return ""
}

// mapAPIError converts a non-2xx response into the domain error
// taxonomy, with actionable messages for the common credential
// failures.
func mapAPIError(resp *resty.Response, apiErr *errorBody) error {
	if !resp.IsError() {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return &domain.APIError{
			StatusCode: resp.StatusCode(),
			Message:    "invalid integration token",
		}
	case http.StatusForbidden:
		return &domain.APIError{
			StatusCode: resp.StatusCode(),
			Message:    "integration lacks access; share the database with it",
		}
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{}
	}

	message := apiErr.Message
	if message == "" {
		message = resp.Status()
	}
	return &domain.APIError{StatusCode: resp.StatusCode(), Message: message}
}

func (c *Client) transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Timeout: c.http.GetClient().Timeout}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &domain.TimeoutError{Timeout: c.http.GetClient().Timeout}
	}
	return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
}
