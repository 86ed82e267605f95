package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/board"
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// HTTPClient talks to a quadro server. It implements board.Remote.
//
// Every failure is a *board.RemoteError: answers with a non-2xx status are
// RemoteRejected and carry the server's message, anything that prevented an
// answer (dial errors, timeouts, undecodable bodies) is a NetworkFailure.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ board.Remote = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the server at baseURL
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchAllProjects returns every project the server knows
func (c *HTTPClient) FetchAllProjects(ctx context.Context) ([]models.Project, error) {
	var body []api.ProjectResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", &body); err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(body))
	for _, r := range body {
		p, err := r.Model()
		if err != nil {
			return nil, board.Unreachable(fmt.Errorf("invalid project in response: %w", err))
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

// ChangeStatus asks the server to move a project and returns its authoritative record
func (c *HTTPClient) ChangeStatus(ctx context.Context, id types.ProjectID, target models.Status) (*models.Project, error) {
	path := fmt.Sprintf("/api/projects/%d/status/%s", id, url.PathEscape(string(target)))

	var body api.ProjectResponse
	if err := c.do(ctx, http.MethodPatch, path, &body); err != nil {
		return nil, err
	}
	p, err := body.Model()
	if err != nil {
		return nil, board.Unreachable(fmt.Errorf("invalid project in response: %w", err))
	}
	return p, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return board.Unreachable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return board.Unreachable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return board.Unreachable(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// rejection reads the server's ErrorResponse. A body that is not one still
// yields a rejection, just without a message.
func rejection(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body api.ErrorResponse
	if json.Unmarshal(data, &body) != nil {
		body.Message = ""
	}
	return board.Rejected(resp.StatusCode, body.Message)
}
