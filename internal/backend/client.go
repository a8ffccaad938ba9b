package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"timely/internal/models"

	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when no backend is configured
var ErrUnavailable = errors.New("backend not configured")

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 10 << 20

// StatusError is returned for non-2xx responses
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client reads canonical data from the external REST service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a backend client. An empty baseURL yields a client whose every call
// fails with ErrUnavailable.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Configured reports whether a backend URL was provided
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// GetJSON issues a GET for path and decodes the JSON body into dest
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	if !c.Configured() {
		return ErrUnavailable
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Str("path", path).Msg("Error closing backend response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("Backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// truncate keeps the first n runes of s
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// ClientProfile returns the canonical profile and assigned projects of a client
func (c *Client) ClientProfile(ctx context.Context, clientID string) (models.ClientProfile, error) {
	var profile models.ClientProfile
	err := c.GetJSON(ctx, "/api/clients/"+url.PathEscape(clientID), nil, &profile)
	if err != nil {
		return models.ClientProfile{}, err
	}
	if profile.ID == "" {
		profile.ID = clientID
	}
	return profile, nil
}

// AuditLogs returns the audit log entries
func (c *Client) AuditLogs(ctx context.Context) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	if err := c.GetJSON(ctx, "/api/audit-logs", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// HoursLogs returns the hours logged against any of the given projects
func (c *Client) HoursLogs(ctx context.Context, projectIDs []string) ([]models.HoursLog, error) {
	var logs []models.HoursLog
	query := url.Values{}
	if len(projectIDs) > 0 {
		query.Set("projectIds", strings.Join(projectIDs, ","))
	}
	if err := c.GetJSON(ctx, "/api/hours-logs", query, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ProjectComments returns the comments posted on a project
func (c *Client) ProjectComments(ctx context.Context, projectID string) ([]models.ProjectComment, error) {
	var comments []models.ProjectComment
	if err := c.GetJSON(ctx, "/api/projects/"+url.PathEscape(projectID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ProjectAttachments returns the files attached to a project
func (c *Client) ProjectAttachments(ctx context.Context, projectID string) ([]models.ProjectAttachment, error) {
	var attachments []models.ProjectAttachment
	if err := c.GetJSON(ctx, "/api/projects/"+url.PathEscape(projectID)+"/attachments", nil, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}
