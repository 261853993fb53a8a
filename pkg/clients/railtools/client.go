package railtools

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Client exposes the railtools HTTP API operations used by the CLI.
type Client interface {
	Themes(ctx context.Context) ([]models.Theme, error)
	Calculate(ctx context.Context, theme string, req CalculateRequest) (*CalculateResponse, error)
	History(ctx context.Context) ([]models.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a client for the server at baseURL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// CalculateRequest is the body of a calculation call.
type CalculateRequest struct {
	Mode   string            `json:"mode,omitempty"`
	Inputs map[string]string `json:"inputs"`
	Save   bool              `json:"save"`
	Images []string          `json:"images,omitempty"`
}

// CalculateResponse mirrors the server reply.
type CalculateResponse struct {
	Result models.Result        `json:"result"`
	Entry  *models.HistoryEntry `json:"entry,omitempty"`
}

// APIError is a non-2xx reply. Field is set for rejected inputs.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Field      string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("railtools api error: code=%d, field=%s, message=%s", e.StatusCode, e.Field, e.Message)
	}
	return fmt.Sprintf("railtools api error: code=%d, message=%s", e.StatusCode, e.Message)
}

func (c *APIClient) check(resp *resty.Response, apiErr *APIError) error {
	if resp.StatusCode() >= http.StatusBadRequest {
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return apiErr
	}
	return nil
}

// Themes lists the calculation themes.
func (c *APIClient) Themes(ctx context.Context) ([]models.Theme, error) {
	var themes []models.Theme
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&themes).
		SetError(apiErr).
		Get("/themes")
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	if err := c.check(resp, apiErr); err != nil {
		return nil, err
	}
	return themes, nil
}

// Calculate runs one calculation on the server.
func (c *APIClient) Calculate(ctx context.Context, theme string, req CalculateRequest) (*CalculateResponse, error) {
	result := new(CalculateResponse)
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("theme", theme).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post("/calculations/{theme}")
	if err != nil {
		return nil, fmt.Errorf("calculate %s: %w", theme, err)
	}
	if err := c.check(resp, apiErr); err != nil {
		return nil, err
	}
	return result, nil
}

// History returns the saved calculations, newest first.
func (c *APIClient) History(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&entries).
		SetError(apiErr).
		Get("/history")
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if err := c.check(resp, apiErr); err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearHistory removes every saved calculation.
func (c *APIClient) ClearHistory(ctx context.Context) error {
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr).
		Delete("/history")
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return c.check(resp, apiErr)
}
