// Package client implements the TROCCO REST API client: a thin authenticated
// HTTP wrapper plus a cursor-pagination aggregator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gtnao/troccomcp/internal/trocco/common"
	"github.com/gtnao/troccomcp/internal/trocco/models"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// APIError is a non-2xx response from the TROCCO API. Only the numeric
// status is carried; the response body is not inspected for detail.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trocco api returned %d for %s %s", e.StatusCode, e.Method, e.Path)
}

// DecodeError is a 2xx response whose body does not match the expected
// shape for the endpoint.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client communicates with the TROCCO REST API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a client from TROCCO API settings. The API key is fixed at
// construction; an empty key is allowed and surfaces as an authorization
// failure on the first request.
func New(cfg common.TroccoConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: common.UserAgent(),
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger,
	}
}

// ListConnections fetches every connection of the given type, following the
// cursor until the API signals exhaustion.
func (c *Client) ListConnections(ctx context.Context, connectionType models.ConnectionType) ([]models.Connection, error) {
	if !connectionType.Valid() {
		return nil, &models.ValidationError{
			Field:   "connectionType",
			Message: fmt.Sprintf("%q is not one of %v", connectionType, models.ConnectionTypeStrings()),
		}
	}

	return collectPages[models.Connection](ctx, c, "/connections/"+string(connectionType), nil)
}

// CreateDatamartDefinition creates a datamart definition with a single POST.
// No retry, no idempotency key; success is a 2xx status plus a decodable body.
func (c *Client) CreateDatamartDefinition(ctx context.Context, req *models.CreateDatamartDefinitionRequest) (*models.DatamartDefinition, error) {
	body, err := c.do(ctx, http.MethodPost, "/datamart_definitions", nil, req)
	if err != nil {
		return nil, err
	}

	def, err := decode[models.DatamartDefinition]("/datamart_definitions", body)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// do performs one authenticated request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, data interface{}) ([]byte, error) {
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("TROCCO API Request")

	var bodyReader io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Token "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Dur("duration", duration).Msg("TROCCO API Request Failed")
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, fmt.Errorf("trocco api request timed out after %s: %w", c.httpClient.Timeout, err)
		}
		return nil, fmt.Errorf("trocco api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("TROCCO API Response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}

	return body, nil
}

// decode parses a response body into the endpoint's expected shape,
// failing fast with a *DecodeError on mismatch.
func decode[T any](path string, body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		var zero T
		return zero, &DecodeError{Path: path, Err: err}
	}
	return v, nil
}
