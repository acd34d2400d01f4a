package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiPrefix is the REST API v2 root below the host
const apiPrefix = "/rest/api/2"

// defaultTimeout bounds every request when no HTTPClient is supplied
const defaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 16 << 20

// Config holds configuration for creating a Client
type Config struct {
	// BaseURL is the Jira host, e.g. "https://example.atlassian.net". A
	// bare host name is given an https:// scheme. Must use HTTPS.
	BaseURL string

	// Auth supplies the Authorization header. Required.
	Auth Auth

	// HTTPClient is used for all requests. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed Jira REST API v2 client
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       Auth
	logger     *slog.Logger
}

// NewClient creates a Jira API client from the given configuration
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		return nil, errors.New("jira: BaseURL is required")
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("jira: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Auth == nil {
		return nil, errors.New("jira: no authentication configured")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		auth:       config.Auth,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized host URL
func (client *Client) BaseURL() string {
	return client.baseURL
}

// do executes an authenticated request against apiPrefix+path. The request
// body is JSON-encoded when non-nil. Non-2xx responses become *APIError.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	target := client.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("jira: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("jira: creating request: %w", err)
	}
	request.Header.Set("Authorization", client.auth.AuthorizationHeader())
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client.logger.Debug("jira request", "method", method, "path", path)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("jira: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("jira: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response.StatusCode, body)
	}
	return body, nil
}

func (client *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

func (client *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, nil, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

func (client *Client) put(ctx context.Context, path string, requestBody any) error {
	_, err := client.do(ctx, http.MethodPut, path, nil, requestBody)
	return err
}

// parseAPIError decodes Jira's {"errorMessages":[],"errors":{}} body
func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wireError struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(body, &wireError) == nil && (len(wireError.ErrorMessages) > 0 || len(wireError.Errors) > 0) {
		apiError.ErrorMessages = wireError.ErrorMessages
		apiError.Errors = wireError.Errors
	} else {
		apiError.Body = strings.TrimSpace(string(body))
	}
	return apiError
}
