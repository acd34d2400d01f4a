package jira

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError represents a non-2xx response from the Jira REST API. Jira
// returns a list of general messages plus a map of field-level errors.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// ErrorMessages are the general error messages.
	ErrorMessages []string

	// Errors maps field names to field-level messages.
	Errors map[string]string

	// Body is the raw response body when it was not structured JSON.
	Body string
}

// Messages returns the most specific messages available: the general
// list first, then field errors (sorted by field), then the raw body.
func (err *APIError) Messages() []string {
	var messages []string
	messages = append(messages, err.ErrorMessages...)

	fields := make([]string, 0, len(err.Errors))
	for field := range err.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		messages = append(messages, err.Errors[field])
	}

	if len(messages) == 0 && err.Body != "" {
		messages = append(messages, err.Body)
	}
	return messages
}

func (err *APIError) Error() string {
	messages := err.Messages()
	if len(messages) == 0 {
		return fmt.Sprintf("jira: HTTP %d: %s", err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("jira: HTTP %d: %s", err.StatusCode, strings.Join(messages, ", "))
}

// IsNotFound reports whether err is a Jira 404 response
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a Jira 401 or 403 response
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden)
}

// ErrorMessages extracts the structured messages from err when it wraps an
// APIError, falling back to the plain error text.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var apiError *APIError
	if errors.As(err, &apiError) {
		if messages := apiError.Messages(); len(messages) > 0 {
			return messages
		}
	}
	return []string{err.Error()}
}

// StatusCode returns the HTTP status of a wrapped APIError, or 0
func StatusCode(err error) int {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.StatusCode
	}
	return 0
}
