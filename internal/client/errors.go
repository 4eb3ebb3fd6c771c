package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gophercloud/gophercloud/v2"
)

var (
	// ErrSessionExpired is returned for any 401 answer. Callers should drop
	// the cached token and ask the user to login again.
	ErrSessionExpired = errors.New("session expired, please login again")
	// ErrNetwork is returned when the API could not be reached at all.
	ErrNetwork = errors.New("network error, please check your connection")
)

// APIError is a non-2xx answer from the supplier API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// translateErr maps transport and HTTP failures onto the package errors.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var codeErr gophercloud.ErrUnexpectedResponseCode
	if errors.As(err, &codeErr) {
		return fromResponse(codeErr.Actual, codeErr.Body)
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return err
}

func fromResponse(status int, body []byte) error {
	if status == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	if status == http.StatusUnprocessableEntity && len(eb.Errors) > 0 {
		fields := make([]string, 0, len(eb.Errors))
		for f := range eb.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		var msgs []string
		for _, f := range fields {
			msgs = append(msgs, eb.Errors[f]...)
		}
		return &APIError{Status: status, Message: strings.Join(msgs, ", ")}
	}
	if eb.Message != "" {
		return &APIError{Status: status, Message: eb.Message}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("server error: %d", status)}
}
