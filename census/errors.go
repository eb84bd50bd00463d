package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Retryable reports whether an error is worth retrying later.
// Errors that don't implement the interface are assumed permanent.
func Retryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

type retryableError struct {
	error
	waitUntil time.Time
}

func (retryableError) Retryable() bool { return true }

func (err retryableError) RetryAfter() time.Time {
	return err.waitUntil
}
func (err retryableError) Unwrap() error { return err.error }

type permanentError struct {
	error
}

func (permanentError) Retryable() bool { return false }
func (e permanentError) Unwrap() error { return e.error }

// errBadServiceID is returned when a service ID is provided but not registered.
var errBadServiceID = permanentError{errors.New("provided service ID is not registered")}

// errRateLimitExceeded is returned when too many requests are sent without a service ID.
// Census does not have rate limits when a service ID is provided.
var errRateLimitExceeded = errors.New("rate limit exceeded")

// errServerMaintenance covers responses that look like census being down for maintenance.
var errServerMaintenance = errors.New("server maintenance")

// ErrNoResults is returned when a query succeeds but matches nothing,
// such as asking for a zone ID that doesn't exist.
var ErrNoResults = errors.New("no results")

// checkErrorBody inspects a well-formed census response for the known
// error message shapes that come back with http 200.
func checkErrorBody(body []byte) error {
	var msg struct {
		Error     string `json:"error"`
		ErrorCode string `json:"errorCode"`
		Message   string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		// not an object; let the caller's unmarshal produce the real error
		return nil
	}
	switch {
	case msg.Error == "":
		if msg.ErrorCode != "" {
			return permanentError{fmt.Errorf("%s: %s", msg.ErrorCode, msg.Message)}
		}
		return nil
	case msg.Error == "service_unavailable":
		return retryableError{errServerMaintenance, time.Now().Add(30 * time.Minute)}
	case strings.Contains(msg.Error, "Missing Service ID"):
		return retryableError{errRateLimitExceeded, time.Now().Add(time.Minute)}
	case strings.Contains(msg.Error, "Service ID is not registered"):
		return errBadServiceID
	default:
		return permanentError{errors.New(msg.Error)}
	}
}

// wrapRetryable wraps timeouts and transient network failures with a
// retryable error.
func wrapRetryable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return retryableError{err, time.Now()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return retryableError{err, time.Now()}
	}
	return err
}
