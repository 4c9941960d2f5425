package registry

import (
	"errors"
	"fmt"

	dErrors "ownergraph/pkg/domain-errors"
)

// Sentinel errors for upstream responses callers branch on.
var (
	// ErrNotFound is returned for upstream 404s on required resources.
	ErrNotFound = errors.New("registry: resource not found")

	// ErrUnauthorized is returned for upstream 401s. Credentials are global,
	// so callers must treat this as fatal for the whole run.
	ErrUnauthorized = errors.New("registry: invalid or unauthorized API key")

	// ErrRateLimited is returned for upstream 429s. No automatic retry is
	// performed; callers should stop and surface a retry-later message.
	ErrRateLimited = errors.New("registry: rate limited")

	// ErrCircuitOpen is wrapped in a TransportError when the breaker is open
	// and the call was short-circuited without touching the network.
	ErrCircuitOpen = errors.New("registry: circuit breaker open")
)

// StatusError reports any other non-2xx upstream response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry: unexpected status %d: %s", e.Status, e.Body)
}

// TransportError reports a failure before an HTTP status was obtained:
// timeout, connection refused, DNS, or an open breaker.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("registry: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("registry: decode failure: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DomainError translates a registry error into the coded vocabulary the HTTP
// layer renders. Errors that already carry a code pass through unchanged.
func DomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case dErrors.CodeOf(err) != dErrors.CodeInternal:
		return err
	case errors.Is(err, ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "company not found in the registry")
	case errors.Is(err, ErrUnauthorized):
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "registry rejected the configured API key")
	case errors.Is(err, ErrRateLimited):
		return dErrors.Wrap(err, dErrors.CodeRateLimited, "registry rate limit reached, retry later")
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstream, "registry request failed")
	}
}
