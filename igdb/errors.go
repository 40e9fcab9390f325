package igdb

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Client matches exactly one of these with errors.Is.
var (
	ErrConfiguration  = errors.New("igdb: client id and secret are not configured")
	ErrValidation     = errors.New("igdb: invalid input")
	ErrAuthentication = errors.New("igdb: authentication failed")
	ErrRateLimited    = errors.New("igdb: rate limited, try again later")
	ErrTimeout        = errors.New("igdb: request timed out")
	ErrUpstream       = errors.New("igdb: upstream request failed")
)

// Error describes a failed client operation
type Error struct {
	Kind     error  // one of the Err* sentinels
	Endpoint string // empty for token and validation failures
	Status   int    // HTTP status, 0 if no response was received
	Msg      string
	Err      error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Endpoint != "" {
		msg += " (" + e.Endpoint + ")"
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind sentinel of err, or nil if err did not come from this package
func KindOf(err error) error {
	for _, kind := range []error{ErrConfiguration, ErrValidation, ErrAuthentication, ErrRateLimited, ErrTimeout, ErrUpstream} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
