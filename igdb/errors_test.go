package igdb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: %w", context.DeadlineExceeded)
	err := &Error{Kind: ErrTimeout, Endpoint: "games", Err: cause}

	assert.Equal(t, "igdb: request timed out (games): dial tcp: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrUpstream)

	v := validationError("slug must not be empty")
	assert.Equal(t, "igdb: invalid input: slug must not be empty", v.Error())
	assert.ErrorIs(t, v, ErrValidation)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err      error
		expected error
	}{
		{&Error{Kind: ErrConfiguration}, ErrConfiguration},
		{fmt.Errorf("wrapped: %w", &Error{Kind: ErrRateLimited, Status: 429}), ErrRateLimited},
		{&Error{Kind: ErrAuthentication, Status: 401}, ErrAuthentication},
		{errors.New("unrelated"), nil},
		{nil, nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, KindOf(tt.err), "KindOf(%v)", tt.err)
	}
}
