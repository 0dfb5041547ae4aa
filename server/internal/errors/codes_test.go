package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NotFound("abc123")
	assert.Equal(t, "[NOT_FOUND] session not found: abc123", err.Error())

	cause := errors.New("connection refused")
	wrapped := UpstreamFailure("model call failed", cause)
	assert.Contains(t, wrapped.Error(), "UPSTREAM_FAILURE")
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(InvalidArgument("empty topic"), ErrCodeInvalidArgument))
	assert.False(t, IsCode(InvalidArgument("empty topic"), ErrCodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeInvalidArgument))
}

func TestGetCodeFromError(t *testing.T) {
	assert.Equal(t, ErrCodeFailedPrecondition, GetCodeFromError(FailedPrecondition("done"), ErrCodeUpstreamFailure))
	assert.Equal(t, ErrCodeUpstreamFailure, GetCodeFromError(errors.New("plain"), ErrCodeUpstreamFailure))
}
