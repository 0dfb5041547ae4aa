package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextLogsBaseFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rc := NewRequestContext(logger, "start", "sess-1")
	rc.Info("interview started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "start", entry[LogFieldOperation])
	assert.Equal(t, "sess-1", entry[LogFieldSessionID])
	assert.NotEmpty(t, entry[LogFieldRequestID])
}

func TestContextRoundTrip(t *testing.T) {
	rc := NewRequestContext(nil, "message", "sess-2")
	ctx := WithRequestContext(context.Background(), rc)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, rc, got)
}

func TestContextLoggerUpdatesFields(t *testing.T) {
	rc := NewRequestContext(nil, "", "")
	ctx := WithRequestContext(context.Background(), rc)

	got := ContextLogger(ctx, "complete", "sess-3")
	assert.Same(t, rc, got)
	assert.Equal(t, "complete", rc.Operation)
	assert.Equal(t, "sess-3", rc.SessionID)

	detached := ContextLogger(context.Background(), "get", "sess-4")
	assert.NotSame(t, rc, detached)
	assert.Equal(t, "get", detached.Operation)
}
