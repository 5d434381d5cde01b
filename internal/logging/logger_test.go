package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMirrorsEntriesToExtraWriters(t *testing.T) {
	var mirror bytes.Buffer
	logger := New("warn", &mirror)

	logger.Info("hidden")
	logger.Warn("fetch places failed")
	_ = logger.Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(mirror.Bytes()), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "fetch places failed", entry["message"])
}

func TestFromContextFallsBackToNop(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	logger := New("debug")
	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))
}
