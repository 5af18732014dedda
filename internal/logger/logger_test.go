package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from flag strings to zapcore.Level.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("loud")
	require.False(t, ok)
}

// TestContextLogger verifies the context logger is used and carries its name and fields.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := New(zap.NewAtomicLevelAt(zapcore.DebugLevel), &buf)

	ctx := ToContext(context.Background(), l)
	ctx = WithName(ctx, "stager")
	ctx = WithKV(ctx, "folder", "mods")

	InfoKV(ctx, "Copied folder", "files", 3)

	out := buf.String()
	require.Contains(t, out, "stager")
	require.Contains(t, out, "Copied folder")
	require.Contains(t, out, "mods")
}

// TestFromContextFallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestSetLevel changes the level of the global logger.
func TestSetLevel(t *testing.T) {
	previous := Level()
	t.Cleanup(func() { SetLevel(previous) })

	SetLevel(zapcore.ErrorLevel)
	require.Equal(t, zapcore.ErrorLevel, Level())
	require.False(t, Logger().Desugar().Core().Enabled(zapcore.WarnLevel))
}
