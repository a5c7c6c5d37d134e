package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "hello", limit: 10, want: "hello"},
		{name: "exact", in: "hello", limit: 5, want: "hello"},
		{name: "cut", in: "hello world", limit: 5, want: "hello..."},
		{name: "multibyte", in: "привет мир", limit: 6, want: "привет..."},
		{name: "trimmed", in: "  hi  ", limit: 5, want: "hi"},
		{name: "zero limit", in: "hello", limit: 0, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruncateForLog(tc.in, tc.limit))
		})
	}
}

func TestWithAI(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	WithAI(zap.New(core), " gemini ", "").Info("call")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "gemini", fields[FieldProvider])
	_, hasModel := fields[FieldModel]
	assert.False(t, hasModel)
}

func TestWithAINilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithAI(nil, "gemini", "flash").Info("ignored")
	})
}

func TestNew(t *testing.T) {
	l, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
