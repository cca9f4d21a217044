package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewStructured(t *testing.T) {
	l, err := NewStructured("debug", "json")
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestZapWrapper_FieldsAreSortedAndCarried(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core))

	l.WithFields(map[string]interface{}{"runId": "abc"}).
		WithError(errors.New("boom")).
		Warn("brand skipped", map[string]interface{}{"reason": "no_products", "brandId": 7})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "brand skipped", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "abc", ctx["runId"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "no_products", ctx["reason"])
	assert.EqualValues(t, 7, ctx["brandId"])

	keys := make([]string, 0, len(entry.Context))
	for _, f := range entry.Context {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"runId", "error", "brandId", "reason"}, keys)
}

func TestNewNoOpLogger(t *testing.T) {
	l := NewNoOpLogger()
	l.Info("ignored", nil)
	assert.NoError(t, l.Sync())
}
