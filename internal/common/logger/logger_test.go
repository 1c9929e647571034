package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
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
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestZapAdapter_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"component": "catalog"})

	log.Info("franchise saved", map[string]interface{}{"franchiseId": "f-1"})
	log.WithError(errors.New("boom")).Error("store failed", nil)
	log.Warn("conflict", map[string]interface{}{"cause": errors.New("version mismatch")})

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "catalog", ctx["component"])
		assert.Equal(t, "f-1", ctx["franchiseId"])

		assert.Equal(t, "boom", entries[1].ContextMap()["error"])
		assert.Equal(t, "version mismatch", entries[2].ContextMap()["cause"])
	}
}

func TestNew_FallsBackToConsole(t *testing.T) {
	l := New("debug", "console")
	assert.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	noop := NewNoOpLogger()
	noop.Info("ignored", nil)
}
