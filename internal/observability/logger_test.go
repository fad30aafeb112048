package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/casting-agency/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.ObservabilityConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", config.ObservabilityConfig{LogLevel: "info", LogFormat: "json"}, zapcore.InfoLevel, false},
		{"console debug", config.ObservabilityConfig{LogLevel: "debug", LogFormat: "console"}, zapcore.DebugLevel, false},
		{"upper case level", config.ObservabilityConfig{LogLevel: "WARN"}, zapcore.WarnLevel, false},
		{"unknown level", config.ObservabilityConfig{LogLevel: "chatty"}, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}
