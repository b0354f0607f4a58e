package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/auth-service/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	app := config.AppConfig{Name: "auth-service", Version: "test", Env: "test"}

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"error": zapcore.ErrorLevel,
	}
	for raw, want := range cases {
		logger, err := NewLogger(config.LoggerConfig{Level: raw}, app)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(want), "level %q", raw)
		if want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(want-1), "level %q", raw)
		}
	}
}
