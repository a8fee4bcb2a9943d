package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevelParsing(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"empty falls back to info", "", zerolog.InfoLevel},
		{"garbage falls back to info", "loud", zerolog.InfoLevel},
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(Config{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewFileFallsBackOnOpenError(t *testing.T) {
	// An unopenable path must still yield a working logger.
	logger := New(Config{Level: "info", Format: "json", Output: "file", File: "/no/such/dir/eco.log"})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	logger.Info().Msg("still alive")
}

func TestComponentLogger(t *testing.T) {
	base := zerolog.Nop()
	child := ComponentLogger(base, "calculator")
	// A Nop base stays disabled; the call must not panic.
	child.Info().Msg("noop")
	assert.Equal(t, zerolog.Disabled, child.GetLevel())
}

func TestContextRoundTrip(t *testing.T) {
	logger := New(Config{Level: "debug", Format: "json"})

	ctx := WithContext(context.Background(), logger)
	got := FromContext(ctx)
	assert.Equal(t, zerolog.DebugLevel, got.GetLevel())

	// Without an attached logger the default is disabled.
	bare := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, bare.GetLevel())
}
