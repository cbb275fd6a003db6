package logger

import (
	"context"
	"testing"

	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFor(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelWarn
	assert.Equal(t, zapcore.WarnLevel, levelFor(cfg))

	cfg.Logging.Level = "verbose"
	assert.Equal(t, zapcore.InfoLevel, levelFor(cfg))
	assert.Equal(t, zapcore.InfoLevel, levelFor(nil))
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	ctx := types.SetRequestID(types.SetUserID(context.Background(), "user_1"), "req_1")
	l.WithContext(ctx).Infow("synced", "project_id", "proj_1")
	l.WithContext(context.Background()).Info("bare")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{
		"request_id": "req_1",
		"user_id":    "user_1",
		"project_id": "proj_1",
	}, entries[0].ContextMap())
	assert.Empty(t, entries[1].ContextMap())
}
