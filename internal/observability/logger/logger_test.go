package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" warning "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("whatever"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestConfig_BaseFields(t *testing.T) {
	assert.Empty(t, Config{}.baseFields())

	fields := Config{ServiceName: "cursomvc", Version: "1.2.0"}.baseFields()
	require.Len(t, fields, 2)
	assert.Equal(t, "service", fields[0].Key)
	assert.Equal(t, "1.2.0", fields[1].String)

	assert.True(t, Config{Env: " PROD "}.isProd())
	assert.False(t, Config{Env: "dev"}.isProd())
	assert.NotNil(t, build(Config{Env: "prod", Level: "debug"}))
}

func TestToContext_NilLoggerKeepsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, ToContext(ctx, nil))
}

func TestFrom_FallsBackToSingleton(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	From(context.Background()).Info("hola")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hola", logs.All()[0].Message)
}

func TestToContext_ScopedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	scoped := zap.New(core).With(RequestID("req-1"))

	ctx := ToContext(context.Background(), scoped)
	FromWithFields(ctx, PrincipalID(3)).Debug("deleted", EntityKind("client"), EntityID(9))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.EqualValues(t, 3, fields["principal_id"])
	assert.Equal(t, "client", fields["entity"])
	assert.EqualValues(t, 9, fields["entity_id"])
}
