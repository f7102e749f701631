package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEngineEnv(t *testing.T) {
	t.Setenv("AERON_DIR", "/tmp/aeron-test")
	t.Setenv("SUB_CHANNEL", "aeron:ipc")
	t.Setenv("SUB_STREAM_ID", "1001")
	t.Setenv("PUB_CHANNEL", "aeron:ipc")
	t.Setenv("PUB_STREAM_ID", "1002")
	t.Setenv("MAX_ORDERS", "100000")
}

func TestLoadEngine(t *testing.T) {
	setEngineEnv(t)

	cfg, err := LoadEngine()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/aeron-test", cfg.Aeron.Dir)
	assert.Equal(t, "aeron:ipc", cfg.Aeron.SubChannel)
	assert.Equal(t, int32(1001), cfg.Aeron.SubStreamID)
	assert.Equal(t, int32(1002), cfg.Aeron.PubStreamID)
	assert.Equal(t, 100000, cfg.MaxOrders)
}

func TestLoadEngineMissingMaxOrders(t *testing.T) {
	setEngineEnv(t)
	t.Setenv("MAX_ORDERS", "")

	_, err := LoadEngine()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ORDERS")
}

func TestLoadEngineRejectsNonPositiveMaxOrders(t *testing.T) {
	setEngineEnv(t)
	t.Setenv("MAX_ORDERS", "0")

	_, err := LoadEngine()
	require.Error(t, err)
}

func TestLoadEngineMissingChannel(t *testing.T) {
	setEngineEnv(t)
	t.Setenv("SUB_CHANNEL", "")

	_, err := LoadEngine()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUB_CHANNEL")
}

func TestLoadConsumer(t *testing.T) {
	t.Setenv("AERON_DIR", "/tmp/aeron-test")
	t.Setenv("SUB_CHANNEL", "aeron:ipc")
	t.Setenv("SUB_STREAM_ID", "1002")
	t.Setenv("NATS_SUBJECT", "md.level2.FLCN")
	t.Setenv("SYMBOL", "FLCN")

	cfg, err := LoadConsumer()
	require.NoError(t, err)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NatsURL, "default nats url")
	assert.Equal(t, "md.level2.FLCN", cfg.NatsSubject)
	assert.Equal(t, "FLCN", cfg.Symbol)
}

func TestLoadConsumerRequiresSymbol(t *testing.T) {
	t.Setenv("AERON_DIR", "/tmp/aeron-test")
	t.Setenv("SUB_CHANNEL", "aeron:ipc")
	t.Setenv("SUB_STREAM_ID", "1002")
	t.Setenv("NATS_SUBJECT", "md.level2.FLCN")
	t.Setenv("SYMBOL", "")

	_, err := LoadConsumer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYMBOL")
}
