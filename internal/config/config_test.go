package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRequiresInputFile(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Normalize())
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := &Config{InputFile: "transactions.csv"}
	require.NoError(t, cfg.Normalize())

	require.GreaterOrEqual(t, cfg.ShardCount, minShardCount)
	require.LessOrEqual(t, cfg.ShardCount, maxShardCount)
	require.Equal(t, DefaultQueueCapacity, cfg.QueueCapacity)
	require.Equal(t, DefaultDebugLevel, cfg.DebugLevel)
}

func TestNormalizeClampsExplicitShardCount(t *testing.T) {
	cfg := &Config{InputFile: "t.csv", ShardCount: 1000}
	require.NoError(t, cfg.Normalize())
	require.Equal(t, maxShardCount, cfg.ShardCount)

	cfg2 := &Config{InputFile: "t.csv", ShardCount: -5}
	require.NoError(t, cfg2.Normalize())
	require.GreaterOrEqual(t, cfg2.ShardCount, minShardCount)
}

func TestNormalizePreservesExplicitQueueCapacity(t *testing.T) {
	cfg := &Config{InputFile: "t.csv", QueueCapacity: 16}
	require.NoError(t, cfg.Normalize())
	require.Equal(t, 16, cfg.QueueCapacity)
}
