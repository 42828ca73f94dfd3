package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingConfigSeesFlagValues(t *testing.T) {
	assert.False(t, tracingConfig().Enabled)

	require.NoError(t, rootCmd.PersistentFlags().Set("tracing-enabled", "true"))
	require.NoError(t, rootCmd.PersistentFlags().Set("tracing-sampler", "never"))
	defer func() {
		_ = rootCmd.PersistentFlags().Set("tracing-enabled", "false")
		_ = rootCmd.PersistentFlags().Set("tracing-sampler", "ratio")
	}()

	config := tracingConfig()
	assert.True(t, config.Enabled)
	assert.Equal(t, "never", config.SamplerType)
	assert.Equal(t, "skillforge", config.ServiceName)
}

func TestTracingInitializedInPersistentPreRun(t *testing.T) {
	// Tracer setup lives in PersistentPreRun, after cobra has parsed the
	// command line, so --tracing-enabled is honored.
	tracingShutdown = nil
	defer func() { tracingShutdown = nil }()

	ctx := context.Background()
	rootCmd.SetContext(ctx)
	rootCmd.PersistentPreRun(rootCmd, nil)

	require.NotNil(t, tracingShutdown)
	assert.NoError(t, tracingShutdown(ctx))
}
