package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "amazon.nova-canvas-v1:0", cfg.Bedrock.CanvasModel)
	require.Equal(t, 1024, cfg.Bedrock.MaxTokens)
	require.Equal(t, "images", cfg.Generation.OutputDir)
	require.Equal(t, 1024, cfg.Generation.Width)
	require.Equal(t, 8.0, cfg.Generation.CFGScale)
	require.Equal(t, "premium", cfg.Generation.Quality)
	require.Equal(t, 2, cfg.Generation.DelaySeconds)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CANVAS_MODEL", "amazon.nova-canvas-v2:0")
	t.Setenv("OUTPUT_DIR", "/tmp/shirts")
	t.Setenv("GENERATION_DELAY_SECONDS", "0")
	t.Setenv("OPENAI_MODEL", "llava")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "amazon.nova-canvas-v2:0", cfg.Bedrock.CanvasModel)
	require.Equal(t, "/tmp/shirts", cfg.Generation.OutputDir)
	require.Zero(t, cfg.Generation.DelaySeconds)
	require.Equal(t, "llava", cfg.OpenAI.Model)
}
