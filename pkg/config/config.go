package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Bedrock holds settings for the Amazon Bedrock runtime backend.
type Bedrock struct {
	// AWS region hosting the models, e.g. "us-east-1"
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Model id used for text-to-image generation
	CanvasModel string `env:"CANVAS_MODEL" envDefault:"amazon.nova-canvas-v1:0"`

	// Model id used for multimodal extraction via Converse
	ExtractModel string `env:"EXTRACT_MODEL" envDefault:"us.amazon.nova-lite-v1:0"`

	// Response token budget for extraction calls
	MaxTokens int `env:"MAX_TOKENS" envDefault:"1024"`
}

// OpenAI holds settings for an optional OpenAI-compatible extraction backend.
type OpenAI struct {
	URL   string `env:"OPENAI_BASE_URL"`
	Key   string `env:"OPENAI_API_KEY"`
	Model string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// Generation holds defaults for the image generation helper.
type Generation struct {
	// Directory where generated sample images are written
	OutputDir string `env:"OUTPUT_DIR" envDefault:"images"`

	Width  int `env:"IMAGE_WIDTH" envDefault:"1024"`
	Height int `env:"IMAGE_HEIGHT" envDefault:"1024"`

	// Classifier-free guidance scale, 1.1 to 10.0
	CFGScale float64 `env:"CFG_SCALE" envDefault:"8.0"`

	Quality string `env:"IMAGE_QUALITY" envDefault:"premium"`

	// Pause between requests when generating the whole workshop set,
	// to stay under the model's rate limits
	DelaySeconds int `env:"GENERATION_DELAY_SECONDS" envDefault:"2"`
}

type Config struct {
	Bedrock    Bedrock
	OpenAI     OpenAI
	Generation Generation
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
