package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sagebot/pkg/log"
)

type OpenAIConfig struct {
	APIKey      string  `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL     string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model       string  `env:"MODEL_NAME" envDefault:"gpt-3.5-turbo"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.1"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"500"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
