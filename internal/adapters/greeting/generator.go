package greeting

import (
	"context"

	"celebration/internal/config"
	domain "celebration/internal/domain/greeting"
	"celebration/internal/domain/member"
)

// Generator produces a birthday message with an explanation of how it was made.
type Generator interface {
	Generate(ctx context.Context, m member.Member, tone domain.Tone) (domain.Message, error)
}

// NewGenerator selects the strategy from configuration.
// PRE: cfg came from config.Load (live mode implies a non-empty key)
// POST: Returns the template generator when MockAI is set, the OpenAI generator otherwise
func NewGenerator(cfg config.Config) Generator {
	if cfg.MockAI {
		return NewTemplateGenerator(cfg.CompanyName)
	}
	return NewOpenAIGenerator(OpenAIOptions{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Company: cfg.CompanyName,
	})
}
