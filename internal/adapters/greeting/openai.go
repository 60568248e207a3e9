package greeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	domain "celebration/internal/domain/greeting"
	"celebration/internal/domain/locale"
	"celebration/internal/domain/member"
)

// Completion settings sent with every request and echoed in the explanation.
const (
	OpenAIMethod      = "chat_completion"
	openAITemperature = 0.7
	openAIMaxTokens   = 150
	openAITimeout     = 30 * time.Second
)

// OpenAIOptions configures an OpenAIGenerator.
type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string // empty selects the public endpoint
	Company string
}

// OpenAIGenerator asks a chat-completion model for the message.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	company string
}

// NewOpenAIGenerator creates a generator backed by the OpenAI chat API.
// PRE: opts.APIKey is non-empty
// POST: Returns a ready-to-use generator; no network call is made until Generate
func NewOpenAIGenerator(opts OpenAIOptions) *OpenAIGenerator {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: openAITimeout}

	model := opts.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		company: opts.Company,
	}
}

// Generate sends one prompt and returns the trimmed first choice.
// PRE: tone was produced by domain.ParseTone
// POST: Returns the message or a *domain.GenerationError wrapping the cause
func (g *OpenAIGenerator) Generate(ctx context.Context, m member.Member, tone domain.Tone) (domain.Message, error) {
	lang := locale.Language(m.Country)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: g.prompt(m, tone, lang)},
		},
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
	})
	if err != nil {
		slog.Error("openai_generation_failed", "model", g.model, "error", err)
		return domain.Message{}, &domain.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return domain.Message{}, &domain.GenerationError{Err: errors.New("no choices returned")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return domain.Message{}, &domain.GenerationError{Err: domain.ErrEmptyMessage}
	}

	return domain.Message{
		Message: text,
		Explanation: domain.Explanation{
			Model:  g.model,
			Method: OpenAIMethod,
			Parameters: map[string]any{
				"temperature": openAITemperature,
				"tone":        string(tone),
				"max_tokens":  openAIMaxTokens,
				"language":    lang,
			},
			Rationale: fmt.Sprintf("Generated using OpenAI %s with %s tone setting and temperature %.1f for creative variation. "+
				"Prompt included member's name, location (%s), and language preference to ensure cultural appropriateness.",
				g.model, tone, openAITemperature, m.Country),
		},
	}, nil
}

func (g *OpenAIGenerator) prompt(m member.Member, tone domain.Tone, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a birthday message for a %s company member with these details:\n", g.company)
	fmt.Fprintf(&b, "- Name: %s %s\n", m.FirstName, m.LastName)
	fmt.Fprintf(&b, "- Location: %s, %s\n", m.City, m.Country)
	if tz, ok := locale.Timezone(m.Country); ok {
		fmt.Fprintf(&b, "- Timezone: %s\n", tz)
	}
	fmt.Fprintf(&b, "- Tone: %s\n", tone)
	fmt.Fprintf(&b, "- Language preference: %s\n\n", lang)
	b.WriteString("Create a warm, personal birthday message (2-3 sentences max) that reflects the specified tone.")
	return b.String()
}
