package greeting

import (
	"context"
	"fmt"

	domain "celebration/internal/domain/greeting"
	"celebration/internal/domain/locale"
	"celebration/internal/domain/member"
)

// Template generator identity reported in explanations.
const (
	TemplateModel  = "mock-generator-v1"
	TemplateMethod = "template_based_generation"
)

// TemplateGenerator fills fixed per-tone templates. It never fails and makes no network calls.
type TemplateGenerator struct {
	company string
}

// NewTemplateGenerator creates a generator that signs messages from company.
func NewTemplateGenerator(company string) *TemplateGenerator {
	return &TemplateGenerator{company: company}
}

// Generate renders the template for tone.
// PRE: tone was produced by domain.ParseTone
// POST: Returns a message personalised with the member's name; unknown tones fall back to friendly
func (g *TemplateGenerator) Generate(_ context.Context, m member.Member, tone domain.Tone) (domain.Message, error) {
	var text string
	switch tone {
	case domain.ToneFormal:
		text = fmt.Sprintf("Dear %s %s, On behalf of %s, we wish you a very happy birthday and continued success in the year ahead.",
			m.FirstName, m.LastName, g.company)
	default:
		tone = domain.ToneFriendly
		text = fmt.Sprintf("Happy Birthday, %s! Wishing you an amazing day filled with joy and laughter from all of us at %s!",
			m.FirstName, g.company)
	}

	return domain.Message{
		Message: text,
		Explanation: domain.Explanation{
			Model:  TemplateModel,
			Method: TemplateMethod,
			Parameters: map[string]any{
				"tone":     string(tone),
				"language": locale.Language(m.Country),
			},
			Rationale: fmt.Sprintf("Generated using a rule-based template system with %s tone. "+
				"Personalized with member's first name and considering cultural context from %s.", tone, m.Country),
		},
	}, nil
}
