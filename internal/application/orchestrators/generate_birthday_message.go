package orchestrators

import (
	"context"
	"log/slog"

	"celebration/internal/domain/greeting"
	"celebration/internal/domain/member"
)

// MessageGenerator produces a birthday message for a member.
type MessageGenerator interface {
	Generate(ctx context.Context, m member.Member, tone greeting.Tone) (greeting.Message, error)
}

// GenerateBirthdayMessageInput carries input for the orchestrator.
type GenerateBirthdayMessageInput struct {
	MemberID int64
	Tone     string // must name a tone; callers resolve an absent one to greeting.DefaultTone
}

// GenerateBirthdayMessageDeps holds dependencies for GenerateBirthdayMessage.
type GenerateBirthdayMessageDeps struct {
	MemberStore MemberStore
	Generator   MessageGenerator
}

// ExecuteGenerateBirthdayMessage looks up a member and asks the generator for a message.
// PRE: none
// POST: Returns the generator's message unchanged
// Errors: member.ErrNotFound, greeting.ErrInvalidTone, *greeting.GenerationError
func ExecuteGenerateBirthdayMessage(ctx context.Context, input GenerateBirthdayMessageInput, deps GenerateBirthdayMessageDeps) (greeting.Message, error) {
	m, tone, err := loadMemberAndTone(ctx, input.MemberID, input.Tone, deps.MemberStore)
	if err != nil {
		return greeting.Message{}, err
	}

	msg, err := deps.Generator.Generate(ctx, m, tone)
	if err != nil {
		return greeting.Message{}, err
	}

	slog.Info("birthday_message_generated",
		"member_id", m.ID,
		"tone", tone,
		"model", msg.Explanation.Model,
	)
	return msg, nil
}

// loadMemberAndTone resolves the member first so an unknown id wins over a bad tone.
func loadMemberAndTone(ctx context.Context, id int64, rawTone string, store MemberStore) (member.Member, greeting.Tone, error) {
	m, err := store.GetByID(ctx, id)
	if err != nil {
		return member.Member{}, "", err
	}
	tone, err := greeting.ParseTone(rawTone)
	if err != nil {
		return member.Member{}, "", err
	}
	return m, tone, nil
}
