package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	emailAdapter "celebration/internal/adapters/email"
	"celebration/internal/domain/email"
)

// EmailSender dispatches a composed email.
type EmailSender interface {
	Send(ctx context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error)
}

// SendBirthdayEmailInput carries input for the orchestrator.
type SendBirthdayEmailInput struct {
	MemberID int64
	Tone     string
	DryRun   bool
}

// SendBirthdayEmailDeps holds dependencies for SendBirthdayEmail.
type SendBirthdayEmailDeps struct {
	MemberStore MemberStore
	Generator   MessageGenerator
	Sender      EmailSender
	EmailDomain string
	From        string
}

// ExecuteSendBirthdayEmail composes a birthday email and, unless DryRun, dispatches it.
// PRE: deps.EmailDomain is non-empty
// POST: Returns the envelope and status; Sender is called exactly once when DryRun is false
// INVARIANT: A dry run never reaches the Sender
func ExecuteSendBirthdayEmail(ctx context.Context, input SendBirthdayEmailInput, deps SendBirthdayEmailDeps) (email.Result, error) {
	m, tone, err := loadMemberAndTone(ctx, input.MemberID, input.Tone, deps.MemberStore)
	if err != nil {
		return email.Result{}, err
	}

	msg, err := deps.Generator.Generate(ctx, m, tone)
	if err != nil {
		return email.Result{}, err
	}

	to, err := email.RecipientAddress(m.FirstName, m.LastName, deps.EmailDomain)
	if err != nil {
		return email.Result{}, fmt.Errorf("member %d: %w", m.ID, err)
	}
	env := email.Envelope{
		To:      to,
		Subject: email.Subject(m.FirstName),
		Body:    msg.Message,
		DryRun:  input.DryRun,
	}
	if err := env.Validate(); err != nil {
		return email.Result{}, err
	}

	if input.DryRun {
		slog.Info("birthday_email_dry_run", "member_id", m.ID, "to", env.To, "subject", env.Subject, "body", env.Body)
		return email.Result{Status: email.StatusDryRun, Email: env, Message: email.MessageDryRun}, nil
	}

	html, err := emailAdapter.RenderHTML(env.Body)
	if err != nil {
		return email.Result{}, err
	}
	sent, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{env.To},
		From:    deps.From,
		Subject: env.Subject,
		Text:    env.Body,
		HTML:    html,
	})
	if err != nil {
		return email.Result{}, fmt.Errorf("dispatch birthday email: %w", err)
	}

	slog.Info("birthday_email_dispatched", "member_id", m.ID, "message_id", sent.MessageID, "simulated", sent.Simulated)
	note := email.MessageSent
	if !sent.Simulated {
		note = email.MessageDelivered
	}
	return email.Result{Status: email.StatusSent, Email: env, Message: note}, nil
}
