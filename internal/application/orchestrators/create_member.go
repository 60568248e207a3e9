package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"celebration/internal/domain/birthday"
	"celebration/internal/domain/member"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	Insert(ctx context.Context, m member.Member) (member.Member, error)
	GetByID(ctx context.Context, id int64) (member.Member, error)
}

// CreateMemberInput carries input for the orchestrator.
type CreateMemberInput struct {
	FirstName string
	LastName  string
	BirthDate string
	Country   string
	City      string
}

// CreateMemberDeps holds dependencies for CreateMember.
type CreateMemberDeps struct {
	MemberStore MemberStore
	Now         func() time.Time // nil selects time.Now
}

// ExecuteCreateMember validates and persists a new member.
// PRE: none
// POST: Member stored with a fresh ID and CreatedAt; BirthDate returned verbatim
// INVARIANT: Members are at least 18 on the day they are created
// INVARIANT: (first name, last name, country, city) is unique (enforced by store)
func ExecuteCreateMember(ctx context.Context, input CreateMemberInput, deps CreateMemberDeps) (member.Member, error) {
	m := member.Member{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: input.BirthDate,
		Country:   input.Country,
		City:      input.City,
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	if _, err := birthday.ValidateAdult(m.BirthDate, now(deps.Now)); err != nil {
		return member.Member{}, err
	}

	created, err := deps.MemberStore.Insert(ctx, m)
	if err != nil {
		return member.Member{}, err
	}

	slog.Info("member_created", "member_id", created.ID, "country", created.Country)
	return created, nil
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
