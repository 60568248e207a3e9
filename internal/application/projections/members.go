package projections

import (
	"context"
	"time"

	"celebration/internal/domain/member"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id int64) (member.Member, error)
	List(ctx context.Context) ([]member.Member, error)
}

// MemberView is a stored member augmented with its next-birthday countdown.
type MemberView struct {
	member.Member
	DaysUntilBirthday int
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
