package projections

import (
	"context"
	"time"

	"celebration/internal/domain/birthday"
)

// GetMemberQuery carries query parameters.
type GetMemberQuery struct {
	ID int64
}

// GetMemberDeps holds dependencies for GetMember.
type GetMemberDeps struct {
	MemberStore MemberStore
	Now         func() time.Time
}

// QueryGetMember retrieves one member with its birthday countdown.
// PRE: none
// POST: Returns the view or member.ErrNotFound
func QueryGetMember(ctx context.Context, query GetMemberQuery, deps GetMemberDeps) (MemberView, error) {
	m, err := deps.MemberStore.GetByID(ctx, query.ID)
	if err != nil {
		return MemberView{}, err
	}
	days, err := birthday.DaysUntilNext(m.BirthDate, now(deps.Now))
	if err != nil {
		return MemberView{}, err
	}
	return MemberView{Member: m, DaysUntilBirthday: days}, nil
}
