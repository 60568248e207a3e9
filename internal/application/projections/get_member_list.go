package projections

import (
	"context"
	"fmt"
	"sort"
	"time"

	"celebration/internal/domain/birthday"
)

// GetMemberListQuery carries query parameters.
type GetMemberListQuery struct {
	UpcomingOnly   bool
	SortByBirthday bool
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Members []MemberView
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore MemberStore
	Now         func() time.Time // nil selects time.Now
}

// QueryGetMemberList retrieves members with days until their next birthday.
// PRE: none
// POST: Members in insertion order unless SortByBirthday; never nil
// INVARIANT: The upcoming filter runs before the sort, and the sort is stable
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) (GetMemberListResult, error) {
	members, err := deps.MemberStore.List(ctx)
	if err != nil {
		return GetMemberListResult{}, err
	}

	today := now(deps.Now)
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		days, err := birthday.DaysUntilNext(m.BirthDate, today)
		if err != nil {
			return GetMemberListResult{}, fmt.Errorf("member %d: %w", m.ID, err)
		}
		if query.UpcomingOnly && !birthday.IsUpcoming(days) {
			continue
		}
		views = append(views, MemberView{Member: m, DaysUntilBirthday: days})
	}

	if query.SortByBirthday {
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].DaysUntilBirthday < views[j].DaysUntilBirthday
		})
	}

	return GetMemberListResult{Members: views}, nil
}
