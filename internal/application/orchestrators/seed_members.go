package orchestrators

import (
	"context"
	"log/slog"

	"celebration/internal/domain/member"
)

// MemberStoreForSeed defines the store interface needed by SeedMembers.
type MemberStoreForSeed interface {
	InsertIfAbsent(ctx context.Context, m member.Member) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SeedMembersDeps holds dependencies for SeedMembers.
type SeedMembersDeps struct {
	MemberStore MemberStoreForSeed
}

// SeedMembersResult reports what a seeding pass changed.
type SeedMembersResult struct {
	Inserted int // sample rows written by this pass
	Total    int // directory size afterwards; 0 when the count failed
}

// SampleMembers is the bootstrap directory loaded on a fresh database.
var SampleMembers = []member.Member{
	{FirstName: "John", LastName: "Smith", BirthDate: "1990-03-15", Country: "USA", City: "New York"},
	{FirstName: "Emma", LastName: "Johnson", BirthDate: "1985-07-22", Country: "UK", City: "London"},
	{FirstName: "Hans", LastName: "Mueller", BirthDate: "1992-11-08", Country: "Germany", City: "Berlin"},
	{FirstName: "Yuki", LastName: "Tanaka", BirthDate: "1988-01-30", Country: "Japan", City: "Tokyo"},
	{FirstName: "Sophie", LastName: "Martin", BirthDate: "1995-05-12", Country: "Canada", City: "Toronto"},
	{FirstName: "Raj", LastName: "Patel", BirthDate: "1987-09-25", Country: "India", City: "Mumbai"},
}

// ExecuteSeedMembers inserts SampleMembers, skipping any that already exist.
// Individual failures are logged and ignored so a restart never blocks startup.
// PRE: schema migrated
// POST: Inserted counts rows written; Total is the directory size after seeding
func ExecuteSeedMembers(ctx context.Context, deps SeedMembersDeps) SeedMembersResult {
	var res SeedMembersResult
	for _, m := range SampleMembers {
		ok, err := deps.MemberStore.InsertIfAbsent(ctx, m)
		if err != nil {
			slog.Debug("seed_member_skipped", "name", m.FullName(), "error", err)
			continue
		}
		if ok {
			res.Inserted++
		}
	}

	total, err := deps.MemberStore.Count(ctx)
	if err != nil {
		slog.Warn("seed_members_count_failed", "error", err)
	} else {
		res.Total = total
	}
	slog.Info("seed_members_loaded", "inserted", res.Inserted, "samples", len(SampleMembers), "members", res.Total)
	return res
}
