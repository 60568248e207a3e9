package member

import (
	"context"

	domain "celebration/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	Insert(ctx context.Context, value domain.Member) (domain.Member, error)
	InsertIfAbsent(ctx context.Context, value domain.Member) (bool, error)
	GetByID(ctx context.Context, id int64) (domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Count(ctx context.Context) (int, error)
}
