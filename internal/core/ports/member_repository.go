package ports

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
)

// MemberRepository stores franchise members.
type MemberRepository interface {
	Add(ctx context.Context, aggregate *member.Member) error
	Update(ctx context.Context, aggregate *member.Member) error
	Get(ctx context.Context, id kernel.UUID) (*member.Member, error)
}

// CatalogRepository stores the shared supply catalogue.
type CatalogRepository interface {
	Add(ctx context.Context, item *catalog.Item) error

	// GetMany returns the stored items among ids. Unknown IDs are absent from the
	// result; callers decide whether that is an error.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error)
}
