package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetLoyaltyAccountQueryIsNotConstructed = errors.New(
	"GetLoyaltyAccountQuery must be created via NewGetLoyaltyAccountQuery constructor",
)

// GetLoyaltyAccountQuery reads a member's ledger. Franchise viewers may only read their
// own; a member without an account reads as an empty ledger.
type GetLoyaltyAccountQuery struct {
	memberID kernel.UUID
	viewer   kernel.Actor
	limit    int

	guard guard.ConstructorGuard
}

func NewGetLoyaltyAccountQuery(memberID kernel.UUID, viewer kernel.Actor, limit int) (GetLoyaltyAccountQuery, error) {
	if err := errors.Join(memberID.Validate(), viewer.Validate()); err != nil {
		return GetLoyaltyAccountQuery{}, err
	}
	if viewer.Role == kernel.RoleFranchise && !viewer.Owns(memberID) {
		return GetLoyaltyAccountQuery{}, errs.NewForbiddenError("read another member's loyalty account")
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		return GetLoyaltyAccountQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	return GetLoyaltyAccountQuery{
		memberID: memberID,
		viewer:   viewer,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetLoyaltyAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetLoyaltyAccountQueryIsNotConstructed)
}

func (q GetLoyaltyAccountQuery) MemberID() kernel.UUID { return q.memberID }
func (q GetLoyaltyAccountQuery) Viewer() kernel.Actor  { return q.viewer }

// Limit caps the number of transactions returned.
func (q GetLoyaltyAccountQuery) Limit() int { return q.limit }

type LoyaltyAccountView struct {
	MemberID      kernel.UUID
	Balance       int
	TotalEarned   int
	TotalRedeemed int
	// Transactions are newest first; Points is signed.
	Transactions []LoyaltyTransactionView
	Gifts        []LoyaltyGiftView
}

type LoyaltyTransactionView struct {
	ID          kernel.UUID
	Points      int
	Kind        loyalty.TransactionKind
	Description string
	OrderID     *kernel.UUID
	CreatedAt   time.Time
}

type LoyaltyGiftView struct {
	ID            kernel.UUID
	Type          loyalty.GiftType
	PointsUsed    int
	UsedOnOrderID *kernel.UUID
	CreatedAt     time.Time
}
