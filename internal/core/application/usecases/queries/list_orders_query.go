package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders newest first. Franchise viewers are always
// restricted to their own orders; staff may narrow by member and status.
type ListOrdersQuery struct {
	viewer   kernel.Actor
	memberID *kernel.UUID
	status   order.Status
	limit    int
	offset   int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. status may be order.Unknown for every status,
// memberID may be nil, limit 0 selects DefaultPageSize.
func NewListOrdersQuery(viewer kernel.Actor, memberID *kernel.UUID, status order.Status, limit, offset int) (ListOrdersQuery, error) {
	var statusErr, limitErr, offsetErr error
	if status != order.Unknown {
		statusErr = status.Validate()
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if err := errors.Join(viewer.Validate(), statusErr, limitErr, offsetErr); err != nil {
		return ListOrdersQuery{}, err
	}

	if viewer.Role == kernel.RoleFranchise {
		own := viewer.ID
		memberID = &own
	}
	return ListOrdersQuery{
		viewer:   viewer,
		memberID: memberID,
		status:   status,
		limit:    limit,
		offset:   offset,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Viewer() kernel.Actor   { return q.viewer }
func (q ListOrdersQuery) MemberID() *kernel.UUID { return q.memberID }
func (q ListOrdersQuery) Status() order.Status   { return q.status }
func (q ListOrdersQuery) Limit() int             { return q.limit }
func (q ListOrdersQuery) Offset() int            { return q.offset }
