package services

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

const (
	// AccrualThreshold is the minimum pre-discount order total that earns points.
	AccrualThreshold = 5000
	// AccrualPoints is the flat number of points credited per qualifying order.
	AccrualPoints = 20
)

// AccrualPolicy decides how many loyalty points a delivered order earns.
type AccrualPolicy struct {
	threshold kernel.Money
	points    int
}

// NewAccrualPolicy returns the standard policy: AccrualPoints for orders whose
// pre-discount total reaches AccrualThreshold.
func NewAccrualPolicy() AccrualPolicy {
	threshold, _ := kernel.MoneyFromInt(AccrualThreshold)
	return AccrualPolicy{threshold: threshold, points: AccrualPoints}
}

// Evaluate returns the points earned by o. Only delivered orders earn points.
func (p AccrualPolicy) Evaluate(o *order.Order) (int, bool) {
	if o.Status() != order.Delivered {
		return 0, false
	}
	if !o.PreDiscountTotal().GreaterThanOrEqual(p.threshold) {
		return 0, false
	}
	return p.points, true
}
