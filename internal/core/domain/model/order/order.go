package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder
	// or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrChecklistIncomplete is the cause reported when shipping an order with unpacked items.
	ErrChecklistIncomplete = errors.New("packing checklist is incomplete")
)

// Order is the aggregate root of a franchise supply order. It owns the order lines,
// the money totals and the lifecycle state machine.
//
// Order follows these invariants:
//   - At least one line, and no catalogue item appears on two lines
//   - TotalAmount = Σ line totals + effective delivery fee − loyalty discount
//   - The loyalty discount (one currency unit per point) never exceeds the items subtotal
//   - A claimed free-delivery gift forces the effective delivery fee to zero
//   - Status transitions follow the transition table for the acting role
//   - Franchise actors may only act on orders of their own member
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// memberID is the franchise member that placed the order
	memberID kernel.UUID

	// franchiseName is a snapshot of the member's franchise name
	franchiseName string

	// items are the immutable order lines
	items []Item

	// shippingAddress is the delivery destination
	shippingAddress kernel.Address

	// deliveryFee is set by an admin at confirmation (nil until then)
	deliveryFee *kernel.Money

	// loyaltyPointsUsed were debited from the member's ledger as a discount
	loyaltyPointsUsed int

	// loyaltyGiftClaimed marks a consumed free-delivery gift
	loyaltyGiftClaimed bool

	status         Status
	trackingNumber string
	adminNotes     string

	// version is the optimistic-concurrency token of the persisted row
	version int

	// changes are transitions not yet written to the audit trail
	changes []StatusChange

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder places an order in Pending status.
//
// Parameters:
//   - id: identifier chosen by the caller
//   - memberID, franchiseName: the ordering member
//   - items: at least one line, each catalogue item at most once
//   - address: shipping destination
//   - pointsToUse: loyalty points redeemed as a discount (0 for none)
//   - freeDeliveryGift: whether a free-delivery gift is applied
//
// Example:
//
//	line, _ := order.NewItem(teaID, "Assam CTC 1kg", 4, kernel.MustMoney("450"))
//	o, err := order.NewOrder(kernel.NewUUID(), memberID, "Chai Point", []order.Item{line}, address, 0, false)
func NewOrder(
	id kernel.UUID,
	memberID kernel.UUID,
	franchiseName string,
	items []Item,
	address kernel.Address,
	pointsToUse int,
	freeDeliveryGift bool,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:             Pending,
		loyaltyGiftClaimed: freeDeliveryGift,
		createdAt:          now,
		updatedAt:          now,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setMember(memberID, franchiseName),
		o.setItems(items),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}
	if err := o.setLoyaltyPoints(pointsToUse); err != nil {
		return nil, err
	}

	o.changes = append(o.changes, StatusChange{
		From:      Unknown,
		To:        Pending,
		ActorID:   memberID,
		ActorRole: kernel.RoleFranchise,
		At:        now,
	})
	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID                 kernel.UUID
	MemberID           kernel.UUID
	FranchiseName      string
	Items              []Item
	ShippingAddress    kernel.Address
	DeliveryFee        *kernel.Money
	LoyaltyPointsUsed  int
	LoyaltyGiftClaimed bool
	Status             Status
	TrackingNumber     string
	AdminNotes         string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreOrder rebuilds an order from storage, re-checking every invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		loyaltyGiftClaimed: s.LoyaltyGiftClaimed,
		trackingNumber:     s.TrackingNumber,
		adminNotes:         s.AdminNotes,
		version:            s.Version,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		isConstructed:      true,
	}

	var feeErr error
	if s.DeliveryFee != nil {
		feeErr = s.DeliveryFee.Validate()
		fee := *s.DeliveryFee
		o.deliveryFee = &fee
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setMember(s.MemberID, s.FranchiseName),
		o.setItems(s.Items),
		o.setAddress(s.ShippingAddress),
		s.Status.Validate(),
		feeErr,
	); err != nil {
		return nil, err
	}
	if err := o.setLoyaltyPoints(s.LoyaltyPointsUsed); err != nil {
		return nil, err
	}

	o.status = s.Status
	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) MemberID() kernel.UUID           { return o.memberID }
func (o *Order) FranchiseName() string           { return o.franchiseName }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) LoyaltyPointsUsed() int          { return o.loyaltyPointsUsed }
func (o *Order) LoyaltyGiftClaimed() bool        { return o.loyaltyGiftClaimed }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) TrackingNumber() string          { return o.trackingNumber }
func (o *Order) AdminNotes() string              { return o.adminNotes }
func (o *Order) Version() int                    { return o.version }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveryFee returns the fee set at confirmation, or nil while the order is pending.
func (o *Order) DeliveryFee() *kernel.Money {
	if o.deliveryFee == nil {
		return nil
	}
	fee := *o.deliveryFee
	return &fee
}

// Subtotal is the sum of the line totals.
func (o *Order) Subtotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// EffectiveDeliveryFee is zero while unset or when a free-delivery gift was applied.
func (o *Order) EffectiveDeliveryFee() kernel.Money {
	if o.loyaltyGiftClaimed || o.deliveryFee == nil {
		return kernel.ZeroMoney()
	}
	return *o.deliveryFee
}

// LoyaltyDiscount converts the redeemed points to money, one unit per point.
func (o *Order) LoyaltyDiscount() kernel.Money {
	discount, _ := kernel.MoneyFromInt(int64(o.loyaltyPointsUsed))
	return discount
}

// PreDiscountTotal is the subtotal plus the effective delivery fee. Loyalty accrual is
// evaluated against this amount.
func (o *Order) PreDiscountTotal() kernel.Money {
	return o.Subtotal().Add(o.EffectiveDeliveryFee())
}

// TotalAmount is the amount charged through the payment gateway.
func (o *Order) TotalAmount() kernel.Money {
	total, err := o.PreDiscountTotal().Sub(o.LoyaltyDiscount())
	if err != nil {
		// unreachable: setLoyaltyPoints caps the discount at the subtotal
		return kernel.ZeroMoney()
	}
	return total
}

// Confirm sets the delivery fee and moves a pending order to Confirmed.
//
// The fee must be a constructed, non-negative amount. When a free-delivery gift was
// applied the stored fee is zero regardless of the requested fee.
func (o *Order) Confirm(actor kernel.Actor, fee kernel.Money, notes string) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	if o.loyaltyGiftClaimed {
		fee = kernel.ZeroMoney()
	}
	if err := o.transition(actor, Confirmed, strings.TrimSpace(notes)); err != nil {
		return err
	}

	o.deliveryFee = &fee
	o.adminNotes = strings.TrimSpace(notes)
	return nil
}

// BeginPayment parks the order in PaymentPending while a gateway checkout is open.
// Starting a new checkout from PaymentPending is allowed.
func (o *Order) BeginPayment(actor kernel.Actor) error {
	return o.transition(actor, PaymentPending, "checkout started")
}

// ValidateBeginPayment reports whether BeginPayment would succeed, without side effects.
func (o *Order) ValidateBeginPayment(actor kernel.Actor) error {
	if err := o.authorize(actor); err != nil {
		return err
	}
	return o.status.ValidateTransition(PaymentPending, actor.Role)
}

// MarkPaid records a verified payment. Only the system actor may do this.
func (o *Order) MarkPaid(actor kernel.Actor, paymentID string) error {
	return o.transition(actor, Paid, "payment "+paymentID)
}

// StartPacking moves a paid order to Packing.
func (o *Order) StartPacking(actor kernel.Actor) error {
	return o.transition(actor, Packing, "")
}

// Ship moves a packing order to Shipped. checklistComplete must report that every
// checklist entry of the order is packed.
func (o *Order) Ship(actor kernel.Actor, trackingNumber string, checklistComplete bool) error {
	if err := o.status.ValidateTransition(Shipped, actor.Role); err != nil {
		return err
	}
	if !checklistComplete {
		return errs.NewConflictErrorWithCause("ship order "+o.id.String(), ErrChecklistIncomplete)
	}
	if err := o.transition(actor, Shipped, strings.TrimSpace(trackingNumber)); err != nil {
		return err
	}

	o.trackingNumber = strings.TrimSpace(trackingNumber)
	return nil
}

// Deliver marks the order Delivered. The caller evaluates loyalty accrual afterwards.
func (o *Order) Deliver(actor kernel.Actor) error {
	return o.transition(actor, Delivered, "")
}

// Cancel moves the order to Cancelled.
//
// Pending orders may be cancelled by their member or by staff. Once confirmed, staff must
// pass override=true; the system actor (payment expiry) needs no override. Paid and later
// orders cannot be cancelled.
func (o *Order) Cancel(actor kernel.Actor, override bool, reason string) error {
	if o.status != Pending && actor.Role != kernel.RoleSystem && !override {
		if err := o.status.ValidateTransition(Cancelled, actor.Role); err != nil {
			return err
		}
		return errs.NewConflictErrorWithCause("cancel order "+o.id.String(),
			fmt.Errorf("cancelling a %s order requires an administrative override", o.status))
	}
	return o.transition(actor, Cancelled, strings.TrimSpace(reason))
}

// StatusChanges returns transitions not yet written to the audit trail.
func (o *Order) StatusChanges() []StatusChange {
	changes := make([]StatusChange, len(o.changes))
	copy(changes, o.changes)
	return changes
}

// MarkPersisted is called by the repository after a successful write: it clears the
// pending audit rows and advances the version token.
func (o *Order) MarkPersisted(version int) {
	o.changes = nil
	o.version = version
}

func (o *Order) transition(actor kernel.Actor, to Status, note string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.authorize(actor); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(to, actor.Role); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.changes = append(o.changes, StatusChange{
		From:      o.status,
		To:        to,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Note:      note,
		At:        now,
	})
	o.status = to
	o.updatedAt = now
	return nil
}

// authorize rejects franchise actors acting on another member's order.
func (o *Order) authorize(actor kernel.Actor) error {
	if actor.Role == kernel.RoleFranchise && !actor.Owns(o.memberID) {
		return errs.NewForbiddenErrorWithCause("act on order "+o.id.String(),
			errors.New("order belongs to another member"))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setMember(memberID kernel.UUID, franchiseName string) error {
	if err := memberID.Validate(); err != nil {
		return err
	}
	franchiseName = strings.TrimSpace(franchiseName)
	if franchiseName == "" {
		return errs.NewValueIsRequiredError("franchiseName")
	}
	o.memberID = memberID
	o.franchiseName = franchiseName
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ItemID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s appears on more than one line", item.ItemID()))
		}
		seen[item.ItemID()] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

// setLoyaltyPoints must run after setItems: the discount is capped at the subtotal.
func (o *Order) setLoyaltyPoints(points int) error {
	if points < 0 {
		return errs.NewValueIsOutOfRangeError("loyaltyPointsToUse", points, 0, o.Subtotal().WholeUnits())
	}
	discount, err := kernel.MoneyFromInt(int64(points))
	if err != nil {
		return err
	}
	if !o.Subtotal().GreaterThanOrEqual(discount) {
		return errs.NewValueIsOutOfRangeError("loyaltyPointsToUse", points, 0, o.Subtotal().WholeUnits())
	}
	o.loyaltyPointsUsed = points
	return nil
}
