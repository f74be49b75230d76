package notification

import (
	"encoding/json"
	"fmt"

	"ordering/internal/pkg/errs"
)

// Type identifies the kind of event a notification reports.
type Type string

const (
	NewOrder            Type = "new_order"
	OrderConfirmed      Type = "order_confirmed"
	OrderStatusChanged  Type = "order_status_changed"
	OrderCancelled      Type = "order_cancelled"
	PaymentReceived     Type = "payment_received"
	PackingCompleted    Type = "packing_completed"
	LoyaltyPointsEarned Type = "loyalty_points_earned"
	LoyaltyGiftClaimed  Type = "loyalty_gift_claimed"
	Announcement        Type = "announcement"
)

// AllTypes lists every notification type.
func AllTypes() []Type {
	return []Type{
		NewOrder, OrderConfirmed, OrderStatusChanged, OrderCancelled, PaymentReceived,
		PackingCompleted, LoyaltyPointsEarned, LoyaltyGiftClaimed, Announcement,
	}
}

func (t Type) Validate() error {
	for _, known := range AllTypes() {
		if t == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("notificationType", fmt.Errorf("%q is not a notification type", string(t)))
}

// Payload is the typed body of a notification. Each Type has exactly one payload struct.
type Payload interface {
	Type() Type
	Title() string
	Message() string
}

type NewOrderPayload struct {
	OrderID       string `json:"order_id"`
	MemberID      string `json:"member_id"`
	FranchiseName string `json:"franchise_name"`
	TotalAmount   string `json:"total_amount"`
	ItemCount     int    `json:"item_count"`
}

func (NewOrderPayload) Type() Type    { return NewOrder }
func (NewOrderPayload) Title() string { return "New order received" }
func (p NewOrderPayload) Message() string {
	return fmt.Sprintf("%s placed an order of %d items totalling %s", p.FranchiseName, p.ItemCount, p.TotalAmount)
}

type OrderConfirmedPayload struct {
	OrderID     string `json:"order_id"`
	DeliveryFee string `json:"delivery_fee"`
	TotalAmount string `json:"total_amount"`
}

func (OrderConfirmedPayload) Type() Type    { return OrderConfirmed }
func (OrderConfirmedPayload) Title() string { return "Order confirmed" }
func (p OrderConfirmedPayload) Message() string {
	return fmt.Sprintf("Your order was confirmed with a delivery fee of %s. Amount due: %s", p.DeliveryFee, p.TotalAmount)
}

type OrderStatusChangedPayload struct {
	OrderID        string `json:"order_id"`
	From           string `json:"from"`
	To             string `json:"to"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func (OrderStatusChangedPayload) Type() Type    { return OrderStatusChanged }
func (OrderStatusChangedPayload) Title() string { return "Order status updated" }
func (p OrderStatusChangedPayload) Message() string {
	if p.TrackingNumber != "" {
		return fmt.Sprintf("Your order is now %s (tracking number %s)", p.To, p.TrackingNumber)
	}
	return fmt.Sprintf("Your order is now %s", p.To)
}

type OrderCancelledPayload struct {
	OrderID       string `json:"order_id"`
	FranchiseName string `json:"franchise_name"`
	CancelledBy   string `json:"cancelled_by"`
	Reason        string `json:"reason,omitempty"`
}

func (OrderCancelledPayload) Type() Type    { return OrderCancelled }
func (OrderCancelledPayload) Title() string { return "Order cancelled" }
func (p OrderCancelledPayload) Message() string {
	if p.Reason == "" {
		return fmt.Sprintf("Order of %s was cancelled by %s", p.FranchiseName, p.CancelledBy)
	}
	return fmt.Sprintf("Order of %s was cancelled by %s: %s", p.FranchiseName, p.CancelledBy, p.Reason)
}

type PaymentReceivedPayload struct {
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	FranchiseName string `json:"franchise_name"`
	Amount        string `json:"amount"`
}

func (PaymentReceivedPayload) Type() Type    { return PaymentReceived }
func (PaymentReceivedPayload) Title() string { return "Payment received" }
func (p PaymentReceivedPayload) Message() string {
	return fmt.Sprintf("%s paid %s", p.FranchiseName, p.Amount)
}

type PackingCompletedPayload struct {
	OrderID       string `json:"order_id"`
	FranchiseName string `json:"franchise_name"`
	ItemCount     int    `json:"item_count"`
}

func (PackingCompletedPayload) Type() Type    { return PackingCompleted }
func (PackingCompletedPayload) Title() string { return "Order packed" }
func (p PackingCompletedPayload) Message() string {
	return fmt.Sprintf("All %d items of the %s order are packed and ready to ship", p.ItemCount, p.FranchiseName)
}

type LoyaltyPointsEarnedPayload struct {
	OrderID string `json:"order_id"`
	Points  int    `json:"points"`
	Balance int    `json:"balance"`
}

func (LoyaltyPointsEarnedPayload) Type() Type    { return LoyaltyPointsEarned }
func (LoyaltyPointsEarnedPayload) Title() string { return "Loyalty points earned" }
func (p LoyaltyPointsEarnedPayload) Message() string {
	return fmt.Sprintf("You earned %d points. Your balance is %d", p.Points, p.Balance)
}

type LoyaltyGiftClaimedPayload struct {
	MemberID      string `json:"member_id"`
	FranchiseName string `json:"franchise_name"`
	GiftType      string `json:"gift_type"`
	Balance       int    `json:"balance"`
}

func (LoyaltyGiftClaimedPayload) Type() Type    { return LoyaltyGiftClaimed }
func (LoyaltyGiftClaimedPayload) Title() string { return "Loyalty gift claimed" }
func (p LoyaltyGiftClaimedPayload) Message() string {
	return fmt.Sprintf("%s claimed a %s gift", p.FranchiseName, p.GiftType)
}

type AnnouncementPayload struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

func (AnnouncementPayload) Type() Type        { return Announcement }
func (p AnnouncementPayload) Title() string   { return p.Headline }
func (p AnnouncementPayload) Message() string { return p.Body }

// EncodePayload serializes the payload for the data column.
func EncodePayload(p Payload) ([]byte, error) {
	return json.Marshal(p)
}

// DecodePayload restores the concrete payload struct of t from its JSON form.
func DecodePayload(t Type, data []byte) (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch t {
	case NewOrder:
		p, err = decode[NewOrderPayload](data)
	case OrderConfirmed:
		p, err = decode[OrderConfirmedPayload](data)
	case OrderStatusChanged:
		p, err = decode[OrderStatusChangedPayload](data)
	case OrderCancelled:
		p, err = decode[OrderCancelledPayload](data)
	case PaymentReceived:
		p, err = decode[PaymentReceivedPayload](data)
	case PackingCompleted:
		p, err = decode[PackingCompletedPayload](data)
	case LoyaltyPointsEarned:
		p, err = decode[LoyaltyPointsEarnedPayload](data)
	case LoyaltyGiftClaimed:
		p, err = decode[LoyaltyGiftClaimedPayload](data)
	case Announcement:
		p, err = decode[AnnouncementPayload](data)
	default:
		return nil, t.Validate()
	}
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("notificationData", err)
	}
	return p, nil
}

func decode[T Payload](data []byte) (Payload, error) {
	var p T
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}
