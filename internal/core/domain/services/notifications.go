package services

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
)

// The functions below compose the notifications emitted by the order lifecycle and the
// loyalty ledger. Staff-facing events are broadcasts; member-facing events target the
// member of the order.

func OrderPlacedNotification(o *order.Order) (*notification.Notification, error) {
	return notification.New(kernel.NewUUID(), notification.NewOrderPayload{
		OrderID:       o.ID().String(),
		MemberID:      o.MemberID().String(),
		FranchiseName: o.FranchiseName(),
		TotalAmount:   o.TotalAmount().String(),
		ItemCount:     len(o.Items()),
	}, nil, "")
}

func OrderConfirmedNotification(o *order.Order) (*notification.Notification, error) {
	target := o.MemberID()
	return notification.New(kernel.NewUUID(), notification.OrderConfirmedPayload{
		OrderID:     o.ID().String(),
		DeliveryFee: o.EffectiveDeliveryFee().String(),
		TotalAmount: o.TotalAmount().String(),
	}, &target, "")
}

// OrderStatusNotification tells the member that the order moved from `from` to its
// current status.
func OrderStatusNotification(o *order.Order, from order.Status) (*notification.Notification, error) {
	target := o.MemberID()
	return notification.New(kernel.NewUUID(), notification.OrderStatusChangedPayload{
		OrderID:        o.ID().String(),
		From:           from.String(),
		To:             o.Status().String(),
		TrackingNumber: o.TrackingNumber(),
	}, &target, "")
}

// OrderCancelledNotification informs the member when someone else cancelled the order,
// and the staff when the member cancelled it.
func OrderCancelledNotification(o *order.Order, actor kernel.Actor, reason string) (*notification.Notification, error) {
	payload := notification.OrderCancelledPayload{
		OrderID:       o.ID().String(),
		FranchiseName: o.FranchiseName(),
		CancelledBy:   actor.Role.String(),
		Reason:        reason,
	}
	if actor.Owns(o.MemberID()) {
		return notification.New(kernel.NewUUID(), payload, nil, "")
	}
	target := o.MemberID()
	return notification.New(kernel.NewUUID(), payload, &target, "")
}

// PaymentReceivedNotification is a staff broadcast. The member learns about the payment
// from the order_status_changed notification written in the same transaction.
func PaymentReceivedNotification(o *order.Order, record *payment.Record) (*notification.Notification, error) {
	return notification.New(kernel.NewUUID(), notification.PaymentReceivedPayload{
		OrderID:       o.ID().String(),
		PaymentID:     record.PaymentID(),
		FranchiseName: o.FranchiseName(),
		Amount:        record.Amount().String(),
	}, nil, "")
}

func PackingCompletedNotification(o *order.Order) (*notification.Notification, error) {
	return notification.New(kernel.NewUUID(), notification.PackingCompletedPayload{
		OrderID:       o.ID().String(),
		FranchiseName: o.FranchiseName(),
		ItemCount:     len(o.Items()),
	}, nil, "")
}

func PointsEarnedNotification(o *order.Order, account *loyalty.Account, points int) (*notification.Notification, error) {
	target := o.MemberID()
	return notification.New(kernel.NewUUID(), notification.LoyaltyPointsEarnedPayload{
		OrderID: o.ID().String(),
		Points:  points,
		Balance: account.Balance(),
	}, &target, "")
}

func GiftClaimedNotification(m *member.Member, account *loyalty.Account, gift *loyalty.Gift) (*notification.Notification, error) {
	return notification.New(kernel.NewUUID(), notification.LoyaltyGiftClaimedPayload{
		MemberID:      m.ID().String(),
		FranchiseName: m.FranchiseName(),
		GiftType:      gift.Type().String(),
		Balance:       account.Balance(),
	}, nil, "")
}

// AnnouncementNotification broadcasts to everyone, or to one franchise location.
func AnnouncementNotification(headline, body, location string) (*notification.Notification, error) {
	return notification.New(kernel.NewUUID(), notification.AnnouncementPayload{
		Headline: headline,
		Body:     body,
	}, nil, location)
}
