package changefeed

import (
	"encoding/json"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/packing"
)

type OrderData struct {
	MemberID    string `json:"member_id"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
	Version     int    `json:"version"`
}

type NotificationData struct {
	Type         notification.Type `json:"type"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	TargetUserID *string           `json:"target_user_id,omitempty"`
	Location     string            `json:"location,omitempty"`
	Payload      json.RawMessage   `json:"data"`
	CreatedAt    time.Time         `json:"created_at"`
}

type PackingData struct {
	OrderID string `json:"order_id"`
	ItemID  string `json:"item_id"`
	Packed  bool   `json:"packed"`
}

type LoyaltyData struct {
	MemberID string `json:"member_id"`
	Balance  int    `json:"balance"`
}

// EventFor describes a committed aggregate. Aggregates without observers report false.
func EventFor(aggregate any, at time.Time) (Event, bool, error) {
	var (
		topic Topic
		id    string
		data  any
	)
	switch a := aggregate.(type) {
	case *order.Order:
		topic = Topic{Entity: EntityOrder, Scope: a.MemberID().String()}
		id = a.ID().String()
		data = OrderData{
			MemberID:    a.MemberID().String(),
			Status:      a.Status().String(),
			TotalAmount: a.TotalAmount().String(),
			Version:     a.Version(),
		}
	case *notification.Notification:
		payload, err := notification.EncodePayload(a.Payload())
		if err != nil {
			return Event{}, false, err
		}
		nd := NotificationData{
			Type:      a.Type(),
			Title:     a.Title(),
			Message:   a.Message(),
			Location:  a.Location(),
			Payload:   payload,
			CreatedAt: a.CreatedAt(),
		}
		topic = All(EntityNotification)
		if target := a.TargetUserID(); target != nil {
			s := target.String()
			nd.TargetUserID = &s
			topic.Scope = s
		}
		id = a.ID().String()
		data = nd
	case *packing.Entry:
		topic = Topic{Entity: EntityPacking, Scope: a.OrderID().String()}
		id = a.ID().String()
		data = PackingData{OrderID: a.OrderID().String(), ItemID: a.ItemID().String(), Packed: a.Packed()}
	case *loyalty.Account:
		topic = Topic{Entity: EntityLoyalty, Scope: a.MemberID().String()}
		id = a.ID().String()
		data = LoyaltyData{MemberID: a.MemberID().String(), Balance: a.Balance()}
	default:
		return Event{}, false, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, false, err
	}
	return Event{Topic: topic, ID: id, Data: raw, At: at.UTC()}, true, nil
}

// Notification rebuilds the notification carried by a notification event so that it
// can be routed like a stored one.
func (e Event) Notification() (*notification.Notification, error) {
	if e.Topic.Entity != EntityNotification {
		return nil, errors.New("not a notification event")
	}
	var nd NotificationData
	if err := json.Unmarshal(e.Data, &nd); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, err
	}
	var target *kernel.UUID
	if nd.TargetUserID != nil {
		t, targetErr := kernel.UUIDFromString(*nd.TargetUserID)
		if targetErr != nil {
			return nil, targetErr
		}
		target = &t
	}
	payload, err := notification.DecodePayload(nd.Type, nd.Payload)
	if err != nil {
		return nil, err
	}
	return notification.Restore(id, payload, target, nd.Location, false, nil, nd.CreatedAt)
}
