package http

import (
	"encoding/json"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
)

type addressJSON struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone,omitempty"`
}

type newOrderRequest struct {
	MemberID *string `json:"member_id"`
	Items    []struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	ShippingAddress       addressJSON `json:"shipping_address"`
	LoyaltyPointsToUse    int         `json:"loyalty_points_to_use"`
	ApplyFreeDeliveryGift bool        `json:"apply_free_delivery_gift"`
}

type confirmOrderRequest struct {
	DeliveryFee string `json:"delivery_fee"`
	AdminNotes  string `json:"admin_notes"`
}

type cancelOrderRequest struct {
	Reason   string `json:"reason"`
	Override bool   `json:"override"`
}

type shipOrderRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

type togglePackedRequest struct {
	Packed bool `json:"packed"`
}

type generateInvoiceRequest struct {
	GenerateForAdmin bool `json:"generate_for_admin"`
}

type paymentCallbackRequest struct {
	GatewayOrderID string `json:"gateway_order_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
	OrderID        string `json:"order_id"`
	Amount         string `json:"amount"`
}

type memberStatusRequest struct {
	Status                 string `json:"status"`
	DashboardAccessEnabled bool   `json:"dashboard_access_enabled"`
}

type claimGiftRequest struct {
	GiftType string `json:"gift_type"`
}

type announcementRequest struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	Location string `json:"location"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type verificationResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

type orderItemJSON struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}

type orderJSON struct {
	ID                 string          `json:"id"`
	MemberID           string          `json:"member_id"`
	FranchiseName      string          `json:"franchise_name"`
	Status             string          `json:"status"`
	ShippingAddress    addressJSON     `json:"shipping_address"`
	DeliveryFee        *string         `json:"delivery_fee"`
	TotalAmount        string          `json:"total_amount"`
	LoyaltyPointsUsed  int             `json:"loyalty_points_used"`
	LoyaltyGiftClaimed bool            `json:"loyalty_gift_claimed"`
	TrackingNumber     string          `json:"tracking_number,omitempty"`
	AdminNotes         string          `json:"admin_notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Items              []orderItemJSON `json:"items,omitempty"`
}

type statusChangeJSON struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}

type orderDetailsJSON struct {
	Order   orderJSON          `json:"order"`
	History []statusChangeJSON `json:"history"`
}

// toOrderJSON hides admin notes from franchise viewers.
func toOrderJSON(v queries.OrderView, viewer kernel.Actor) orderJSON {
	out := orderJSON{
		ID:            v.ID.String(),
		MemberID:      v.MemberID.String(),
		FranchiseName: v.FranchiseName,
		Status:        v.Status.String(),
		ShippingAddress: addressJSON{
			Line1:      v.ShippingAddress.Line1,
			Line2:      v.ShippingAddress.Line2,
			City:       v.ShippingAddress.City,
			PostalCode: v.ShippingAddress.PostalCode,
			Phone:      v.ShippingAddress.Phone,
		},
		TotalAmount:        v.TotalAmount.String(),
		LoyaltyPointsUsed:  v.LoyaltyPointsUsed,
		LoyaltyGiftClaimed: v.LoyaltyGiftClaimed,
		TrackingNumber:     v.TrackingNumber,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if v.DeliveryFee != nil {
		fee := v.DeliveryFee.String()
		out.DeliveryFee = &fee
	}
	if viewer.Role.IsStaff() {
		out.AdminNotes = v.AdminNotes
	}
	for _, item := range v.Items {
		out.Items = append(out.Items, orderItemJSON{
			ItemID:     item.ItemID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
			TotalPrice: item.TotalPrice.String(),
		})
	}
	return out
}

func toOrderDetailsJSON(r queries.GetOrderQueryResponse, viewer kernel.Actor) orderDetailsJSON {
	out := orderDetailsJSON{Order: toOrderJSON(r.Order, viewer), History: make([]statusChangeJSON, 0, len(r.History))}
	for _, h := range r.History {
		out.History = append(out.History, statusChangeJSON{
			From:      h.From,
			To:        h.To,
			ActorID:   h.ActorID.String(),
			ActorRole: h.ActorRole,
			Note:      h.Note,
			At:        h.At,
		})
	}
	return out
}

type checkoutJSON struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

type packingProgressJSON struct {
	Packed    int  `json:"packed"`
	Total     int  `json:"total"`
	AllPacked bool `json:"all_packed"`
}

type packingEntryJSON struct {
	ID       string     `json:"id"`
	ItemID   string     `json:"item_id"`
	ItemName string     `json:"item_name"`
	Quantity int        `json:"quantity"`
	Packed   bool       `json:"packed"`
	PackedBy *string    `json:"packed_by,omitempty"`
	PackedAt *time.Time `json:"packed_at,omitempty"`
}

type packingChecklistJSON struct {
	OrderID     string             `json:"order_id"`
	OrderStatus string             `json:"order_status"`
	Entries     []packingEntryJSON `json:"entries"`
	packingProgressJSON
}

func toPackingChecklistJSON(v queries.PackingChecklistView) packingChecklistJSON {
	out := packingChecklistJSON{
		OrderID:             v.OrderID.String(),
		OrderStatus:         v.OrderStatus.String(),
		Entries:             make([]packingEntryJSON, 0, len(v.Entries)),
		packingProgressJSON: packingProgressJSON{Packed: v.Packed, Total: v.Total, AllPacked: v.AllPacked},
	}
	for _, e := range v.Entries {
		out.Entries = append(out.Entries, packingEntryJSON{
			ID:       e.ID.String(),
			ItemID:   e.ItemID.String(),
			ItemName: e.ItemName,
			Quantity: e.Quantity,
			Packed:   e.Packed,
			PackedBy: optionalString(e.PackedBy),
			PackedAt: e.PackedAt,
		})
	}
	return out
}

type invoiceRefJSON struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type loyaltyTransactionJSON struct {
	ID          string    `json:"id"`
	Points      int       `json:"points"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	OrderID     *string   `json:"order_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type loyaltyGiftJSON struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	PointsUsed    int       `json:"points_used"`
	UsedOnOrderID *string   `json:"used_on_order_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type loyaltyAccountJSON struct {
	MemberID      string                   `json:"member_id"`
	Balance       int                      `json:"balance"`
	TotalEarned   int                      `json:"total_earned"`
	TotalRedeemed int                      `json:"total_redeemed"`
	Transactions  []loyaltyTransactionJSON `json:"transactions"`
	Gifts         []loyaltyGiftJSON        `json:"gifts"`
}

func toLoyaltyAccountJSON(v queries.LoyaltyAccountView) loyaltyAccountJSON {
	out := loyaltyAccountJSON{
		MemberID:      v.MemberID.String(),
		Balance:       v.Balance,
		TotalEarned:   v.TotalEarned,
		TotalRedeemed: v.TotalRedeemed,
		Transactions:  make([]loyaltyTransactionJSON, 0, len(v.Transactions)),
		Gifts:         make([]loyaltyGiftJSON, 0, len(v.Gifts)),
	}
	for _, t := range v.Transactions {
		out.Transactions = append(out.Transactions, loyaltyTransactionJSON{
			ID:          t.ID.String(),
			Points:      t.Points,
			Kind:        t.Kind.String(),
			Description: t.Description,
			OrderID:     optionalString(t.OrderID),
			CreatedAt:   t.CreatedAt,
		})
	}
	for _, g := range v.Gifts {
		out.Gifts = append(out.Gifts, loyaltyGiftJSON{
			ID:            g.ID.String(),
			Type:          g.Type.String(),
			PointsUsed:    g.PointsUsed,
			UsedOnOrderID: optionalString(g.UsedOnOrderID),
			CreatedAt:     g.CreatedAt,
		})
	}
	return out
}

type notificationJSON struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Title        string          `json:"title"`
	Message      string          `json:"message"`
	TargetUserID *string         `json:"target_user_id,omitempty"`
	Location     string          `json:"location,omitempty"`
	Data         json.RawMessage `json:"data"`
	Read         bool            `json:"read"`
	ReadAt       *time.Time      `json:"read_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toNotificationJSON(v queries.NotificationView) notificationJSON {
	return notificationJSON{
		ID:           v.ID.String(),
		Type:         string(v.Type),
		Title:        v.Title,
		Message:      v.Message,
		TargetUserID: optionalString(v.TargetUserID),
		Location:     v.Location,
		Data:         v.Data,
		Read:         v.Read,
		ReadAt:       v.ReadAt,
		CreatedAt:    v.CreatedAt,
	}
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
