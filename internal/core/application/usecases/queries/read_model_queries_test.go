package queries_test

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/packing"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

func (suite *QueriesTestSuite) notify(payload notification.Payload, target *kernel.UUID, location string) *notification.Notification {
	n, err := notification.New(kernel.NewUUID(), payload, target, location)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.notifications.Add(context.Background(), n))
	return n
}

func (suite *QueriesTestSuite) TestGetNotifications_FollowsRoutingRules() {
	ctx := context.Background()
	newOrder := suite.notify(notification.NewOrderPayload{OrderID: "o-1", FranchiseName: "Chai Point Pune"}, nil, "")
	confirmed := suite.notify(notification.OrderConfirmedPayload{OrderID: "o-1", DeliveryFee: "120.00"}, &suite.pune.ID, "")
	local := suite.notify(notification.AnnouncementPayload{Headline: "Pune depot closed", Body: "Sunday only"}, nil, "Pune")
	global := suite.notify(notification.AnnouncementPayload{Headline: "Diwali stock", Body: "Order early"}, nil, "")

	handler := queries.NewGetNotificationsQueryHandler(suite.db, services.NewNotificationRouter())
	ids := func(viewer kernel.Actor) []kernel.UUID {
		query, err := queries.NewGetNotificationsQuery(viewer, false, 0)
		suite.Require().NoError(err)
		got, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		out := make([]kernel.UUID, 0, len(got))
		for _, v := range got {
			out = append(out, v.ID)
		}
		return out
	}

	suite.ElementsMatch([]kernel.UUID{confirmed.ID(), local.ID(), global.ID()}, ids(suite.pune))
	suite.ElementsMatch([]kernel.UUID{global.ID()}, ids(suite.mumbai))
	suite.ElementsMatch([]kernel.UUID{newOrder.ID(), local.ID(), global.ID()}, ids(suite.admin))
	suite.ElementsMatch([]kernel.UUID{newOrder.ID(), confirmed.ID(), local.ID(), global.ID()}, ids(suite.owner))
}

func (suite *QueriesTestSuite) TestGetNotifications_UnreadOnly() {
	ctx := context.Background()
	read := suite.notify(notification.AnnouncementPayload{Headline: "Old news", Body: "-"}, nil, "")
	unread := suite.notify(notification.AnnouncementPayload{Headline: "Fresh news", Body: "-"}, nil, "")
	seen := suite.notify(notification.OrderConfirmedPayload{OrderID: "o-1", DeliveryFee: "120.00"}, &suite.pune.ID, "")
	readAt := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.notifications.MarkReadBy(ctx, read, suite.pune.ID, readAt))
	suite.Require().True(seen.MarkRead(readAt))
	suite.Require().NoError(suite.notifications.MarkRead(ctx, seen))

	handler := queries.NewGetNotificationsQueryHandler(suite.db, services.NewNotificationRouter())
	list := func(viewer kernel.Actor, unreadOnly bool) []queries.NotificationView {
		query, err := queries.NewGetNotificationsQuery(viewer, unreadOnly, 10)
		suite.Require().NoError(err)
		got, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		return got
	}

	got := list(suite.pune, true)
	suite.Require().Len(got, 1)
	suite.Equal(unread.ID(), got[0].ID)
	suite.Equal("Fresh news", got[0].Title)
	suite.False(got[0].Read)

	for _, v := range list(suite.pune, false) {
		if v.ID == read.ID() {
			suite.True(v.Read)
			suite.Require().NotNil(v.ReadAt)
			suite.True(readAt.Equal(*v.ReadAt))
		}
	}

	// another member's receipt does not hide the broadcast
	others := list(suite.mumbai, true)
	ids := make([]kernel.UUID, 0, len(others))
	for _, v := range others {
		ids = append(ids, v.ID)
		suite.False(v.Read)
	}
	suite.ElementsMatch([]kernel.UUID{read.ID(), unread.ID()}, ids)
}

func (suite *QueriesTestSuite) TestGetLoyaltyAccount() {
	ctx := context.Background()
	handler := queries.NewGetLoyaltyAccountQueryHandler(suite.db)

	query, err := queries.NewGetLoyaltyAccountQuery(suite.pune.ID, suite.pune, 0)
	suite.Require().NoError(err)
	empty, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(0, empty.Balance)
	suite.Empty(empty.Transactions)

	account, err := suite.loyalty.GetOrCreateForUpdate(ctx, suite.pune.ID)
	suite.Require().NoError(err)
	_, err = account.Accrue(640, kernel.NewUUID(), "order delivered")
	suite.Require().NoError(err)
	_, _, err = account.ClaimGift(loyalty.FreeDelivery)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.loyalty.Save(ctx, account))

	got, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(140, got.Balance)
	suite.Equal(640, got.TotalEarned)
	suite.Equal(500, got.TotalRedeemed)
	suite.Require().Len(got.Transactions, 2)
	suite.Require().Len(got.Gifts, 1)
	suite.Equal(loyalty.FreeDelivery, got.Gifts[0].Type)
	suite.Nil(got.Gifts[0].UsedOnOrderID)
}

func (suite *QueriesTestSuite) TestGetLoyaltyAccount_FranchiseCannotReadOthers() {
	_, err := queries.NewGetLoyaltyAccountQuery(suite.mumbai.ID, suite.pune, 0)
	suite.ErrorIs(err, errs.ErrForbidden)

	_, err = queries.NewGetLoyaltyAccountQuery(suite.mumbai.ID, suite.admin, 0)
	suite.NoError(err)
}

func (suite *QueriesTestSuite) TestGetPackingChecklist_Progress() {
	ctx := context.Background()
	o := suite.placeOrder(suite.pune)
	entries, err := packing.EntriesFor(o)
	suite.Require().NoError(err)
	_, err = suite.packing.AddEntries(ctx, entries)
	suite.Require().NoError(err)

	handler := queries.NewGetPackingChecklistQueryHandler(suite.db)
	query, err := queries.NewGetPackingChecklistQuery(o.ID(), suite.admin)
	suite.Require().NoError(err)

	got, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(0, got.Packed)
	suite.Equal(2, got.Total)
	suite.False(got.AllPacked)

	for _, e := range entries {
		suite.Require().NoError(e.Toggle(suite.admin, true, time.Now()))
		suite.Require().NoError(suite.packing.UpdateEntry(ctx, e))
	}
	got, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(2, got.Packed)
	suite.True(got.AllPacked)
	suite.Require().NotNil(got.Entries[0].PackedBy)
	suite.Equal(suite.admin.ID, *got.Entries[0].PackedBy)

	other, err := queries.NewGetPackingChecklistQuery(o.ID(), suite.mumbai)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, other)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetInvoice_AccessAndExpiry() {
	ctx := context.Background()
	o := suite.placeOrder(suite.pune)
	created := time.Now().UTC().Add(-time.Hour)

	franchiseCopy, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), false, "text/html", []byte("<h1>Invoice</h1>"), created)
	suite.Require().NoError(err)
	adminCopy, err := invoice.NewInvoice(kernel.NewUUID(), o.ID(), true, "text/html", []byte("<h1>Admin</h1>"), created)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.invoices.Add(ctx, franchiseCopy))
	suite.Require().NoError(suite.invoices.Add(ctx, adminCopy))

	handler := queries.NewGetInvoiceQueryHandler(suite.db)
	get := func(id kernel.UUID, viewer kernel.Actor, now time.Time) (queries.InvoiceView, error) {
		query, err := queries.NewGetInvoiceQuery(id, viewer, now)
		suite.Require().NoError(err)
		return handler.Handle(ctx, query)
	}

	got, err := get(franchiseCopy.ID(), suite.pune, time.Now())
	suite.Require().NoError(err)
	suite.Equal("text/html", got.ContentType)
	suite.Equal([]byte("<h1>Invoice</h1>"), got.Content)

	_, err = get(franchiseCopy.ID(), suite.mumbai, time.Now())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = get(adminCopy.ID(), suite.pune, time.Now())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = get(adminCopy.ID(), suite.admin, time.Now())
	suite.NoError(err)

	// The admin copy lapses first.
	later := time.Now().Add(20 * 24 * time.Hour)
	_, err = get(adminCopy.ID(), suite.owner, later)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = get(franchiseCopy.ID(), suite.pune, later)
	suite.NoError(err)
}

func (suite *QueriesTestSuite) TestConstructors_RejectOutOfRangeLimits() {
	_, err := queries.NewGetNotificationsQuery(suite.admin, false, queries.MaxPageSize+1)
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)
	_, err = queries.NewListOrdersQuery(suite.admin, nil, 0, -1, 0)
	suite.Error(err)
	_, err = queries.NewGetStuckPaymentsQuery(-time.Minute, time.Now())
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)

	var zero queries.GetOrderQuery
	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), zero)
	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}
