package queries_test

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

func (suite *QueriesTestSuite) TestGetOrder_ReturnsLinesAndHistory() {
	ctx := context.Background()
	o := suite.placeOrder(suite.pune)
	suite.confirm(o)

	query, err := queries.NewGetOrderQuery(o.ID(), suite.pune)
	suite.Require().NoError(err)
	got, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	view := got.Order
	suite.Equal(o.ID(), view.ID)
	suite.Equal(order.Confirmed, view.Status)
	suite.Require().NotNil(view.DeliveryFee)
	suite.Equal("120.00", view.DeliveryFee.String())
	suite.Equal("1120.00", view.TotalAmount.String())
	suite.Equal("leave at the back gate", view.AdminNotes)
	suite.Equal("Pune", view.ShippingAddress.City)
	suite.Require().Len(view.Items, 2)
	suite.Equal("Assam CTC 1kg", view.Items[0].Name)
	suite.Equal("900.00", view.Items[0].TotalPrice.String())

	suite.Require().Len(got.History, 2)
	suite.Empty(got.History[0].From)
	suite.Equal("pending", got.History[1].From)
	suite.Equal("confirmed", got.History[1].To)
	suite.Equal(suite.admin.ID, got.History[1].ActorID)
}

func (suite *QueriesTestSuite) TestGetOrder_OtherMembersOrderIsNotFound() {
	o := suite.placeOrder(suite.pune)

	query, err := queries.NewGetOrderQuery(o.ID(), suite.mumbai)
	suite.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetOrder_Unknown() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), suite.admin)
	suite.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestListOrders_ScopesFranchiseToOwnOrders() {
	ctx := context.Background()
	handler := queries.NewListOrdersQueryHandler(suite.db)
	mine := suite.placeOrder(suite.pune)
	theirs := suite.placeOrder(suite.mumbai)
	suite.confirm(theirs)

	// A franchise filter on someone else is overridden by the viewer's own ID.
	query, err := queries.NewListOrdersQuery(suite.pune, &suite.mumbai.ID, order.Unknown, 0, 0)
	suite.Require().NoError(err)
	got, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(mine.ID(), got[0].ID)

	query, err = queries.NewListOrdersQuery(suite.admin, nil, order.Unknown, 0, 0)
	suite.Require().NoError(err)
	got, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(got, 2)

	query, err = queries.NewListOrdersQuery(suite.owner, nil, order.Confirmed, 0, 0)
	suite.Require().NoError(err)
	got, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(theirs.ID(), got[0].ID)
}

func (suite *QueriesTestSuite) TestListOrders_Paging() {
	ctx := context.Background()
	for range 3 {
		suite.placeOrder(suite.pune)
	}

	query, err := queries.NewListOrdersQuery(suite.admin, nil, order.Unknown, 2, 2)
	suite.Require().NoError(err)
	got, err := queries.NewListOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func (suite *QueriesTestSuite) TestGetStuckPayments_ListsParkedCheckouts() {
	ctx := context.Background()
	parked := suite.placeOrder(suite.pune)
	suite.confirm(parked)
	suite.Require().NoError(parked.BeginPayment(suite.pune))
	suite.Require().NoError(suite.orders.Update(ctx, parked))
	for _, gw := range []string{"order_gw_1", "order_gw_2"} {
		record, err := payment.NewRecord(kernel.NewUUID(), parked.ID(), gw, parked.TotalAmount())
		suite.Require().NoError(err)
		suite.Require().NoError(suite.payments.Add(ctx, record))
		time.Sleep(5 * time.Millisecond)
	}
	suite.confirm(suite.placeOrder(suite.mumbai))

	query, err := queries.NewGetStuckPaymentsQuery(0, time.Now().Add(time.Hour))
	suite.Require().NoError(err)
	got, err := queries.NewGetStuckPaymentsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(parked.ID(), got[0].OrderID)
	suite.Equal("order_gw_2", got[0].GatewayOrderID)
	suite.Equal(2, got[0].PendingRecords)
	suite.Equal("1120.00", got[0].TotalAmount.String())

	query, err = queries.NewGetStuckPaymentsQuery(48*time.Hour, time.Now())
	suite.Require().NoError(err)
	got, err = queries.NewGetStuckPaymentsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(got)
}
