package commands

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/packing"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

var ErrOutstandingOrderExists = errors.New("member already has an order awaiting payment")

// CreateOrderCommandHandler places orders.
//
// In one transaction it checks the member may order and has no order awaiting
// payment, prices the lines from the catalogue, debits redeemed loyalty points,
// consumes a free-delivery gift, stores the order with its packing checklist and
// notifies the staff.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns:
//   - ValueIsInvalidError if the member is not approved/verified, has no dashboard
//     access, an item is inactive, points exceed the subtotal or no gift is available
//   - ConflictError if the member has a confirmed or payment_pending order, or the
//     ledger balance does not cover the points
//   - ObjectNotFoundError for an unknown member or catalogue item
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MemberRepository().Get(ctx, cmd.MemberID())
	if err != nil {
		return err
	}
	if err = m.CanPlaceOrders(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	outstanding, err := orderRepo.CountOutstanding(ctx, m.ID(), nil)
	if err != nil {
		return err
	}
	if outstanding > 0 {
		return errs.NewConflictErrorWithCause("create order for member "+m.ID().String(), ErrOutstandingOrderExists)
	}

	items, err := h.priceLines(ctx, uow, cmd.Lines())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), m.ID(), m.FranchiseName(), items, cmd.Address(),
		cmd.PointsToUse(), cmd.FreeDeliveryGift())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	if err = h.spendLoyalty(ctx, uow, o); err != nil {
		return err
	}

	entries, err := packing.EntriesFor(o)
	if err != nil {
		return err
	}
	if _, err = uow.PackingRepository().AddEntries(ctx, entries); err != nil {
		return err
	}

	if err = notifier(ctx, uow.NotificationRepository())(services.OrderPlacedNotification(o)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) priceLines(ctx context.Context, uow OrderUoW, lines []OrderLine) ([]order.Item, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}

	catalogItems, err := uow.CatalogRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*catalog.Item, len(catalogItems))
	for _, item := range catalogItems {
		byID[item.ID()] = item
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, ok := byID[line.ItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("catalog item", line.ItemID.String())
		}
		if !item.Active() {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("%s is no longer available", item.Name()))
		}
		orderItem, err := order.NewItem(item.ID(), item.Name(), line.Quantity, item.UnitPrice())
		if err != nil {
			return nil, err
		}
		items = append(items, orderItem)
	}
	return items, nil
}

func (h CreateOrderCommandHandler) spendLoyalty(ctx context.Context, uow OrderUoW, o *order.Order) error {
	if o.LoyaltyPointsUsed() == 0 && !o.LoyaltyGiftClaimed() {
		return nil
	}

	ledger := uow.LoyaltyRepository()
	account, err := ledger.GetOrCreateForUpdate(ctx, o.MemberID())
	if err != nil {
		return err
	}

	if o.LoyaltyGiftClaimed() {
		gift, err := ledger.FindUnusedGift(ctx, account.ID(), loyalty.FreeDelivery)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewValueIsInvalidErrorWithCause("applyFreeDeliveryGift",
				errors.New("no unused free delivery gift"))
		}
		if err != nil {
			return err
		}
		if err = gift.ApplyTo(o.ID()); err != nil {
			return err
		}
		if err = ledger.UpdateGift(ctx, gift); err != nil {
			return err
		}
	}

	if o.LoyaltyPointsUsed() > 0 {
		if _, err = account.RedeemForOrder(o.LoyaltyPointsUsed(), o.ID()); err != nil {
			return err
		}
		if err = ledger.Save(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
