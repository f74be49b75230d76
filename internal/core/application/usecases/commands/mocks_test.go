package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/packing"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberRepository struct{ mock.Mock }

func (m *MockMemberRepository) Add(ctx context.Context, a *member.Member) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, a *member.Member) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockMemberRepository) Get(ctx context.Context, id kernel.UUID) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Add(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCatalogRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountOutstanding(ctx context.Context, memberID kernel.UUID, excludeID *kernel.UUID) (int64, error) {
	args := m.Called(ctx, memberID, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ListStale(ctx context.Context, status order.Status, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, status, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPackingRepository struct{ mock.Mock }

func (m *MockPackingRepository) AddEntries(ctx context.Context, entries []*packing.Entry) (int64, error) {
	args := m.Called(ctx, entries)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPackingRepository) GetChecklistForUpdate(ctx context.Context, orderID kernel.UUID) (*packing.Checklist, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packing.Checklist), args.Error(1)
}

func (m *MockPackingRepository) UpdateEntry(ctx context.Context, entry *packing.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

type MockLoyaltyRepository struct{ mock.Mock }

func (m *MockLoyaltyRepository) GetOrCreateForUpdate(ctx context.Context, memberID kernel.UUID) (*loyalty.Account, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Account), args.Error(1)
}

func (m *MockLoyaltyRepository) Save(ctx context.Context, account *loyalty.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockLoyaltyRepository) FindUnusedGift(ctx context.Context, accountID kernel.UUID, giftType loyalty.GiftType) (*loyalty.Gift, error) {
	args := m.Called(ctx, accountID, giftType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Gift), args.Error(1)
}

func (m *MockLoyaltyRepository) FindGiftUsedOnOrder(ctx context.Context, orderID kernel.UUID) (*loyalty.Gift, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Gift), args.Error(1)
}

func (m *MockLoyaltyRepository) UpdateGift(ctx context.Context, gift *loyalty.Gift) error {
	return m.Called(ctx, gift).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) MarkReadBy(
	ctx context.Context,
	n *notification.Notification,
	viewerID kernel.UUID,
	at time.Time,
) error {
	return m.Called(ctx, n, viewerID, at).Error(0)
}

// Added returns the notifications passed to Add, in call order.
func (m *MockNotificationRepository) Added() []*notification.Notification {
	var added []*notification.Notification
	for _, call := range m.Calls {
		if call.Method == "Add" {
			added = append(added, call.Arguments.Get(1).(*notification.Notification))
		}
	}
	return added
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, r *payment.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, r *payment.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockPaymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Record, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Record), args.Error(1)
}

func (m *MockPaymentRepository) ListPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Record), args.Error(1)
}

func (m *MockPaymentRepository) GetCompletedForOrder(ctx context.Context, orderID kernel.UUID) (*payment.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Record), args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount kernel.Money, receipt string) (ports.GatewayOrder, error) {
	args := m.Called(ctx, amount, receipt)
	return args.Get(0).(ports.GatewayOrder), args.Error(1)
}

func (m *MockPaymentGateway) KeyID() string {
	return m.Called().String(0)
}

type MockInvoiceRenderer struct{ mock.Mock }

func (m *MockInvoiceRenderer) Render(ctx context.Context, doc ports.InvoiceDocument) (string, []byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

// MockUoW satisfies every unit-of-work interface of the commands package. Repository
// getters return the embedded mocks; transaction calls are recorded.
type MockUoW struct {
	mock.Mock

	Members       *MockMemberRepository
	Catalog       *MockCatalogRepository
	Orders        *MockOrderRepository
	Packing       *MockPackingRepository
	Loyalty       *MockLoyaltyRepository
	Notifications *MockNotificationRepository
	Payments      *MockPaymentRepository
	Invoices      *MockInvoiceRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Members:       &MockMemberRepository{},
		Catalog:       &MockCatalogRepository{},
		Orders:        &MockOrderRepository{},
		Packing:       &MockPackingRepository{},
		Loyalty:       &MockLoyaltyRepository{},
		Notifications: &MockNotificationRepository{},
		Payments:      &MockPaymentRepository{},
		Invoices:      &MockInvoiceRepository{},
	}
}

// ExpectTx registers a Begin/Rollback pair and, when commit is true, a Commit.
func (m *MockUoW) ExpectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil)
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
	if commit {
		m.On("Commit", mock.Anything).Return(nil).Once()
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) MemberRepository() ports.MemberRepository             { return m.Members }
func (m *MockUoW) CatalogRepository() ports.CatalogRepository           { return m.Catalog }
func (m *MockUoW) OrderRepository() ports.OrderRepository               { return m.Orders }
func (m *MockUoW) PackingRepository() ports.PackingRepository           { return m.Packing }
func (m *MockUoW) LoyaltyRepository() ports.LoyaltyRepository           { return m.Loyalty }
func (m *MockUoW) NotificationRepository() ports.NotificationRepository { return m.Notifications }
func (m *MockUoW) PaymentRepository() ports.PaymentRepository           { return m.Payments }
func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository           { return m.Invoices }

func (m *MockUoW) AssertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.Members.AssertExpectations(t)
	m.Catalog.AssertExpectations(t)
	m.Orders.AssertExpectations(t)
	m.Packing.AssertExpectations(t)
	m.Loyalty.AssertExpectations(t)
	m.Notifications.AssertExpectations(t)
	m.Payments.AssertExpectations(t)
	m.Invoices.AssertExpectations(t)
}

// MockUoWFactory hands out the same MockUoW for every Create call and counts the calls.
type MockUoWFactory struct {
	uow     *MockUoW
	created int
}

func (f *MockUoWFactory) next() *MockUoW {
	f.created++
	return f.uow
}

type orderUoWFactory struct{ *MockUoWFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.next() }

type loyaltyUoWFactory struct{ *MockUoWFactory }

func (f loyaltyUoWFactory) Create() commands.LoyaltyUoW { return f.next() }

type memberUoWFactory struct{ *MockUoWFactory }

func (f memberUoWFactory) Create() commands.MemberUoW { return f.next() }

type notificationUoWFactory struct{ *MockUoWFactory }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.next() }

type invoiceUoWFactory struct{ *MockUoWFactory }

func (f invoiceUoWFactory) Create() commands.InvoiceUoW { return f.next() }

// Fixtures.

type actors struct {
	memberID kernel.UUID
	member   kernel.Actor
	other    kernel.Actor
	admin    kernel.Actor
	owner    kernel.Actor
}

func newActors(t *testing.T) actors {
	t.Helper()
	memberID := kernel.NewUUID()
	franchise, err := kernel.NewActor(memberID, kernel.RoleFranchise, "Pune")
	require.NoError(t, err)
	other, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleFranchise, "Nashik")
	require.NoError(t, err)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, "")
	require.NoError(t, err)
	owner, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleOwner, "")
	require.NoError(t, err)
	return actors{memberID: memberID, member: franchise, other: other, admin: admin, owner: owner}
}

func newAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("12 MG Road", "", "Pune", "411001", "+91 20 5555 0100")
	require.NoError(t, err)
	return a
}

func newMember(t *testing.T, id kernel.UUID, status member.Status, access bool) *member.Member {
	t.Helper()
	m, err := member.RestoreMember(id, "Chai Point Koregaon", "Pune", status, access)
	require.NoError(t, err)
	return m
}

func newCatalogItem(t *testing.T, name, price string, active bool) *catalog.Item {
	t.Helper()
	item, err := catalog.RestoreItem(kernel.NewUUID(), name, kernel.MustMoney(price), active)
	require.NoError(t, err)
	return item
}

type storedOrderOpts struct {
	status     order.Status
	fee        *kernel.Money
	points     int
	gift       bool
	lines      int
	unitPrice  string
	quantity   int
	createdAgo time.Duration
}

// newStoredOrder builds an order as a repository would return it.
func newStoredOrder(t *testing.T, memberID kernel.UUID, opts storedOrderOpts) *order.Order {
	t.Helper()
	if opts.lines == 0 {
		opts.lines = 1
	}
	if opts.unitPrice == "" {
		opts.unitPrice = "450"
	}
	if opts.quantity == 0 {
		opts.quantity = 2
	}

	items := make([]order.Item, 0, opts.lines)
	for i := 0; i < opts.lines; i++ {
		item, err := order.NewItem(kernel.NewUUID(), "Assam CTC 1kg", opts.quantity, kernel.MustMoney(opts.unitPrice))
		require.NoError(t, err)
		items = append(items, item)
	}

	updated := time.Now().UTC().Add(-opts.createdAgo)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:                 kernel.NewUUID(),
		MemberID:           memberID,
		FranchiseName:      "Chai Point Koregaon",
		Items:              items,
		ShippingAddress:    newAddress(t),
		DeliveryFee:        opts.fee,
		LoyaltyPointsUsed:  opts.points,
		LoyaltyGiftClaimed: opts.gift,
		Status:             opts.status,
		Version:            3,
		CreatedAt:          updated,
		UpdatedAt:          updated,
	})
	require.NoError(t, err)
	return o
}

func money(s string) *kernel.Money {
	m := kernel.MustMoney(s)
	return &m
}
