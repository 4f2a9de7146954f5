package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/monasabatlabs/monasabat/internal/config"
	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
	contactrepository "github.com/monasabatlabs/monasabat/internal/contact/repository"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	eventitemrepository "github.com/monasabatlabs/monasabat/internal/eventitem/repository"
	notificationdomain "github.com/monasabatlabs/monasabat/internal/notification/domain"
	notificationservice "github.com/monasabatlabs/monasabat/internal/notification/service"
	"github.com/monasabatlabs/monasabat/internal/observability"
	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	supplierrepository "github.com/monasabatlabs/monasabat/internal/supplier/repository"
	supplierservice "github.com/monasabatlabs/monasabat/internal/supplier/service"
	usagerepository "github.com/monasabatlabs/monasabat/internal/usage/repository"
)

type planStub struct {
	mock.Mock
}

func (m *planStub) CreateOrRenew(context.Context, snowflake.ID, string) (*subscriptiondomain.Subscription, error) {
	return nil, nil
}
func (m *planStub) Active(context.Context, snowflake.ID) (*subscriptiondomain.Subscription, error) {
	return nil, nil
}
func (m *planStub) ActivePlan(ctx context.Context, supplierID snowflake.ID) (string, error) {
	args := m.Called(ctx, supplierID)
	return args.String(0), args.Error(1)
}
func (m *planStub) Cancel(context.Context, snowflake.ID) error { return nil }

type captureSender struct {
	sent chan notificationdomain.Notification
}

func (s *captureSender) Send(ctx context.Context, n notificationdomain.Notification) error {
	s.sent <- n
	return nil
}

type contactFixture struct {
	db    *gorm.DB
	svc   contactdomain.Service
	plans *planStub
	genID *snowflake.Node
	sent  chan notificationdomain.Notification
}

func newContactFixture(t *testing.T) *contactFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{},
		&eventitemdomain.EventItem{},
		&contactdomain.ContactRequest{}))

	cfg := config.Config{
		Quota: config.QuotaConfig{
			ContactOnlyCategories:    []string{"farm", "wedding-halls"},
			BookingLimitedCategories: []string{"hall", "farm", "salon"},
			PlanLimits:               map[string]int{"basic": 50, "premium": 100},
			FreeLimit:                50,
			WarningWindow:            10,
		},
	}
	policy := quotadomain.NewPolicy(cfg)

	metrics := observability.NewMetrics()
	sent := make(chan notificationdomain.Notification, 16)
	dispatcher := notificationservice.NewDispatcher(notificationservice.DispatcherParam{
		Sender:  &captureSender{sent: sent},
		Log:     zap.NewNop(),
		Metrics: metrics,
	})

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	plans := &planStub{}

	lifecycle := supplierservice.NewService(supplierservice.ServiceParam{
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Repo:          supplierrepository.Provide(),
		Counter:       usagerepository.Provide(),
		Policy:        policy,
		Subscriptions: plans,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})

	svc := NewService(ServiceParam{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       contactrepository.Provide(),
		Items:      eventitemrepository.Provide(),
		Suppliers:  supplierrepository.Provide(),
		Policy:     policy,
		Lifecycle:  lifecycle,
		Dispatcher: dispatcher,
	})

	return &contactFixture{db: db, svc: svc, plans: plans, genID: node, sent: sent}
}

func (f *contactFixture) seedSupplierWithItem(t *testing.T, category string) (snowflake.ID, *eventitemdomain.EventItem) {
	t.Helper()
	supplierID := f.genID.Generate()
	require.NoError(t, f.db.Create(&supplierdomain.Supplier{
		ID:    supplierID,
		Name:  "Farm Owner",
		Phone: "+9665" + supplierID.String(),
		Role:  supplierdomain.RoleSupplier,
	}).Error)

	item := &eventitemdomain.EventItem{
		ID:         f.genID.Generate(),
		SupplierID: supplierID,
		Name:       "Listing",
		Category:   category,
		Price:      500,
	}
	require.NoError(t, f.db.Create(item).Error)
	return supplierID, item
}

func TestSendCountsQuota(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	supplierID, item := f.seedSupplierWithItem(t, "wedding-halls")
	f.plans.On("ActivePlan", mock.Anything, supplierID).Return("", nil)

	clientID := f.genID.Generate()
	cr, err := f.svc.Send(ctx, contactdomain.SendRequest{
		ClientID:  clientID,
		ServiceID: item.ID,
		Message:   "هل القاعة متاحة؟",
	})
	require.NoError(t, err)
	assert.Equal(t, contactdomain.StatusPending, cr.Status)
	assert.Equal(t, supplierID, cr.SupplierID)

	var stored supplierdomain.Supplier
	require.NoError(t, f.db.First(&stored, "id = ?", supplierID).Error)
	assert.Equal(t, int64(1), stored.UsageCount)

	status, err := f.svc.StatusBetween(ctx, clientID, supplierID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, contactdomain.StatusPending, status)
}

func TestSendRejectsBookableCategory(t *testing.T) {
	f := newContactFixture(t)
	_, item := f.seedSupplierWithItem(t, "hall")

	_, err := f.svc.Send(context.Background(), contactdomain.SendRequest{
		ClientID:  f.genID.Generate(),
		ServiceID: item.ID,
	})
	assert.ErrorIs(t, err, contactdomain.ErrNotContactCategory)
}

func TestSendRejectsLockedSupplier(t *testing.T) {
	f := newContactFixture(t)
	supplierID, item := f.seedSupplierWithItem(t, "farm")
	require.NoError(t, f.db.Model(&supplierdomain.Supplier{}).
		Where("id = ?", supplierID).
		Updates(map[string]any{"is_locked": true, "lock_reason": supplierdomain.LockReasonQuotaExceeded}).Error)

	_, err := f.svc.Send(context.Background(), contactdomain.SendRequest{
		ClientID:  f.genID.Generate(),
		ServiceID: item.ID,
	})
	assert.ErrorIs(t, err, supplierdomain.ErrSupplierLocked)

	var count int64
	require.NoError(t, f.db.Model(&contactdomain.ContactRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatusNotifiesOutcome(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	supplierID, item := f.seedSupplierWithItem(t, "farm")
	f.plans.On("ActivePlan", mock.Anything, supplierID).Return("", nil)

	clientID := f.genID.Generate()
	cr, err := f.svc.Send(ctx, contactdomain.SendRequest{
		ClientID:  clientID,
		ServiceID: item.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, cr.ID, f.genID.Generate(), contactdomain.StatusAccepted)
	assert.ErrorIs(t, err, contactdomain.ErrNotRequestOwner)

	_, err = f.svc.UpdateStatus(ctx, cr.ID, supplierID, contactdomain.Status("done"))
	assert.ErrorIs(t, err, contactdomain.ErrInvalidStatus)

	updated, err := f.svc.UpdateStatus(ctx, cr.ID, supplierID, contactdomain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, contactdomain.StatusAccepted, updated.Status)

	select {
	case n := <-f.sent:
		assert.Equal(t, notificationdomain.TemplateContactRequestAccepted, n.TemplateKey)
	case <-time.After(2 * time.Second):
		t.Fatal("expected an outcome notification")
	}

	// Accepting never re-counts.
	var stored supplierdomain.Supplier
	require.NoError(t, f.db.First(&stored, "id = ?", supplierID).Error)
	assert.Equal(t, int64(1), stored.UsageCount)
}

func TestStatusBetweenEmptyWhenNoRequest(t *testing.T) {
	f := newContactFixture(t)
	status, err := f.svc.StatusBetween(context.Background(),
		f.genID.Generate(), f.genID.Generate(), f.genID.Generate())
	require.NoError(t, err)
	assert.Empty(t, status)
}
