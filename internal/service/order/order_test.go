package order

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-api/internal/models"
	"github.com/smartcanteen/canteen-api/internal/receipt"
	"github.com/smartcanteen/canteen-api/internal/repo"
)

const testOwner = "canteen@vit.edu"

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := initTestDB(t)
	svc := &Service{
		Orders:     &repo.OrderRepo{DB: db},
		Users:      &repo.UserRepo{DB: db},
		OwnerEmail: testOwner,
	}
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:       "usr-1",
		Email:    "jane.123@vit.edu",
		PRNHash:  "123",
		Role:     models.RoleStudent,
		FullName: "Jane Doe",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func sampleItems() models.CartItems {
	return models.CartItems{
		{MenuItem: models.MenuItem{ID: "1", Name: "Vada Pav", Price: 50}, Quantity: 2},
		{MenuItem: models.MenuItem{ID: "2", Name: "Samosa", Price: 30}, Quantity: 1},
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateStoresSubmittedTotalVerbatim(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)

	// 130 + 5% tax computed client-side; the service must not recompute it
	total := 136.50
	ord, rec, err := svc.Create(context.Background(), CreateInput{
		UserID: "usr-1",
		Items:  sampleItems(),
		Total:  &total,
	})
	require.NoError(t, err)
	require.Equal(t, 136.50, ord.Total)
	require.Equal(t, 136.50, rec.TotalAmount)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", ord.ID).Error)
	require.Equal(t, 136.50, stored.Total)
}

func TestCreateDefaultsAndWindow(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	ord, rec, err := svc.Create(context.Background(), CreateInput{
		UserID: "usr-1",
		Items:  sampleItems(),
		Total:  floatPtr(136.50),
	})
	require.NoError(t, err)

	require.Equal(t, models.StatusPending, ord.Status)
	require.Equal(t, models.PaymentMethodCash, ord.PaymentMethod)
	require.Equal(t, models.PaymentStatusCash, ord.PaymentStatus)
	require.Equal(t, now, ord.PaymentTime)
	require.Equal(t, 2*time.Hour, ord.ValidTillTime.Sub(ord.PaymentTime))
	require.Equal(t, "Jane Doe", ord.PaymentData.StudentName)
	require.Equal(t, "jane.123@vit.edu", ord.PaymentData.StudentEmail)

	// cash orders render as PENDING on the receipt
	require.Equal(t, receipt.PaymentPending, rec.PaymentStatus)
}

func TestCreatePaidReceiptRendersSuccess(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)

	_, rec, err := svc.Create(context.Background(), CreateInput{
		UserID:        "usr-1",
		Items:         sampleItems(),
		Total:         floatPtr(136.50),
		PaymentMethod: models.PaymentMethodUPI,
		PaymentStatus: models.PaymentStatusPaid,
	})
	require.NoError(t, err)
	require.Equal(t, receipt.PaymentSuccess, rec.PaymentStatus)
	require.Equal(t, models.PaymentMethodUPI, rec.PaymentMethod)
}

func TestCreateUnknownUserStillSucceeds(t *testing.T) {
	svc, _ := newTestService(t)

	ord, rec, err := svc.Create(context.Background(), CreateInput{
		UserID: "ghost",
		Items:  sampleItems(),
		Total:  floatPtr(100),
	})
	require.NoError(t, err)
	require.Equal(t, "Student", ord.PaymentData.StudentName)
	require.Equal(t, "", ord.PaymentData.StudentEmail)
	require.Equal(t, "Student", rec.StudentName)
}

func TestCreateMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []CreateInput{
		{Items: sampleItems(), Total: floatPtr(100)},   // no user
		{UserID: "usr-1", Total: floatPtr(100)},        // no items
		{UserID: "usr-1", Items: sampleItems()},        // no total
		{UserID: "usr-1", Items: sampleItems(), Total: floatPtr(0)}, // zero total
	}
	for i, in := range cases {
		_, _, err := svc.Create(context.Background(), in)
		require.ErrorIs(t, err, ErrMissingFields, i)
	}
}

func createOrder(t *testing.T, svc *Service) *models.Order {
	t.Helper()
	ord, _, err := svc.Create(context.Background(), CreateInput{
		UserID: "usr-1",
		Items:  sampleItems(),
		Total:  floatPtr(136.50),
	})
	require.NoError(t, err)
	return ord
}

func TestUpdateStatusRequiresOwner(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)
	ord := createOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), ord.ID, models.StatusAccepted, "jane.123@vit.edu")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.UpdateStatus(context.Background(), ord.ID, models.StatusAccepted, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	// order untouched
	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", ord.ID).Error)
	require.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)
	ord := createOrder(t, svc)

	for _, bad := range []string{"pending", "DELIVERED", "accepted", ""} {
		_, err := svc.UpdateStatus(context.Background(), ord.ID, bad, testOwner)
		require.ErrorIs(t, err, ErrInvalidStatus, bad)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), "no-such-order", models.StatusReady, testOwner)
	require.ErrorIs(t, err, ErrOrderNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateStatusPermissiveTransitions(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)
	ord := createOrder(t, svc)

	// pending straight to COMPLETED: no transition order is enforced here
	updated, err := svc.UpdateStatus(context.Background(), ord.ID, models.StatusCompleted, testOwner)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)

	// lateral move back is accepted too
	updated, err = svc.UpdateStatus(context.Background(), ord.ID, models.StatusAccepted, testOwner)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, updated.Status)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)
	ord := createOrder(t, svc)

	for i := 0; i < 2; i++ {
		updated, err := svc.UpdateStatus(context.Background(), ord.ID, models.StatusReady, testOwner)
		require.NoError(t, err, i)
		require.Equal(t, models.StatusReady, updated.Status)
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	var ids []string
	for i := 0; i < 3; i++ {
		ord := createOrder(t, svc)
		ids = append(ids, ord.ID)
		now = now.Add(time.Minute)
	}

	orders, err := svc.ListForUser(context.Background(), "usr-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, ids[2], orders[0].ID)
	require.Equal(t, ids[0], orders[2].ID)
}

func TestListAllRequiresOwner(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)
	createOrder(t, svc)

	_, err := svc.ListAll(context.Background(), "jane.123@vit.edu")
	require.ErrorIs(t, err, ErrUnauthorized)

	orders, err := svc.ListAll(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestItemsSurviveStorageRoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db)
	ord := createOrder(t, svc)

	orders, err := svc.ListForUser(context.Background(), "usr-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, ord.Items, orders[0].Items)
	require.Equal(t, uint(2), orders[0].Items[0].Quantity)
	require.Equal(t, "Vada Pav", orders[0].Items[0].Name)
}
