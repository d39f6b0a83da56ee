package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/pkg/errors"
)

func TestAdminGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)

	_, err := f.admin.Users(ctx, trader, AdminQuery{})
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	_, err = f.admin.Overview(ctx, trader)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	_, err = f.admin.RequestDelete(ctx, trader, DeleteTarget{Kind: DeleteUser, ID: "x"})
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	assert.True(t, errors.Is(f.admin.Watch(ctx, entity.Identity{Guest: true}, AdminViewUsers, AdminQuery{}, func(*AdminSnapshot) {}), errors.CodeForbidden))

	// No user id means not signed in, whatever the role says.
	_, err = f.admin.Users(ctx, entity.Identity{Role: entity.RoleAdmin}, AdminQuery{})
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestAdminUsersFilterAndHidePasswords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)
	f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	f.register(t, "0911", "Sara", entity.RoleUser)

	users, err := f.admin.Users(ctx, admin, AdminQuery{})
	require.NoError(t, err)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}

	traders, err := f.admin.Users(ctx, admin, AdminQuery{Role: entity.RoleTrader})
	require.NoError(t, err)
	require.Len(t, traders, 1)
	assert.Equal(t, "Ahmed", traders[0].Name)

	byPhone, err := f.admin.Users(ctx, admin, AdminQuery{Query: "0911"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Sara", byPhone[0].Name)
}

func TestAdminProductFiltersAndToggles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	honey := f.product(t, trader, "Honey", 1)
	f.product(t, trader, "Seeds", 1)

	promoted, err := f.admin.TogglePromoted(ctx, admin, honey.ID)
	require.NoError(t, err)
	assert.True(t, promoted)

	yes := true
	list, err := f.admin.Products(ctx, admin, AdminQuery{Promoted: &yes})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, honey.ID, list[0].ID)

	list, err = f.admin.Products(ctx, admin, AdminQuery{Category: entity.CategoryVehicles})
	require.NoError(t, err)
	assert.Empty(t, list)

	active, err := f.admin.ToggleActive(ctx, admin, honey.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestAdminSetRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)
	buyer := f.register(t, "0911", "Sara", entity.RoleUser)

	assert.True(t, errors.Is(f.admin.SetRole(ctx, admin, admin.UserID, entity.RoleUser), errors.CodeBadRequest))
	require.NoError(t, f.admin.SetRole(ctx, admin, buyer.UserID, entity.RoleTrader))

	user, err := f.users.GetByID(ctx, buyer.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTrader, user.Role)
}

func TestAdminDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	p := f.product(t, trader, "Honey", 1)

	dialog, err := f.admin.RequestDelete(ctx, admin, DeleteTarget{Kind: DeleteProduct, ID: p.ID})
	require.NoError(t, err)

	// Opening the dialog deletes nothing.
	_, err = f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)

	pending, err := f.admin.PendingDelete(admin)
	require.NoError(t, err)
	assert.Equal(t, dialog.ID, pending.ID)

	require.NoError(t, f.admin.CancelDelete(admin, dialog.ID))
	_, err = f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	_, err = f.admin.PendingDelete(admin)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = f.admin.ConfirmDelete(ctx, admin, dialog.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	dialog, err = f.admin.RequestDelete(ctx, admin, DeleteTarget{Kind: DeleteProduct, ID: p.ID})
	require.NoError(t, err)
	target, err := f.admin.ConfirmDelete(ctx, admin, dialog.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, target.ID)

	_, err = f.products.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestAdminDeleteDiagnosisAndValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)
	farmer := f.register(t, "0911", "Sara", entity.RoleUser)

	diag := &entity.AgriDiagnosis{UserID: farmer.UserID, Issue: "leaf rust", Urgency: entity.UrgencyHigh}
	require.NoError(t, f.diagnoses.Create(ctx, diag))

	_, err := f.admin.RequestDelete(ctx, admin, DeleteTarget{Kind: DeleteDiagnosis, ID: diag.ID})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = f.admin.RequestDelete(ctx, admin, DeleteTarget{Kind: DeleteUser, ID: admin.UserID})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = f.admin.RequestDelete(ctx, admin, DeleteTarget{Kind: "order", ID: "x"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	dialog, err := f.admin.RequestDelete(ctx, admin, DeleteTarget{Kind: DeleteDiagnosis, ID: diag.ID, OwnerID: farmer.UserID})
	require.NoError(t, err)
	_, err = f.admin.ConfirmDelete(ctx, admin, dialog.ID)
	require.NoError(t, err)

	left, err := f.diagnoses.ListByUserID(ctx, farmer.UserID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestAdminOverview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	buyer := f.register(t, "0911", "Sara", entity.RoleUser)
	f.product(t, trader, "Honey", 1)

	require.NoError(t, f.orders.Create(ctx, &entity.Order{BuyerID: buyer.UserID, SellerIDs: []string{trader.UserID}, TotalPrice: 300}))
	require.NoError(t, f.orders.Create(ctx, &entity.Order{BuyerID: buyer.UserID, SellerIDs: []string{trader.UserID}, TotalPrice: 40, Status: entity.OrderCancelled}))
	require.NoError(t, f.txns.Create(ctx, &entity.WalletTransaction{UserID: buyer.UserID, Type: entity.TransactionCredit, Amount: 500, Title: "top up"}))
	require.NoError(t, f.txns.Create(ctx, &entity.WalletTransaction{UserID: buyer.UserID, Type: entity.TransactionDebit, Amount: 300, Title: "order"}))
	require.NoError(t, f.diagnoses.Create(ctx, &entity.AgriDiagnosis{UserID: buyer.UserID, Issue: "rust", Urgency: entity.UrgencyHigh}))

	o, err := f.admin.Overview(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Users)
	assert.Equal(t, 1, o.UsersByRole[entity.RoleTrader])
	assert.Equal(t, 1, o.Products)
	assert.Equal(t, 1, o.ActiveCount)
	assert.Equal(t, 2, o.Orders)
	assert.Equal(t, 300.0, o.Revenue)
	assert.Equal(t, 500.0, o.TotalCredits)
	assert.Equal(t, 300.0, o.TotalDebits)
	assert.Equal(t, 1, o.UrgentCount)
}

func TestAdminWatchUsers(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "0900", "Admin", entity.RoleAdmin)

	ctx, cancel := context.WithCancel(context.Background())
	snaps := make(chan *AdminSnapshot, 16)
	done := make(chan error, 1)
	go func() {
		done <- f.admin.Watch(ctx, admin, AdminViewUsers, AdminQuery{Role: entity.RoleTrader}, func(s *AdminSnapshot) {
			snaps <- s
		})
	}()

	first := <-snaps
	assert.Equal(t, AdminViewUsers, first.View)
	assert.Empty(t, first.Users)

	f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	require.Eventually(t, func() bool {
		select {
		case s := <-snaps:
			return len(s.Users) == 1 && s.Users[0].Password == ""
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)

	assert.True(t, errors.Is(f.admin.Watch(context.Background(), admin, "orders", AdminQuery{}, func(*AdminSnapshot) {}), errors.CodeBadRequest))
}
