package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/pkg/errors"
)

func TestSanitizeIdentifier(t *testing.T) {
	uc := NewDirectoryUseCase(nil)

	assert.Equal(t, "0912345", uc.SanitizeIdentifier(" 0912345 "))
	assert.Equal(t, "+249_912_345", uc.SanitizeIdentifier("+249.912/345"))
	assert.Equal(t, uc.SanitizeIdentifier("a#b$c[d]"), uc.SanitizeIdentifier("a#b$c[d]"))
}

func TestRegisterThenFind(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	missing, err := f.directory.FindByPhone(ctx, "0912345")
	require.NoError(t, err)
	assert.Nil(t, missing)

	user, err := f.directory.Register(ctx, RegisterInput{
		Phone:    "0912345",
		Name:     "Ahmed",
		Password: "pw",
		Role:     entity.RoleTrader,
	})
	require.NoError(t, err)
	assert.Equal(t, "0912345", user.ID)
	assert.Zero(t, user.Balance)
	assert.False(t, user.Verified)
	assert.Contains(t, user.Avatar, "name=Ahmed")
	assert.NotEqual(t, "pw", user.Password)

	found, err := f.directory.FindByPhone(ctx, "0912345")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entity.RoleTrader, found.Role)
	assert.Zero(t, found.Balance)
}

func TestRegisterDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.directory.Register(ctx, RegisterInput{Phone: "0911", Name: "Sara", Password: "pw", Avatar: "data:image/png;base64,AA=="})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, "data:image/png;base64,AA==", user.Avatar)

	_, err = f.directory.Register(ctx, RegisterInput{Phone: "0922", Name: "X", Password: "pw", Role: "owner"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.directory.Register(ctx, RegisterInput{Phone: "  ", Name: "X", Password: "pw"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestConcurrentRegistrationHasOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.directory.Register(ctx, RegisterInput{Phone: "0912345", Name: "Ahmed", Password: "pw"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, errors.CodeAlreadyRegistered) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, rejected)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "0912345", "Ahmed", entity.RoleUser)

	require.NoError(t, f.directory.SetRole(ctx, "0912345", entity.RoleWorker))
	user, err := f.directory.GetProfile(ctx, "0912345")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWorker, user.Role)

	assert.True(t, errors.Is(f.directory.SetRole(ctx, "0912345", "boss"), errors.CodeBadRequest))
	assert.True(t, errors.Is(f.directory.SetRole(ctx, "0000", entity.RoleUser), errors.CodeNotFound))
}

func TestListAllOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "01", Name: "A", Role: entity.RoleUser, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "02", Name: "B", Role: entity.RoleUser, CreatedAt: base}))
	require.NoError(t, f.store.Set(ctx, "users/03", map[string]interface{}{"name": "C", "role": "user", "password": "pw"}))

	users, err := f.directory.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "03", users[0].ID)
	assert.Equal(t, "02", users[1].ID)
	assert.Equal(t, "01", users[2].ID)
}

func TestUpdateProfileMergesFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "0912345", "Ahmed", entity.RoleTrader)

	location := "المناقل"
	user, err := f.directory.UpdateProfile(ctx, "0912345", ProfileUpdate{
		Location: &location,
		Store:    &entity.StoreConfig{WorkingHours: "8-17", DeliveryAreas: []string{"المناقل"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed", user.Name)
	assert.Equal(t, location, user.Location)
	require.NotNil(t, user.Store)
	assert.Equal(t, "8-17", user.Store.WorkingHours)

	_, err = f.directory.UpdateProfile(ctx, "0912345", ProfileUpdate{})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestStaffLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "0912345", "Ahmed", entity.RoleTrader)

	member, err := f.directory.AddStaff(ctx, "0912345", StaffInput{Name: "Ali", Phone: "0999", Position: "sales"})
	require.NoError(t, err)

	_, err = f.directory.AddStaff(ctx, "0912345", StaffInput{Name: "Ali again", Phone: "0999"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	require.NoError(t, f.directory.RemoveStaff(ctx, "0912345", member.ID))
	assert.True(t, errors.Is(f.directory.RemoveStaff(ctx, "0912345", member.ID), errors.CodeNotFound))
}
