package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"souqmanaqil/internal/adapter/repository"
	"souqmanaqil/internal/domain/entity"
	domainrepo "souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/internal/infrastructure/session"
)

const testSecret = "test-secret"

type fixture struct {
	store     *datastore.MemoryStore
	sessions  *session.MemoryStore
	users     domainrepo.UserRepository
	products  domainrepo.ProductRepository
	orders    domainrepo.OrderRepository
	txns      domainrepo.WalletTransactionRepository
	diagnoses domainrepo.DiagnosisRepository
	activity  domainrepo.ActivityRepository
	stories   domainrepo.StoryRepository

	directory *DirectoryUseCase
	auth      *AuthUseCase
	catalog   *CatalogUseCase
	trader    *TraderUseCase
	admin     *AdminUseCase
	dialogs   *ConfirmationDialogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := datastore.NewMemoryStore()
	f := &fixture{
		store:     store,
		sessions:  session.NewMemoryStore(),
		users:     repository.NewUserRepository(store),
		products:  repository.NewProductRepository(store),
		orders:    repository.NewOrderRepository(store),
		txns:      repository.NewWalletTransactionRepository(store),
		diagnoses: repository.NewDiagnosisRepository(store),
		activity:  repository.NewActivityRepository(store),
		stories:   repository.NewStoryRepository(store),
		dialogs:   NewConfirmationDialogs(),
	}
	f.directory = NewDirectoryUseCase(f.users)
	f.auth = NewAuthUseCase(f.directory, f.sessions, nil, testSecret, time.Hour)
	f.catalog = NewCatalogUseCase(f.products, f.users, f.stories)
	f.trader = NewTraderUseCase(f.directory, f.products, f.orders, f.activity)
	f.admin = NewAdminUseCase(f.directory, f.products, f.orders, f.txns, f.diagnoses, f.stories, f.dialogs)
	return f
}

// register creates a profile and returns the identity it would resolve to.
func (f *fixture) register(t *testing.T, phone, name string, role entity.Role) entity.Identity {
	t.Helper()

	user, err := f.directory.Register(context.Background(), RegisterInput{
		Phone:    phone,
		Name:     name,
		Password: "secret",
		Role:     role,
	})
	require.NoError(t, err)
	return entity.Identity{UserID: user.ID, Name: user.Name, Role: user.Role}
}

func (f *fixture) product(t *testing.T, owner entity.Identity, title string, stock int) *entity.Product {
	t.Helper()

	p, err := f.catalog.CreateProduct(context.Background(), owner, CreateProductInput{
		Title:    title,
		Category: entity.CategoryAgriculture,
		Price:    100,
		Stock:    stock,
	})
	require.NoError(t, err)
	return p
}
