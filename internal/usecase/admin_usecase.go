package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
	"souqmanaqil/pkg/utils"
)

type AdminView string

const (
	AdminViewUsers        AdminView = "users"
	AdminViewProducts     AdminView = "products"
	AdminViewTransactions AdminView = "transactions"
	AdminViewDiagnoses    AdminView = "diagnoses"
)

func (v AdminView) Valid() bool {
	switch v {
	case AdminViewUsers, AdminViewProducts, AdminViewTransactions, AdminViewDiagnoses:
		return true
	}
	return false
}

// AdminQuery is the search box plus the enum filters of every sub-view.
// Each view reads only the fields that apply to it.
type AdminQuery struct {
	Query    string
	Role     entity.Role
	Category entity.Category
	Promoted *bool
	Type     entity.TransactionType
	Urgency  entity.Urgency
}

// AdminSnapshot carries one sub-view's current rows.
type AdminSnapshot struct {
	View         AdminView                   `json:"view"`
	Users        []*entity.User              `json:"users,omitempty"`
	Products     []*entity.Product           `json:"products,omitempty"`
	Transactions []*entity.WalletTransaction `json:"transactions,omitempty"`
	Diagnoses    []*entity.AgriDiagnosis     `json:"diagnoses,omitempty"`
}

type Overview struct {
	Users         int                 `json:"users"`
	UsersByRole   map[entity.Role]int `json:"usersByRole"`
	TotalBalance  float64             `json:"totalBalance"`
	Products      int                 `json:"products"`
	ActiveCount   int                 `json:"activeProducts"`
	PromotedCount int                 `json:"promotedProducts"`
	Orders        int                 `json:"orders"`
	Revenue       float64             `json:"revenue"`
	Transactions  int                 `json:"transactions"`
	TotalCredits  float64             `json:"totalCredits"`
	TotalDebits   float64             `json:"totalDebits"`
	Diagnoses     int                 `json:"diagnoses"`
	UrgentCount   int                 `json:"urgentDiagnoses"`
}

type AdminUseCase struct {
	directory     *DirectoryUseCase
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	txnRepo       repository.WalletTransactionRepository
	diagnosisRepo repository.DiagnosisRepository
	storyRepo     repository.StoryRepository
	dialogs       *ConfirmationDialogs
}

func NewAdminUseCase(
	directory *DirectoryUseCase,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	txnRepo repository.WalletTransactionRepository,
	diagnosisRepo repository.DiagnosisRepository,
	storyRepo repository.StoryRepository,
	dialogs *ConfirmationDialogs,
) *AdminUseCase {
	return &AdminUseCase{
		directory:     directory,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		txnRepo:       txnRepo,
		diagnosisRepo: diagnosisRepo,
		storyRepo:     storyRepo,
		dialogs:       dialogs,
	}
}

func gate(identity entity.Identity) error {
	if !identity.IsAdmin() {
		return errors.AccessDenied()
	}
	return nil
}

func (uc *AdminUseCase) Users(ctx context.Context, identity entity.Identity, q AdminQuery) ([]*entity.User, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}
	users, err := uc.directory.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(filterUsers(users, q)), nil
}

func (uc *AdminUseCase) Products(ctx context.Context, identity entity.Identity, q AdminQuery) ([]*entity.Product, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	return filterAdminProducts(products, q), nil
}

func (uc *AdminUseCase) Transactions(ctx context.Context, identity entity.Identity, q AdminQuery) ([]*entity.WalletTransaction, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}
	txns, err := uc.txnRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterTransactions(txns, q), nil
}

// Diagnoses flattens every user's consultation log into one list.
func (uc *AdminUseCase) Diagnoses(ctx context.Context, identity entity.Identity, q AdminQuery) ([]*entity.AgriDiagnosis, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}
	diagnoses, err := uc.diagnosisRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterDiagnoses(diagnoses, q), nil
}

func (uc *AdminUseCase) Overview(ctx context.Context, identity entity.Identity) (*Overview, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}

	var (
		users     []*entity.User
		products  []*entity.Product
		orders    []*entity.Order
		txns      []*entity.WalletTransaction
		diagnoses []*entity.AgriDiagnosis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = uc.directory.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.productRepo.List(gctx, repository.ProductFilter{})
		return err
	})
	g.Go(func() (err error) {
		orders, err = uc.orderRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		txns, err = uc.txnRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		diagnoses, err = uc.diagnosisRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ComputeOverview(users, products, orders, txns, diagnoses), nil
}

func ComputeOverview(
	users []*entity.User,
	products []*entity.Product,
	orders []*entity.Order,
	txns []*entity.WalletTransaction,
	diagnoses []*entity.AgriDiagnosis,
) *Overview {
	o := &Overview{
		Users:        len(users),
		UsersByRole:  make(map[entity.Role]int),
		Products:     len(products),
		Orders:       len(orders),
		Transactions: len(txns),
		Diagnoses:    len(diagnoses),
	}
	for _, u := range users {
		o.UsersByRole[u.Role]++
		o.TotalBalance += u.Balance
	}
	for _, p := range products {
		if p.Active {
			o.ActiveCount++
		}
		if p.Promoted {
			o.PromotedCount++
		}
	}
	for _, ord := range orders {
		if ord.Status != entity.OrderCancelled {
			o.Revenue += ord.TotalPrice
		}
	}
	for _, t := range txns {
		switch t.Type {
		case entity.TransactionCredit:
			o.TotalCredits += t.Amount
		case entity.TransactionDebit:
			o.TotalDebits += t.Amount
		}
	}
	for _, d := range diagnoses {
		if d.Urgency == entity.UrgencyHigh {
			o.UrgentCount++
		}
	}
	return o
}

// Watch pushes the filtered rows of one sub-view on every change until ctx
// is done.
func (uc *AdminUseCase) Watch(ctx context.Context, identity entity.Identity, view AdminView, q AdminQuery, fn func(*AdminSnapshot)) error {
	if err := gate(identity); err != nil {
		return err
	}

	switch view {
	case AdminViewUsers:
		return uc.directory.userRepo.WatchAll(ctx, func(users []*entity.User) {
			fn(&AdminSnapshot{View: view, Users: publicUsers(filterUsers(users, q))})
		})
	case AdminViewProducts:
		return uc.productRepo.Watch(ctx, repository.ProductFilter{}, func(products []*entity.Product) {
			fn(&AdminSnapshot{View: view, Products: filterAdminProducts(products, q)})
		})
	case AdminViewTransactions:
		return uc.txnRepo.WatchAll(ctx, func(txns []*entity.WalletTransaction) {
			fn(&AdminSnapshot{View: view, Transactions: filterTransactions(txns, q)})
		})
	case AdminViewDiagnoses:
		return uc.diagnosisRepo.WatchAll(ctx, func(diagnoses []*entity.AgriDiagnosis) {
			fn(&AdminSnapshot{View: view, Diagnoses: filterDiagnoses(diagnoses, q)})
		})
	}
	return errors.BadRequest(fmt.Sprintf("Unknown view %q", view), nil)
}

func (uc *AdminUseCase) SetRole(ctx context.Context, identity entity.Identity, userID string, role entity.Role) error {
	if err := gate(identity); err != nil {
		return err
	}
	if userID == identity.UserID && role != entity.RoleAdmin {
		return errors.BadRequest("You cannot remove your own admin role", nil)
	}
	if err := uc.directory.SetRole(ctx, userID, role); err != nil {
		return err
	}
	logger.Info("Admin %s set role of %s to %s", identity.UserID, userID, role)
	return nil
}

func (uc *AdminUseCase) TogglePromoted(ctx context.Context, identity entity.Identity, productID string) (bool, error) {
	if err := gate(identity); err != nil {
		return false, err
	}
	return uc.productRepo.Toggle(ctx, productID, "promoted")
}

func (uc *AdminUseCase) ToggleActive(ctx context.Context, identity entity.Identity, productID string) (bool, error) {
	if err := gate(identity); err != nil {
		return false, err
	}
	return uc.productRepo.Toggle(ctx, productID, "active")
}

// RequestDelete opens the confirmation dialog for target. Nothing is
// deleted until ConfirmDelete.
func (uc *AdminUseCase) RequestDelete(ctx context.Context, identity entity.Identity, target DeleteTarget) (*Dialog, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}
	if !target.Kind.Valid() {
		return nil, errors.BadRequest("Unknown record kind", nil)
	}
	if target.ID == "" {
		return nil, errors.BadRequest("Record id is required", nil)
	}
	if target.Kind == DeleteDiagnosis && target.OwnerID == "" {
		return nil, errors.BadRequest("Diagnosis owner is required", nil)
	}
	if target.Kind == DeleteUser && target.ID == identity.UserID {
		return nil, errors.BadRequest("You cannot delete your own account", nil)
	}

	return uc.dialogs.Open(identity.UserID, target), nil
}

func (uc *AdminUseCase) PendingDelete(identity entity.Identity) (*Dialog, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}
	dialog, ok := uc.dialogs.Current(identity.UserID)
	if !ok {
		return nil, errors.NotFound("Confirmation", nil)
	}
	return dialog, nil
}

func (uc *AdminUseCase) CancelDelete(identity entity.Identity, dialogID string) error {
	if err := gate(identity); err != nil {
		return err
	}
	uc.dialogs.Cancel(identity.UserID, dialogID)
	return nil
}

// ConfirmDelete closes the dialog and deletes its target.
func (uc *AdminUseCase) ConfirmDelete(ctx context.Context, identity entity.Identity, dialogID string) (*DeleteTarget, error) {
	if err := gate(identity); err != nil {
		return nil, err
	}

	dialog, err := uc.dialogs.Confirm(identity.UserID, dialogID)
	if err != nil {
		return nil, err
	}

	target := dialog.Target
	switch target.Kind {
	case DeleteUser:
		err = uc.directory.userRepo.Delete(ctx, target.ID)
	case DeleteProduct:
		err = uc.productRepo.Delete(ctx, target.ID)
	case DeleteTransaction:
		err = uc.txnRepo.Delete(ctx, target.ID)
	case DeleteDiagnosis:
		err = uc.diagnosisRepo.Delete(ctx, target.OwnerID, target.ID)
	case DeleteStory:
		err = uc.storyRepo.Delete(ctx, target.ID)
	}
	if err != nil {
		logger.LogMutationError(string(target.Kind), target.ID, "delete", err)
		return nil, err
	}

	logger.Info("Admin %s deleted %s %s", identity.UserID, target.Kind, target.ID)
	return &target, nil
}

func filterUsers(users []*entity.User, q AdminQuery) []*entity.User {
	out := make([]*entity.User, 0, len(users))
	for _, u := range users {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		if !utils.MatchesKeyword(q.Query, u.Name, u.Phone, u.ID, u.Location) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func publicUsers(users []*entity.User) []*entity.User {
	out := make([]*entity.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

func filterAdminProducts(products []*entity.Product, q AdminQuery) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Promoted != nil && p.Promoted != *q.Promoted {
			continue
		}
		if !utils.MatchesKeyword(q.Query, p.Title, p.SellerName, p.SellerPhone, p.Location) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func filterTransactions(txns []*entity.WalletTransaction, q AdminQuery) []*entity.WalletTransaction {
	out := make([]*entity.WalletTransaction, 0, len(txns))
	for _, t := range txns {
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if !utils.MatchesKeyword(q.Query, t.Title, t.UserID, t.ID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func filterDiagnoses(diagnoses []*entity.AgriDiagnosis, q AdminQuery) []*entity.AgriDiagnosis {
	out := make([]*entity.AgriDiagnosis, 0, len(diagnoses))
	for _, d := range diagnoses {
		if q.Urgency != "" && d.Urgency != q.Urgency {
			continue
		}
		if !utils.MatchesKeyword(q.Query, d.Issue, d.UserID) {
			continue
		}
		out = append(out, d)
	}
	return out
}
