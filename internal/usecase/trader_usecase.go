package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
)

// Activity log actions.
const (
	ActionStockAdjusted     = "stock_adjusted"
	ActionVisibilityToggled = "visibility_toggled"
	ActionStoreUpdated      = "store_updated"
	ActionReviewReplied     = "review_replied"
	ActionStaffAdded        = "staff_added"
	ActionStaffRemoved      = "staff_removed"
)

const dashboardActivityLimit = 50

type DashboardStats struct {
	TotalViews    int     `json:"totalViews"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PendingOrders int     `json:"pendingOrders"`
	ProductCount  int     `json:"productCount"`
}

type Dashboard struct {
	SellerID string               `json:"sellerId"`
	Store    *entity.StoreConfig  `json:"store,omitempty"`
	Staff    []entity.StaffMember `json:"staff"`
	Products []*entity.Product    `json:"products"`
	Orders   []*entity.Order      `json:"orders"`
	Activity []*entity.Activity   `json:"activity"`
	Stats    DashboardStats       `json:"stats"`
}

type TraderUseCase struct {
	directory    *DirectoryUseCase
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	activityRepo repository.ActivityRepository
}

func NewTraderUseCase(
	directory *DirectoryUseCase,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	activityRepo repository.ActivityRepository,
) *TraderUseCase {
	return &TraderUseCase{
		directory:    directory,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		activityRepo: activityRepo,
	}
}

// ComputeStats derives the dashboard figures. Cancelled orders do not count
// towards revenue.
func ComputeStats(products []*entity.Product, orders []*entity.Order) DashboardStats {
	var stats DashboardStats
	stats.ProductCount = len(products)
	for _, p := range products {
		stats.TotalViews += p.Views
	}
	for _, o := range orders {
		if o.Status != entity.OrderCancelled {
			stats.TotalRevenue += o.TotalPrice
		}
		if o.Status == entity.OrderPending {
			stats.PendingOrders++
		}
	}
	return stats
}

func canManageStore(identity entity.Identity) error {
	if !identity.IsTrader() && !identity.IsAdmin() {
		return errors.AccessDenied()
	}
	return nil
}

func (uc *TraderUseCase) Dashboard(ctx context.Context, identity entity.Identity) (*Dashboard, error) {
	if err := canManageStore(identity); err != nil {
		return nil, err
	}
	sellerID := identity.UserID

	var (
		seller   *entity.User
		products []*entity.Product
		orders   []*entity.Order
		activity []*entity.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		seller, err = uc.directory.GetProfile(gctx, sellerID)
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.productRepo.List(gctx, repository.ProductFilter{SellerID: sellerID})
		return err
	})
	g.Go(func() (err error) {
		orders, err = uc.orderRepo.ListBySeller(gctx, sellerID)
		return err
	})
	g.Go(func() (err error) {
		activity, err = uc.activityRepo.List(gctx, sellerID, dashboardActivityLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildDashboard(sellerID, seller, products, orders, activity), nil
}

// Watch pushes a fresh dashboard whenever the seller's orders, profile,
// activity or products change. Pushes start once every source has reported
// and are never concurrent.
func (uc *TraderUseCase) Watch(ctx context.Context, identity entity.Identity, fn func(*Dashboard)) error {
	if err := canManageStore(identity); err != nil {
		return err
	}
	sellerID := identity.UserID

	w := &dashboardWatch{sellerID: sellerID, emit: fn}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return uc.orderRepo.WatchBySeller(gctx, sellerID, func(orders []*entity.Order) {
			w.update(func() { w.orders = orders; w.ready |= 1 })
		})
	})
	g.Go(func() error {
		return uc.directory.userRepo.Watch(gctx, sellerID, func(user *entity.User) {
			w.update(func() { w.seller = user; w.ready |= 2 })
		})
	})
	g.Go(func() error {
		return uc.activityRepo.Watch(gctx, sellerID, dashboardActivityLimit, func(activity []*entity.Activity) {
			w.update(func() { w.activity = activity; w.ready |= 4 })
		})
	})
	g.Go(func() error {
		return uc.productRepo.Watch(gctx, repository.ProductFilter{SellerID: sellerID}, func(products []*entity.Product) {
			w.update(func() { w.products = products; w.ready |= 8 })
		})
	})
	return g.Wait()
}

type dashboardWatch struct {
	mu       sync.Mutex
	sellerID string
	ready    int
	seller   *entity.User
	products []*entity.Product
	orders   []*entity.Order
	activity []*entity.Activity
	emit     func(*Dashboard)
}

const dashboardSources = 1 | 2 | 4 | 8

func (w *dashboardWatch) update(apply func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	apply()
	if w.ready != dashboardSources {
		return
	}
	w.emit(buildDashboard(w.sellerID, w.seller, w.products, w.orders, w.activity))
}

func buildDashboard(sellerID string, seller *entity.User, products []*entity.Product, orders []*entity.Order, activity []*entity.Activity) *Dashboard {
	d := &Dashboard{
		SellerID: sellerID,
		Staff:    []entity.StaffMember{},
		Products: products,
		Orders:   orders,
		Activity: activity,
		Stats:    ComputeStats(products, orders),
	}
	if seller != nil {
		d.Store = seller.Store
		if seller.Staff != nil {
			d.Staff = seller.Staff
		}
	}
	if d.Products == nil {
		d.Products = []*entity.Product{}
	}
	if d.Orders == nil {
		d.Orders = []*entity.Order{}
	}
	if d.Activity == nil {
		d.Activity = []*entity.Activity{}
	}
	return d
}

// ownedProduct loads a product the caller may manage.
func (uc *TraderUseCase) ownedProduct(ctx context.Context, identity entity.Identity, productID string) (*entity.Product, error) {
	if err := canManageStore(identity); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != identity.UserID && !identity.IsAdmin() {
		return nil, errors.Forbidden("You do not own this listing", nil)
	}
	return product, nil
}

// AdjustStock adds delta to the stock and returns the new quantity, which
// never drops below zero.
func (uc *TraderUseCase) AdjustStock(ctx context.Context, identity entity.Identity, productID string, delta int) (int, error) {
	product, err := uc.ownedProduct(ctx, identity, productID)
	if err != nil {
		return 0, err
	}

	stock, err := uc.productRepo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return 0, err
	}

	uc.record(ctx, identity, product.SellerID, ActionStockAdjusted, fmt.Sprintf("%s: %+d → %d", product.Title, delta, stock))
	return stock, nil
}

func (uc *TraderUseCase) ToggleVisibility(ctx context.Context, identity entity.Identity, productID string) (bool, error) {
	product, err := uc.ownedProduct(ctx, identity, productID)
	if err != nil {
		return false, err
	}

	active, err := uc.productRepo.Toggle(ctx, productID, "active")
	if err != nil {
		return false, err
	}

	uc.record(ctx, identity, product.SellerID, ActionVisibilityToggled, fmt.Sprintf("%s: active=%t", product.Title, active))
	return active, nil
}

func (uc *TraderUseCase) UpdateStore(ctx context.Context, identity entity.Identity, patch ProfileUpdate) (*entity.User, error) {
	if err := canManageStore(identity); err != nil {
		return nil, err
	}

	user, err := uc.directory.UpdateProfile(ctx, identity.UserID, patch)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, identity, identity.UserID, ActionStoreUpdated, "")
	return user, nil
}

func (uc *TraderUseCase) ReplyToReview(ctx context.Context, identity entity.Identity, productID, reviewID, reply string) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return errors.BadRequest("Reply cannot be empty", nil)
	}

	product, err := uc.ownedProduct(ctx, identity, productID)
	if err != nil {
		return err
	}

	if err := uc.productRepo.ReplyToReview(ctx, productID, reviewID, reply); err != nil {
		return err
	}

	uc.record(ctx, identity, product.SellerID, ActionReviewReplied, product.Title)
	return nil
}

func (uc *TraderUseCase) AddStaff(ctx context.Context, identity entity.Identity, input StaffInput) (*entity.StaffMember, error) {
	if err := canManageStore(identity); err != nil {
		return nil, err
	}

	member, err := uc.directory.AddStaff(ctx, identity.UserID, input)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, identity, identity.UserID, ActionStaffAdded, member.Name)
	return member, nil
}

func (uc *TraderUseCase) RemoveStaff(ctx context.Context, identity entity.Identity, staffID string) error {
	if err := canManageStore(identity); err != nil {
		return err
	}

	if err := uc.directory.RemoveStaff(ctx, identity.UserID, staffID); err != nil {
		return err
	}

	uc.record(ctx, identity, identity.UserID, ActionStaffRemoved, staffID)
	return nil
}

// record appends to the seller's activity log. The mutation has already
// happened, so a failed append is only logged.
func (uc *TraderUseCase) record(ctx context.Context, identity entity.Identity, sellerID, action, details string) {
	err := uc.activityRepo.Append(ctx, sellerID, &entity.Activity{
		ActorID: identity.UserID,
		Action:  action,
		Details: details,
	})
	if err != nil {
		logger.Warn("Failed to record %s for %s: %v", action, sellerID, err)
	}
}
