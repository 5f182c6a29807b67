package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"go-restaurant-pos/logger"
	"go-restaurant-pos/models"
)

// Store interfaces are declared where they are consumed; the pgx
// repositories satisfy them, and the tests use in-memory fakes.

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, order *models.Order, releaseTable bool) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindOpenByTableID(ctx context.Context, tableID int64) (*models.Order, error)
	FindByTableID(ctx context.Context, tableID int64, status *models.OrderStatus) ([]models.Order, error)
	TopSellingProducts(ctx context.Context, status models.OrderStatus, topN int) ([]map[string]interface{}, error)
	RevenueByCategory(ctx context.Context, status models.OrderStatus) ([]map[string]interface{}, error)
	RevenueByDay(ctx context.Context, status models.OrderStatus) ([]map[string]interface{}, error)
}

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type TableStore interface {
	FindByID(ctx context.Context, id int64) (*models.Table, error)
}

type ProductStore interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type PromotionStore interface {
	FindByID(ctx context.Context, id int64) (*models.Promotion, error)
}

// OrderNotifier announces persisted orders to real-time observers.
// Delivery is fire-and-forget.
type OrderNotifier interface {
	NotifyNewOrder(order *models.Order)
	NotifyOrderStatus(order *models.Order)
}

// OrderService runs the order workflow: validation, totals, table state,
// atomic persistence and the new-order broadcast.
type OrderService struct {
	orders     OrderStore
	users      UserStore
	tables     TableStore
	products   ProductStore
	promotions PromotionStore
	notifier   OrderNotifier
	log        *logger.Logger
}

func NewOrderService(orders OrderStore, users UserStore, tables TableStore,
	products ProductStore, promotions PromotionStore, notifier OrderNotifier,
	log *logger.Logger) *OrderService {
	return &OrderService{
		orders:     orders,
		users:      users,
		tables:     tables,
		products:   products,
		promotions: promotions,
		notifier:   notifier,
		log:        log,
	}
}

// CreateOrder validates the draft, resolves every reference, computes the
// totals, transitions the table and persists the aggregate atomically.
// Any failure is logged once here and returned unchanged to the caller.
func (s *OrderService) CreateOrder(ctx context.Context, draft *models.Order, username string) (*models.Order, error) {
	order, err := s.createOrder(ctx, draft, username)
	if err != nil {
		s.log.Error("create_order_failed", logger.RequestIDFromContext(ctx),
			"createOrder failed", err, map[string]interface{}{"username": username})
		return nil, err
	}

	s.notifier.NotifyNewOrder(order)
	return order, nil
}

func (s *OrderService) createOrder(ctx context.Context, order *models.Order, username string) (*models.Order, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", username)
	}
	order.UserID = user.ID
	order.User = user

	if order.TableID == nil {
		return nil, models.NewValidationError("table is required")
	}

	table, err := s.tables.FindByID(ctx, *order.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, models.NewNotFoundError("table", *order.TableID)
	}
	if table.Status != models.TableStatusFree && table.Status != models.TableStatusOccupied {
		return nil, models.NewConflictError(fmt.Sprintf("table %d is not available", table.ID))
	}
	order.Table = table

	if len(order.OrderItems) == 0 {
		return nil, models.NewValidationError("order must contain at least one order item")
	}

	total := decimal.Zero
	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		if item.ProductID == nil {
			return nil, models.NewValidationError("product id is required for each order item")
		}

		product, err := s.products.FindByID(ctx, *item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, models.NewNotFoundError("product", *item.ProductID)
		}
		item.Product = product

		if item.Quantity == nil {
			qty := 1
			item.Quantity = &qty
		}
		if item.Price == nil || item.Price.LessThanOrEqual(decimal.Zero) {
			price := product.Price
			item.Price = &price
		}

		item.Subtotal = item.Price.Mul(decimal.NewFromInt(int64(*item.Quantity)))
		total = total.Add(item.Subtotal)
	}
	order.TotalAmount = total

	discount := decimal.Zero
	if order.PromotionID != nil {
		promotion, err := s.promotions.FindByID(ctx, *order.PromotionID)
		if err != nil {
			return nil, err
		}
		if promotion == nil {
			return nil, models.NewNotFoundError("promotion", *order.PromotionID)
		}

		if promotion.AppliesAt(time.Now()) {
			order.Promotion = promotion
			discount = promotion.DiscountOn(total)
		} else {
			// Out of window or inactive: silently drop the reference.
			order.Promotion = nil
			order.PromotionID = nil
		}
	}
	order.Discount = discount
	order.FinalAmount = total.Sub(discount)

	if table.Status == models.TableStatusFree {
		table.Status = models.TableStatusOccupied
	}

	now := time.Now()
	order.Status = models.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus sets the order's status. Reaching PAID or CANCELLED
// frees the order's table, without checking for other open orders against
// it.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.IsValid() {
		return nil, models.NewValidationError(fmt.Sprintf("unknown order status: %s", newStatus))
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order", orderID)
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now()

	releaseTable := (newStatus == models.OrderStatusPaid || newStatus == models.OrderStatusCancelled) &&
		order.TableID != nil

	if err := s.orders.UpdateStatus(ctx, order, releaseTable); err != nil {
		return nil, err
	}

	s.notifier.NotifyOrderStatus(order)
	return order, nil
}

// GetOrderByIDAndCheckOwner returns the order when the requester is an
// admin, a moderator, or the order's owner.
func (s *OrderService) GetOrderByIDAndCheckOwner(ctx context.Context, orderID int64, username string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order", orderID)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", username)
	}

	if !user.HasAnyRole(models.RoleAdmin, models.RoleModerator) {
		if order.User == nil || order.User.Username != username {
			return nil, models.NewAccessDeniedError("access denied")
		}
	}
	return order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order", orderID)
	}
	return order, nil
}

// GetOpenOrderByTableID returns the table's open order (PENDING or
// PREPARING), or nil when the table has none.
func (s *OrderService) GetOpenOrderByTableID(ctx context.Context, tableID int64) (*models.Order, error) {
	return s.orders.FindOpenByTableID(ctx, tableID)
}

func (s *OrderService) GetOrdersByTable(ctx context.Context, tableID int64, status *models.OrderStatus) ([]models.Order, error) {
	return s.orders.FindByTableID(ctx, tableID, status)
}

// ================= REPORT =================

func (s *OrderService) GetTopSellingProducts(ctx context.Context, topN int) ([]map[string]interface{}, error) {
	return s.orders.TopSellingProducts(ctx, models.OrderStatusPaid, topN)
}

func (s *OrderService) GetRevenueByCategory(ctx context.Context) ([]map[string]interface{}, error) {
	return s.orders.RevenueByCategory(ctx, models.OrderStatusPaid)
}

func (s *OrderService) GetRevenueByDay(ctx context.Context) ([]map[string]interface{}, error) {
	return s.orders.RevenueByDay(ctx, models.OrderStatusPaid)
}
