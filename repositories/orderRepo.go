package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"
)

type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order aggregate in a single transaction: the table
// status mutation, the order row and every line item commit together or not
// at all.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if order.Table != nil {
		_, err = tx.Exec(ctx,
			`UPDATE tables SET status = $1, updated_at = $2 WHERE id = $3`,
			order.Table.Status, order.UpdatedAt, order.Table.ID)
		if err != nil {
			return fmt.Errorf("failed to update table status: %w", err)
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, table_id, promotion_id, status, total_amount,
			discount, final_amount, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		order.UserID, order.TableID, order.PromotionID, order.Status,
		order.TotalAmount, order.Discount, order.FinalAmount,
		order.CreatedAt, order.UpdatedAt).
		Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price, subtotal)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.Price, item.Subtotal).
			Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// UpdateStatus persists the order's status and, when releaseTable is set,
// frees the referenced table in the same transaction.
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order, releaseTable bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		order.Status, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if releaseTable && order.TableID != nil {
		_, err = tx.Exec(ctx,
			`UPDATE tables SET status = $1, updated_at = $2 WHERE id = $3`,
			models.TableStatusFree, order.UpdatedAt, *order.TableID)
		if err != nil {
			return fmt.Errorf("failed to release table: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `o.id, o.user_id, u.username, o.table_id, o.promotion_id, o.status,
	o.total_amount, o.discount, o.final_amount, o.created_at, o.updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var username string
	err := row.Scan(&order.ID, &order.UserID, &username, &order.TableID, &order.PromotionID,
		&order.Status, &order.TotalAmount, &order.Discount, &order.FinalAmount,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	order.User = &models.User{ID: order.UserID, Username: username}
	return &order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders o
		 JOIN users u ON u.id = o.user_id WHERE o.id = $1`, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders o
		 JOIN users u ON u.id = o.user_id ORDER BY o.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return r.collectOrders(ctx, rows)
}

// FindOpenByTableID returns the first not-yet-terminal order for the table
// (PENDING or PREPARING), or nil when there is none.
func (r *OrderRepository) FindOpenByTableID(ctx context.Context, tableID int64) (*models.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders o
		 JOIN users u ON u.id = o.user_id
		 WHERE o.table_id = $1 AND o.status = ANY($2)
		 ORDER BY o.id LIMIT 1`,
		tableID, []string{string(models.OrderStatusPending), string(models.OrderStatusPreparing)})
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query open order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindByTableID lists the table's orders, filtered by status when one is
// given.
func (r *OrderRepository) FindByTableID(ctx context.Context, tableID int64, status *models.OrderStatus) ([]models.Order, error) {
	var rows pgx.Rows
	var err error
	if status == nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+orderColumns+` FROM orders o
			 JOIN users u ON u.id = o.user_id
			 WHERE o.table_id = $1 ORDER BY o.id`, tableID)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+orderColumns+` FROM orders o
			 JOIN users u ON u.id = o.user_id
			 WHERE o.table_id = $1 AND o.status = $2 ORDER BY o.id`, tableID, *status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by table: %w", err)
	}
	return r.collectOrders(ctx, rows)
}

func (r *OrderRepository) collectOrders(ctx context.Context, rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := r.db.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.subtotal, p.name
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1 ORDER BY oi.id`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var productName string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.Price, &item.Subtotal, &productName); err != nil {
			return err
		}
		if item.ProductID != nil {
			item.Product = &models.Product{ID: *item.ProductID, Name: productName}
		}
		order.OrderItems = append(order.OrderItems, item)
	}
	return rows.Err()
}

// ================= REPORT =================

// TopSellingProducts returns the topN products by paid quantity.
func (r *OrderRepository) TopSellingProducts(ctx context.Context, status models.OrderStatus, topN int) ([]map[string]interface{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id AS product_id, p.name AS product_name, SUM(oi.quantity) AS total_quantity
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 JOIN products p ON p.id = oi.product_id
		 WHERE o.status = $1
		 GROUP BY p.id, p.name
		 ORDER BY total_quantity DESC
		 LIMIT $2`, status, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to query top selling products: %w", err)
	}
	return collectRows(rows)
}

// RevenueByCategory sums paid line-item subtotals per product category.
func (r *OrderRepository) RevenueByCategory(ctx context.Context, status models.OrderStatus) ([]map[string]interface{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.name AS category, SUM(oi.subtotal) AS revenue
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 JOIN products p ON p.id = oi.product_id
		 JOIN categories c ON c.id = p.category_id
		 WHERE o.status = $1
		 GROUP BY c.name
		 ORDER BY revenue DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by category: %w", err)
	}
	return collectRows(rows)
}

// RevenueByDay sums paid order final amounts per calendar day.
func (r *OrderRepository) RevenueByDay(ctx context.Context, status models.OrderStatus) ([]map[string]interface{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DATE(o.created_at) AS day, SUM(o.final_amount) AS revenue
		 FROM orders o
		 WHERE o.status = $1
		 GROUP BY DATE(o.created_at)
		 ORDER BY day`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by day: %w", err)
	}
	return collectRows(rows)
}

// collectRows flattens a result set into opaque key-value rows, keyed by the
// query's column names.
func collectRows(rows pgx.Rows) ([]map[string]interface{}, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []map[string]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(fields))
		for i, field := range fields {
			row[string(field.Name)] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
