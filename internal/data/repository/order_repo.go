package repository

import (
	"context"
	"fmt"
	"strings"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Create writes the order and all of its items in one transaction.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderSelect = `
	SELECT o.id, o.user_id, o.customer_name, o.customer_email, o.customer_phone,
	       o.customer_address, o.order_type, o.status, o.payment_status,
	       o.subtotal, o.tax, o.delivery_fee, o.total, o.special_instructions,
	       o.stripe_payment_id, o.created_at, o.updated_at, u.email
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
`

func scanOrder(row scanner) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.OrderType,
		&o.Status,
		&o.PaymentStatus,
		&o.Subtotal,
		&o.Tax,
		&o.DeliveryFee,
		&o.Total,
		&o.SpecialInstructions,
		&o.StripePaymentID,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin order transaction", zap.Error(err))
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.log.Warn("Failed to roll back order transaction", zap.Error(rbErr))
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone,
		                    customer_address, order_type, status, payment_status,
		                    subtotal, tax, delivery_fee, total, special_instructions,
		                    stripe_payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.CustomerAddress,
		order.OrderType,
		order.Status,
		order.PaymentStatus,
		order.Subtotal,
		order.Tax,
		order.DeliveryFee,
		order.Total,
		order.SpecialInstructions,
		order.StripePaymentID,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert order", zap.Error(err), zap.String("order_id", order.ID.String()))
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}

	if len(order.Items) > 0 {
		itemQuery, args := buildOrderItemsInsert(order.Items)
		if _, err = tx.Exec(ctx, itemQuery, args...); err != nil {
			r.log.Error("Failed to insert order items",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.Int("items", len(order.Items)),
			)
			return fmt.Errorf("insert order items for %s: %w", order.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit order", zap.Error(err), zap.String("order_id", order.ID.String()))
		return fmt.Errorf("commit order %s: %w", order.ID, err)
	}

	return nil
}

// buildOrderItemsInsert produces one multi-row INSERT for all items.
func buildOrderItemsInsert(items []*entity.OrderItem) (string, []interface{}) {
	const cols = 8

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`INSERT INTO order_items (id, order_id, menu_item_id, item_name,
		item_price, quantity, subtotal, created_at) VALUES `)

	args := make([]interface{}, 0, len(items)*cols)
	for i, item := range items {
		if i > 0 {
			queryBuilder.WriteString(", ")
		}
		base := i * cols
		queryBuilder.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args,
			item.ID,
			item.OrderID,
			item.MenuItemID,
			item.ItemName,
			item.ItemPrice,
			item.Quantity,
			item.Subtotal,
			item.CreatedAt,
		)
	}

	return queryBuilder.String(), args
}

func (r *orderRepository) findItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, item_name, item_price, quantity, subtotal, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, item_name
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find order items", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("find items of order %s: %w", orderID, err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuItemID,
			&item.ItemName,
			&item.ItemPrice,
			&item.Quantity,
			&item.Subtotal,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}

	return items, nil
}

// FindByID loads the order with its items.
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	if order.Items, err = r.findItems(ctx, id); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	// rows must be closed before issuing the item queries
	rows.Close()
	for _, order := range orders {
		if order.Items, err = r.findItems(ctx, order.ID); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := orderSelect + ` WHERE o.user_id = $1 ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`
	return r.queryOrders(ctx, query, userID, limit, offset)
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count orders of %s: %w", userID, err)
	}
	return total, nil
}

func (r *orderRepository) FindAll(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(orderSelect)
	queryBuilder.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argCount := 1

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.PaymentStatus != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.payment_status = $%d", argCount))
		args = append(args, filter.PaymentStatus)
		argCount++
	}
	if filter.OrderType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.order_type = $%d", argCount))
		args = append(args, filter.OrderType)
		argCount++
	}
	if filter.DateFrom != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.created_at::date >= $%d::date", argCount))
		args = append(args, *filter.DateFrom)
		argCount++
	}
	if filter.DateTo != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.created_at::date <= $%d::date", argCount))
		args = append(args, *filter.DateTo)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filter.Limit)
	}

	return r.queryOrders(ctx, queryBuilder.String(), args...)
}

// Update writes the editable contact and payment reference fields.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $2, customer_email = $3, customer_phone = $4,
		    customer_address = $5, special_instructions = $6, stripe_payment_id = $7,
		    updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.CustomerAddress,
		order.SpecialInstructions,
		order.StripePaymentID,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update order", zap.Error(err), zap.String("id", order.ID.String()))
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", order.ID)
	}

	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	query := `UPDATE orders SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, order.ID, order.Status, order.PaymentStatus, order.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("id", order.ID.String()),
			zap.String("status", order.Status),
		)
		return fmt.Errorf("update order status %s: %w", order.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", order.ID)
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}

	return nil
}
