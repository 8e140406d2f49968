package repository

import (
	"context"
	"fmt"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/database"

	"go.uber.org/zap"
)

// ReportRepository holds the read-only aggregations behind the admin dashboard and reports.
// Dashboard and daily revenue count paid orders only; the order type
// breakdown sums every order.
type ReportRepository interface {
	OrderStats(ctx context.Context) (*entity.OrderStats, error)
	ReservationStats(ctx context.Context) (*entity.ReservationStats, error)
	MenuStats(ctx context.Context) (*entity.MenuStats, error)
	UserStats(ctx context.Context) (*entity.UserStats, error)
	DailyRevenue(ctx context.Context, days int) ([]*entity.DailyRevenue, error)
	TopItems(ctx context.Context, limit int, since *time.Time) ([]*entity.ItemSales, error)
	OrderTypeBreakdown(ctx context.Context, since *time.Time) ([]*entity.OrderTypeStats, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

func (r *reportRepository) OrderStats(ctx context.Context) (*entity.OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid'), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid' AND created_at::date = CURRENT_DATE), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid' AND created_at >= NOW() - INTERVAL '7 days'), 0)
		FROM orders
	`

	var s entity.OrderStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Total,
		&s.Pending,
		&s.Today,
		&s.Completed,
		&s.RevenueTotal,
		&s.RevenueToday,
		&s.RevenueWeek,
	)
	if err != nil {
		r.log.Error("Failed to aggregate order stats", zap.Error(err))
		return nil, fmt.Errorf("order stats: %w", err)
	}

	return &s, nil
}

func (r *reportRepository) ReservationStats(ctx context.Context) (*entity.ReservationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE date = CURRENT_DATE)
		FROM reservations
	`

	var s entity.ReservationStats
	if err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Today); err != nil {
		r.log.Error("Failed to aggregate reservation stats", zap.Error(err))
		return nil, fmt.Errorf("reservation stats: %w", err)
	}

	return &s, nil
}

func (r *reportRepository) MenuStats(ctx context.Context) (*entity.MenuStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_available = TRUE),
			COUNT(*) FILTER (WHERE is_featured = TRUE)
		FROM menu_items
	`

	var s entity.MenuStats
	if err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.Featured); err != nil {
		r.log.Error("Failed to aggregate menu stats", zap.Error(err))
		return nil, fmt.Errorf("menu stats: %w", err)
	}

	return &s, nil
}

// UserStats counts customers only; staff and superusers are excluded.
func (r *reportRepository) UserStats(ctx context.Context) (*entity.UserStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE is_active = TRUE)
		FROM users
		WHERE is_staff = FALSE AND is_superuser = FALSE
	`

	var s entity.UserStats
	if err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.NewThisWeek, &s.Active); err != nil {
		r.log.Error("Failed to aggregate user stats", zap.Error(err))
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &s, nil
}

// DailyRevenue returns one row per day for the last `days` days, oldest first,
// including days without orders.
func (r *reportRepository) DailyRevenue(ctx context.Context, days int) ([]*entity.DailyRevenue, error) {
	query := `
		SELECT d::date,
		       COALESCE(SUM(o.total) FILTER (WHERE o.payment_status = 'paid'), 0),
		       COUNT(o.id)
		FROM generate_series(CURRENT_DATE - ($1::int - 1), CURRENT_DATE, INTERVAL '1 day') AS d
		LEFT JOIN orders o ON o.created_at::date = d::date
		GROUP BY d
		ORDER BY d
	`

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		r.log.Error("Failed to aggregate daily revenue", zap.Error(err), zap.Int("days", days))
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()

	var out []*entity.DailyRevenue
	for rows.Next() {
		var d entity.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Orders); err != nil {
			return nil, fmt.Errorf("scan daily revenue row: %w", err)
		}
		out = append(out, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily revenue rows: %w", err)
	}

	return out, nil
}

// TopItems ranks sold line items by quantity. A nil since means all time.
func (r *reportRepository) TopItems(ctx context.Context, limit int, since *time.Time) ([]*entity.ItemSales, error) {
	query := `
		SELECT oi.item_name, oi.menu_item_id,
		       COUNT(oi.id), SUM(oi.quantity), SUM(oi.subtotal)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE ($2::timestamptz IS NULL OR o.created_at >= $2)
		GROUP BY oi.item_name, oi.menu_item_id
		ORDER BY SUM(oi.quantity) DESC, oi.item_name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit, since)
	if err != nil {
		r.log.Error("Failed to aggregate top items", zap.Error(err))
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()

	var out []*entity.ItemSales
	for rows.Next() {
		var s entity.ItemSales
		if err := rows.Scan(&s.ItemName, &s.MenuItemID, &s.TotalOrders, &s.TotalQuantity, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan top item row: %w", err)
		}
		out = append(out, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top item rows: %w", err)
	}

	return out, nil
}

func (r *reportRepository) OrderTypeBreakdown(ctx context.Context, since *time.Time) ([]*entity.OrderTypeStats, error) {
	query := `
		SELECT order_type, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY order_type
		ORDER BY COUNT(*) DESC
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		r.log.Error("Failed to aggregate order types", zap.Error(err))
		return nil, fmt.Errorf("order type breakdown: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrderTypeStats
	for rows.Next() {
		var s entity.OrderTypeStats
		if err := rows.Scan(&s.OrderType, &s.Count, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan order type row: %w", err)
		}
		out = append(out, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order type rows: %w", err)
	}

	return out, nil
}
