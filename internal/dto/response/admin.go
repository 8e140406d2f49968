package response

import (
	"time"

	"smart-dine/internal/data/entity"
)

type OrderCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Today     int64 `json:"today"`
	Completed int64 `json:"completed"`
}

type RevenueTotals struct {
	Total string `json:"total"`
	Today string `json:"today"`
	Week  string `json:"week"`
}

type ReservationCounts struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Today   int64 `json:"today"`
}

type MenuCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Featured int64 `json:"featured"`
}

type UserCounts struct {
	Total       int64 `json:"total"`
	NewThisWeek int64 `json:"new_this_week"`
	Active      int64 `json:"active"`
}

type DashboardResponse struct {
	Orders             OrderCounts           `json:"orders"`
	Revenue            RevenueTotals         `json:"revenue"`
	Reservations       ReservationCounts     `json:"reservations"`
	Menu               MenuCounts            `json:"menu"`
	Users              UserCounts            `json:"users"`
	RecentOrders       []OrderResponse       `json:"recent_orders"`
	RecentReservations []ReservationResponse `json:"recent_reservations"`
}

type DailyRevenueResponse struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
	Orders  int64  `json:"orders"`
}

type ItemSalesResponse struct {
	ItemName      string  `json:"item_name"`
	MenuItemID    *string `json:"menu_item"`
	TotalOrders   int64   `json:"total_orders"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalRevenue  string  `json:"total_revenue"`
}

type OrderTypeResponse struct {
	OrderType string `json:"order_type"`
	Count     int64  `json:"count"`
	Revenue   string `json:"revenue"`
}

type SalesReportResponse struct {
	DailyRevenue []DailyRevenueResponse `json:"daily_revenue"`
	TopItems     []ItemSalesResponse    `json:"top_items"`
	OrderTypes   []OrderTypeResponse    `json:"order_types"`
}

// Dashboard bundles the aggregate rows into the dashboard payload.
func Dashboard(
	orders *entity.OrderStats,
	reservations *entity.ReservationStats,
	menu *entity.MenuStats,
	users *entity.UserStats,
	recentOrders []*entity.Order,
	recentReservations []*entity.Reservation,
) DashboardResponse {
	return DashboardResponse{
		Orders: OrderCounts{
			Total:     orders.Total,
			Pending:   orders.Pending,
			Today:     orders.Today,
			Completed: orders.Completed,
		},
		Revenue: RevenueTotals{
			Total: orders.RevenueTotal.StringFixed(2),
			Today: orders.RevenueToday.StringFixed(2),
			Week:  orders.RevenueWeek.StringFixed(2),
		},
		Reservations: ReservationCounts{
			Total:   reservations.Total,
			Pending: reservations.Pending,
			Today:   reservations.Today,
		},
		Menu: MenuCounts{
			Total:    menu.Total,
			Active:   menu.Active,
			Featured: menu.Featured,
		},
		Users: UserCounts{
			Total:       users.Total,
			NewThisWeek: users.NewThisWeek,
			Active:      users.Active,
		},
		RecentOrders:       OrdersToResponse(recentOrders),
		RecentReservations: ReservationsToResponse(recentReservations),
	}
}

func ItemSalesToResponse(items []*entity.ItemSales) []ItemSalesResponse {
	out := make([]ItemSalesResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemSalesResponse{
			ItemName:      it.ItemName,
			MenuItemID:    uuidString(it.MenuItemID),
			TotalOrders:   it.TotalOrders,
			TotalQuantity: it.TotalQuantity,
			TotalRevenue:  it.TotalRevenue.StringFixed(2),
		})
	}
	return out
}

func SalesReport(days []*entity.DailyRevenue, top []*entity.ItemSales, types []*entity.OrderTypeStats) SalesReportResponse {
	resp := SalesReportResponse{
		DailyRevenue: make([]DailyRevenueResponse, 0, len(days)),
		TopItems:     ItemSalesToResponse(top),
		OrderTypes:   make([]OrderTypeResponse, 0, len(types)),
	}
	for _, d := range days {
		resp.DailyRevenue = append(resp.DailyRevenue, DailyRevenueResponse{
			Date:    d.Date.Format(time.DateOnly),
			Revenue: d.Revenue.StringFixed(2),
			Orders:  d.Orders,
		})
	}
	for _, t := range types {
		resp.OrderTypes = append(resp.OrderTypes, OrderTypeResponse{
			OrderType: string(t.OrderType),
			Count:     t.Count,
			Revenue:   t.Revenue.StringFixed(2),
		})
	}
	return resp
}
