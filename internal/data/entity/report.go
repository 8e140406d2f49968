package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStats struct {
	Total        int64
	Pending      int64
	Today        int64
	Completed    int64
	RevenueTotal decimal.Decimal
	RevenueToday decimal.Decimal
	RevenueWeek  decimal.Decimal
}

type ReservationStats struct {
	Total   int64
	Pending int64
	Today   int64
}

type MenuStats struct {
	Total    int64
	Active   int64
	Featured int64
}

type UserStats struct {
	Total       int64
	NewThisWeek int64
	Active      int64
}

type DailyRevenue struct {
	Date    time.Time
	Revenue decimal.Decimal
	Orders  int64
}

type ItemSales struct {
	ItemName      string
	MenuItemID    *uuid.UUID
	TotalOrders   int64
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

type OrderTypeStats struct {
	OrderType OrderType
	Count     int64
	Revenue   decimal.Decimal
}
