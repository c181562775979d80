package admin

import (
	"github.com/shopspring/decimal"

	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// DrinkSales - продажи одного напитка за период
type DrinkSales struct {
	Quantity   int
	TotalPrice decimal.Decimal
}

// SalesReport - отчёт о продажах одного филиала
type SalesReport struct {
	TotalSales decimal.Decimal
	DrinksSold map[string]DrinkSales // по названию напитка
}

// ConsolidatedReport - сводный отчёт по всем филиалам
type ConsolidatedReport struct {
	GrandTotalSales decimal.Decimal
	SalesByBranch   map[drinks.Branch]SalesReport
}
