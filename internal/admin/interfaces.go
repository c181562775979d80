package admin

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ICS2-1D/spring-drinks/internal/catalog"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// API определяет интерфейс админских операций сервера
// Console зависит от этого интерфейса, а не от конкретного HTTP клиента
type API interface {
	// Login аутентифицирует администратора и возвращает токен сессии
	// Токен держится только в памяти до конца сессии
	Login(ctx context.Context, username, password string) (string, error)

	// Register регистрирует нового администратора
	Register(ctx context.Context, username, password string) error

	// ListDrinks загружает полный каталог для просмотра остатков
	ListDrinks(ctx context.Context, branch drinks.Branch) ([]catalog.Item, error)

	// UpdateDrink обновляет цену и количество напитка
	UpdateDrink(ctx context.Context, token string, id int64, price decimal.Decimal, quantity int) error

	// BranchReport загружает отчёт о продажах одного филиала
	BranchReport(ctx context.Context, token string, branch drinks.Branch) (SalesReport, error)

	// ConsolidatedReport загружает сводный отчёт по всем филиалам
	ConsolidatedReport(ctx context.Context, token string) (ConsolidatedReport, error)
}
