package checkout

import (
	"context"

	"github.com/ICS2-1D/spring-drinks/internal/catalog"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// OrderItem представляет товар в запросе на создание заказа
type OrderItem struct {
	DrinkID  int64
	Quantity int
}

// OrderDraft содержит всё, что нужно серверу для создания заказа
type OrderDraft struct {
	CustomerName  string
	CustomerPhone string
	Branch        drinks.Branch
	Items         []OrderItem
}

// PlacedOrder содержит идентификаторы созданного заказа
type PlacedOrder struct {
	OrderID     int64
	OrderNumber string
}

// OrderGateway определяет интерфейс для создания заказа на сервере
// Использует доменные типы вместо HTTP DTO - это делает service независимым
// от формата запросов
type OrderGateway interface {
	// PlaceOrder отправляет заказ на сервер
	// Возвращает ошибку с текстом сервера, если заказ не принят
	PlaceOrder(ctx context.Context, draft OrderDraft) (PlacedOrder, error)
}

// PaymentGateway определяет интерфейс для записи подтверждения оплаты
type PaymentGateway interface {
	// RecordPayment отправляет подтверждение оплаты для созданного заказа
	// Возвращает transaction ID и ошибку
	RecordPayment(ctx context.Context, orderID int64, customerPhone string) (string, error)
}

// CatalogReloader определяет интерфейс для перезагрузки каталога
// после успешного заказа - остатки на сервере уже уменьшились
type CatalogReloader interface {
	Load(ctx context.Context) ([]catalog.Item, error)
}
