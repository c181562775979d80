package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ICS2-1D/spring-drinks/internal/catalog"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// Формы ответов сервера. Поля объявлены указателями, чтобы отличать
// отсутствующее поле от нулевого значения - ответ с неполной схемой
// отклоняется на границе, а не превращается в нули дальше по коду

// connectResponse - ответ GET /connect
type connectResponse struct {
	Branch *string `json:"branch"`
}

// drinkDTO - элемент ответа GET /drinks
type drinkDTO struct {
	ID            *int64   `json:"id"`
	DrinkName     *string  `json:"drinkName"`
	DrinkPrice    *float64 `json:"drinkPrice"`
	DrinkQuantity *int     `json:"drinkQuantity"`
}

// orderItemRequest - товар в теле POST /order
type orderItemRequest struct {
	DrinkID  int64 `json:"drinkId"`
	Quantity int   `json:"quantity"`
}

// orderRequest - тело POST /order
type orderRequest struct {
	CustomerName        string             `json:"customerName"`
	CustomerPhoneNumber string             `json:"customerPhoneNumber"`
	Branch              string             `json:"branch"`
	Items               []orderItemRequest `json:"items"`
}

// orderResponse - ответ POST /order
type orderResponse struct {
	OrderID     *int64  `json:"orderId"`
	OrderNumber *string `json:"orderNumber"`
}

// paymentRequest - тело POST /payments
type paymentRequest struct {
	OrderID        int64  `json:"orderId"`
	CustomerNumber string `json:"customerNumber"`
	PaymentMethod  string `json:"paymentMethod"`
	PaymentStatus  string `json:"paymentStatus"`
}

// paymentResponse - ответ POST /payments
type paymentResponse struct {
	TransactionID *string `json:"transactionId"`
}

// Фиксированная форма симулируемого подтверждения оплаты
const (
	paymentMethodMpesa   = "M-PESA"
	paymentStatusSuccess = "SUCCESS"
)

// Connect запрашивает назначение филиала для этого клиента
func (c *Client) Connect(ctx context.Context) (drinks.Branch, error) {
	var resp connectResponse
	if err := c.doJSON(ctx, http.MethodGet, "/connect", "", nil, &resp); err != nil {
		return "", err
	}
	if resp.Branch == nil {
		return "", fmt.Errorf("branch information not received from server")
	}
	return drinks.ParseBranch(*resp.Branch)
}

// ListDrinks загружает каталог напитков
// Для непустого branch каталог ограничен этим филиалом
func (c *Client) ListDrinks(ctx context.Context, branch drinks.Branch) ([]catalog.Item, error) {
	path := "/drinks"
	if !branch.IsZero() {
		path += "?branch=" + url.QueryEscape(string(branch))
	}

	var dtos []drinkDTO
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &dtos); err != nil {
		return nil, err
	}

	items := make([]catalog.Item, 0, len(dtos))
	for i, dto := range dtos {
		item, err := dto.toItem()
		if err != nil {
			return nil, fmt.Errorf("invalid drink at index %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// toItem проверяет схему DTO и преобразует его в доменную модель
func (d drinkDTO) toItem() (catalog.Item, error) {
	if d.ID == nil {
		return catalog.Item{}, fmt.Errorf("id is missing")
	}
	if d.DrinkName == nil || *d.DrinkName == "" {
		return catalog.Item{}, fmt.Errorf("drinkName is missing")
	}
	if d.DrinkPrice == nil || *d.DrinkPrice < 0 {
		return catalog.Item{}, fmt.Errorf("drinkPrice is missing or negative")
	}
	if d.DrinkQuantity == nil || *d.DrinkQuantity < 0 {
		return catalog.Item{}, fmt.Errorf("drinkQuantity is missing or negative")
	}
	return catalog.Item{
		ID:                *d.ID,
		Name:              *d.DrinkName,
		UnitPrice:         decimal.NewFromFloat(*d.DrinkPrice),
		AvailableQuantity: *d.DrinkQuantity,
	}, nil
}
