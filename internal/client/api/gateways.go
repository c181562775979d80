package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ICS2-1D/spring-drinks/internal/checkout"
)

// PlaceOrder реализует checkout.OrderGateway
// Отправляет заказ на сервер и возвращает идентификаторы созданного заказа
func (c *Client) PlaceOrder(ctx context.Context, draft checkout.OrderDraft) (checkout.PlacedOrder, error) {
	items := make([]orderItemRequest, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, orderItemRequest{
			DrinkID:  item.DrinkID,
			Quantity: item.Quantity,
		})
	}

	req := orderRequest{
		CustomerName:        draft.CustomerName,
		CustomerPhoneNumber: draft.CustomerPhone,
		Branch:              string(draft.Branch),
		Items:               items,
	}

	var resp orderResponse
	if err := c.doJSON(ctx, http.MethodPost, "/order", "", req, &resp); err != nil {
		return checkout.PlacedOrder{}, err
	}
	if resp.OrderID == nil {
		return checkout.PlacedOrder{}, fmt.Errorf("order id not received from server")
	}

	placed := checkout.PlacedOrder{OrderID: *resp.OrderID}
	if resp.OrderNumber != nil {
		placed.OrderNumber = *resp.OrderNumber
	}
	return placed, nil
}

// RecordPayment реализует checkout.PaymentGateway
// Отправляет симулируемое подтверждение оплаты фиксированной формы
func (c *Client) RecordPayment(ctx context.Context, orderID int64, customerPhone string) (string, error) {
	req := paymentRequest{
		OrderID:        orderID,
		CustomerNumber: customerPhone,
		PaymentMethod:  paymentMethodMpesa,
		PaymentStatus:  paymentStatusSuccess,
	}

	var resp paymentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/payments", "", req, &resp); err != nil {
		return "", err
	}
	if resp.TransactionID == nil {
		return "", fmt.Errorf("transaction id not received from server")
	}
	return *resp.TransactionID, nil
}
