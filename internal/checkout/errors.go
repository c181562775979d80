package checkout

import "fmt"

// ValidationError возвращается, когда заказ отклонён локально
// ещё до обращения к серверу: пустая корзина, незаполненные поля покупателя
// или неназначенный филиал
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PaymentRecordingError возвращается, когда заказ создан,
// но запись оплаты не удалась. Заказ при этом не отменяется -
// компенсирующей транзакции в системе нет
type PaymentRecordingError struct {
	OrderID int64
	Err     error
}

func (e *PaymentRecordingError) Error() string {
	return fmt.Sprintf("order %d placed, but payment recording failed: %v", e.OrderID, e.Err)
}

func (e *PaymentRecordingError) Unwrap() error {
	return e.Err
}
