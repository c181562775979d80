package checkout

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/cart"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// State представляет этап обработки одной попытки заказа
// Completed, PaymentFailed, ValidationFailed и SubmitFailed - терминальные,
// новая попытка начинается заново с Idle
type State string

const (
	StateIdle             State = "IDLE"
	StateValidating       State = "VALIDATING"
	StateSubmitting       State = "SUBMITTING"
	StateOrderPlaced      State = "ORDER_PLACED"
	StatePayingConfirming State = "PAYING_CONFIRMING"
	StateCompleted        State = "COMPLETED"
	StatePaymentFailed    State = "PAYMENT_FAILED"
	StateValidationFailed State = "VALIDATION_FAILED"
	StateSubmitFailed     State = "SUBMIT_FAILED"
)

// Service оформляет заказ: проверяет данные, отправляет заказ,
// записывает оплату, очищает корзину и запускает перезагрузку каталога
type Service struct {
	cart     *cart.Store
	orders   OrderGateway
	payments PaymentGateway
	reloader CatalogReloader
	logger   *zap.Logger
}

// NewService создаёт новый Service
// Принимает интерфейсы как зависимости - это позволяет подменять их в тестах
func NewService(
	cartStore *cart.Store,
	orders OrderGateway,
	payments PaymentGateway,
	reloader CatalogReloader,
	logger *zap.Logger,
) *Service {
	return &Service{
		cart:     cartStore,
		orders:   orders,
		payments: payments,
		reloader: reloader,
		logger:   logger,
	}
}

// Input содержит данные покупателя для оформления заказа
type Input struct {
	CustomerName  string
	CustomerPhone string
	Branch        drinks.Branch
}

// Result содержит итог попытки заказа
// PaymentErr заполнен только в состоянии PaymentFailed: заказ создан,
// корзина очищена, но запись оплаты не прошла
type Result struct {
	State         State
	OrderID       int64
	OrderNumber   string
	TransactionID string
	PaymentErr    error
}

// Submit выполняет полный цикл оформления заказа
//
// Порядок шагов фиксированный: валидация без сетевых вызовов, создание
// заказа, запись оплаты, очистка корзины, перезагрузка каталога. Ошибка
// записи оплаты не откатывает заказ - корзина всё равно очищается,
// каталог всё равно перезагружается
func (s *Service) Submit(ctx context.Context, input Input) (Result, error) {
	result := Result{State: StateValidating}

	// 1. Валидация до любого сетевого вызова
	if err := s.validate(input); err != nil {
		s.logger.Info("order rejected by local validation", zap.String("reason", err.Error()))
		result.State = StateValidationFailed
		return result, err
	}

	// 2. Отправляем заказ
	result.State = StateSubmitting

	lines := s.cart.Lines()
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			DrinkID:  line.ItemID,
			Quantity: line.Quantity,
		})
	}

	placed, err := s.orders.PlaceOrder(ctx, OrderDraft{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Branch:        input.Branch,
		Items:         items,
	})
	if err != nil {
		// Корзина и введённые данные не трогаются - покупатель может
		// повторить отправку
		s.logger.Warn("order submission failed", zap.Error(err))
		result.State = StateSubmitFailed
		return result, err
	}

	result.State = StateOrderPlaced
	result.OrderID = placed.OrderID
	result.OrderNumber = placed.OrderNumber
	s.logger.Info("order placed",
		zap.Int64("order_id", placed.OrderID),
		zap.String("order_number", placed.OrderNumber))

	// 3. Записываем оплату
	result.State = StatePayingConfirming
	txID, payErr := s.payments.RecordPayment(ctx, placed.OrderID, strings.TrimSpace(input.CustomerPhone))

	// 4. Заказ создан - корзина очищается и каталог перезагружается
	// независимо от исхода оплаты
	s.cart.Clear()
	if _, reloadErr := s.reloader.Load(ctx); reloadErr != nil {
		s.logger.Warn("catalog reload after order failed", zap.Error(reloadErr))
	}

	if payErr != nil {
		s.logger.Warn("payment recording failed, order is NOT rolled back",
			zap.Int64("order_id", placed.OrderID),
			zap.Error(payErr))
		result.State = StatePaymentFailed
		result.PaymentErr = &PaymentRecordingError{OrderID: placed.OrderID, Err: payErr}
		return result, nil
	}

	result.State = StateCompleted
	result.TransactionID = txID
	s.logger.Info("payment recorded",
		zap.Int64("order_id", placed.OrderID),
		zap.String("transaction_id", txID))
	return result, nil
}

// validate проверяет предусловия заказа без обращения к сети
func (s *Service) validate(input Input) error {
	if s.cart.IsEmpty() {
		return &ValidationError{Reason: "your cart is empty"}
	}
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerPhone) == "" {
		return &ValidationError{Reason: "please fill in your name and phone number"}
	}
	if input.Branch.IsZero() {
		return &ValidationError{Reason: "branch not assigned"}
	}
	return nil
}
