package kiosk

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ICS2-1D/spring-drinks/internal/cart"
	"github.com/ICS2-1D/spring-drinks/internal/checkout"
)

// action связывает команду терминала с обработчиком
// Таблица команд декларативная: обработчики изменяют cart.Store,
// а отрисовка строится отдельно, по проекции состояния
type action struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     func(ctx context.Context, s *Session, args []string) error
}

// actions - полный список команд терминала в порядке вывода help
// Заполняется в init: обработчик help читает этот же список,
// и инициализатор на уровне пакета замкнулся бы сам на себя
var actions []action

func init() {
	actions = []action{
		{
			name: "menu",
			help: "show the drinks menu",
			run: func(ctx context.Context, s *Session, args []string) error {
				s.renderMenu()
				return nil
			},
		},
		{
			name: "reload",
			help: "reload the drinks menu from the server",
			run: func(ctx context.Context, s *Session, args []string) error {
				if _, err := s.loader.Load(ctx); err != nil {
					return fmt.Errorf("failed to load drinks, please try again later")
				}
				s.renderMenu()
				return nil
			},
		},
		{
			name:  "add",
			usage: "add <drink#>",
			help:  "add a drink to the cart",
			run:   runAdd,
		},
		{
			name:    "inc",
			aliases: []string{"+"},
			usage:   "inc|+ <drink#>",
			help:    "increase quantity by one",
			run: func(ctx context.Context, s *Session, args []string) error {
				return runChange(s, args, +1)
			},
		},
		{
			name:    "dec",
			aliases: []string{"-"},
			usage:   "dec|- <drink#>",
			help:    "decrease quantity by one (removes the line at zero)",
			run: func(ctx context.Context, s *Session, args []string) error {
				return runChange(s, args, -1)
			},
		},
		{
			name:  "rm",
			usage: "rm <drink#>",
			help:  "remove a drink from the cart",
			run: func(ctx context.Context, s *Session, args []string) error {
				id, err := parseDrinkID(args)
				if err != nil {
					return err
				}
				s.cart.Remove(id)
				s.renderCart()
				return nil
			},
		},
		{
			name: "cart",
			help: "show the cart and the total",
			run: func(ctx context.Context, s *Session, args []string) error {
				s.renderCart()
				return nil
			},
		},
		{
			name: "checkout",
			help: "place the order and record the payment",
			run:  runCheckout,
		},
		{
			name: "help",
			run: func(ctx context.Context, s *Session, args []string) error {
				for _, a := range actions {
					u := a.usage
					if u == "" {
						u = a.name
					}
					fmt.Fprintf(s.out, "  %-18s %s\n", u, a.help)
				}
				return nil
			},
		},
		{
			name:    "quit",
			aliases: []string{"exit", "0"},
			help:    "leave the kiosk",
			run: func(ctx context.Context, s *Session, args []string) error {
				return errQuit
			},
		},
	}
}

// actionFor ищет команду по имени или алиасу
func actionFor(name string) (action, bool) {
	for _, a := range actions {
		if a.name == name {
			return a, true
		}
		for _, alias := range a.aliases {
			if alias == name {
				return a, true
			}
		}
	}
	return action{}, false
}

// runAdd добавляет напиток в корзину и печатает результат
func runAdd(ctx context.Context, s *Session, args []string) error {
	id, err := parseDrinkID(args)
	if err != nil {
		return err
	}

	item, ok := s.catalog.Get(id)
	if !ok {
		return cart.ErrUnknownItem
	}

	existed := hasLine(s, id)
	if err := s.cart.Add(id); err != nil {
		if errors.Is(err, cart.ErrStockLimit) {
			return fmt.Errorf("no more %s in stock", item.Name)
		}
		return err
	}

	if existed {
		fmt.Fprintf(s.out, "%s quantity updated.\n", item.Name)
	} else {
		fmt.Fprintf(s.out, "%s added to cart!\n", item.Name)
	}
	s.renderCart()
	return nil
}

// runChange изменяет количество позиции на delta
func runChange(s *Session, args []string, delta int) error {
	id, err := parseDrinkID(args)
	if err != nil {
		return err
	}
	if err := s.cart.ChangeQuantity(id, delta); err != nil {
		return err
	}
	s.renderCart()
	return nil
}

// runCheckout спрашивает данные покупателя и оформляет заказ
func runCheckout(ctx context.Context, s *Session, args []string) error {
	if s.cart.IsEmpty() {
		return &checkout.ValidationError{Reason: "Your cart is empty!"}
	}

	s.renderCart()

	name := s.prompt("Enter your name: ")
	phone := s.prompt("Enter your phone: ")

	confirm := s.prompt("Confirm order? (yes/no): ")
	if confirm != "yes" {
		fmt.Fprintln(s.out, "Order cancelled")
		return nil
	}

	fmt.Fprintln(s.out, "Placing your order...")
	result, err := s.checkout.Submit(ctx, checkout.Input{
		CustomerName:  name,
		CustomerPhone: phone,
		Branch:        s.branch,
	})
	if err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			return err
		}
		return fmt.Errorf("order failed: %s", err)
	}

	fmt.Fprintf(s.out, "ORDER PLACED! Order #%s\n", result.OrderNumber)

	if result.State == checkout.StatePaymentFailed {
		// Заказ создан и корзина уже очищена; оплату записать не удалось
		fmt.Fprintln(s.out, "Order placed, but payment failed. Contact support.")
	} else {
		fmt.Fprintf(s.out, "Payment successful and recorded! Tx ID: %s\n", result.TransactionID)
	}

	s.renderMenu()
	return nil
}

// parseDrinkID разбирает номер напитка из аргументов команды
func parseDrinkID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("please enter a drink number")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("please enter a valid number")
	}
	return id, nil
}

// hasLine сообщает, есть ли напиток уже в корзине
func hasLine(s *Session, id int64) bool {
	for _, line := range s.cart.Lines() {
		if line.ItemID == id {
			return true
		}
	}
	return false
}

// decimalFromInt - локальный помощник для пересчёта сумм в отрисовке
func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
