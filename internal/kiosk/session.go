package kiosk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/cart"
	"github.com/ICS2-1D/spring-drinks/internal/catalog"
	"github.com/ICS2-1D/spring-drinks/internal/checkout"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// Session - интерактивная сессия терминала заказов для одного покупателя
// Источник истины о содержимом заказа - cart.Store; всё, что печатается
// на экран, является производной от состояния store, а не наоборот
type Session struct {
	branch   drinks.Branch
	catalog  *catalog.Store
	loader   *catalog.Loader
	cart     *cart.Store
	checkout *checkout.Service
	logger   *zap.Logger

	in  *bufio.Scanner
	out io.Writer
}

// NewSession создаёт сессию терминала
// in/out передаются снаружи, чтобы тесты могли подать сценарий команд
// и проверить вывод
func NewSession(
	branch drinks.Branch,
	catalogStore *catalog.Store,
	loader *catalog.Loader,
	cartStore *cart.Store,
	checkoutService *checkout.Service,
	in io.Reader,
	out io.Writer,
	logger *zap.Logger,
) *Session {
	return &Session{
		branch:   branch,
		catalog:  catalogStore,
		loader:   loader,
		cart:     cartStore,
		checkout: checkoutService,
		logger:   logger,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// errQuit завершает цикл команд; это не ошибка для пользователя
var errQuit = errors.New("quit")

// Run загружает каталог и крутит цикл команд до выхода покупателя
// или конца ввода
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== WELCOME TO SPRING DRINKS ===")
	fmt.Fprintf(s.out, "Connected to %s branch\n", s.branch)

	if _, err := s.loader.Load(ctx); err != nil {
		fmt.Fprintln(s.out, "Failed to load drinks. Please try again later.")
	} else {
		s.renderMenu()
	}
	fmt.Fprintln(s.out, `Type "help" for the list of commands.`)

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			break
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		if err := s.dispatch(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			// Все ошибки команд показываются пользователю и не роняют сессию
			fmt.Fprintln(s.out, s.userMessage(err))
		}
	}

	fmt.Fprintln(s.out, "Thank you for visiting!")
	return s.in.Err()
}

// dispatch разбирает строку и передаёт её обработчику команды
func (s *Session) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])

	action, ok := actionFor(name)
	if !ok {
		fmt.Fprintln(s.out, `Invalid choice, try again (type "help" for commands)`)
		return nil
	}

	s.logger.Debug("command dispatched", zap.String("command", name))
	return action.run(ctx, s, fields[1:])
}

// userMessage превращает ошибку в сообщение для покупателя
// Тексты ошибок сервера показываются как есть
func (s *Session) userMessage(err error) string {
	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason
	}

	switch {
	case errors.Is(err, cart.ErrStockLimit):
		return "Maximum stock reached!"
	case errors.Is(err, cart.ErrOutOfStock):
		return "Out of stock!"
	case errors.Is(err, cart.ErrUnknownItem):
		return "Invalid drink number"
	}

	return err.Error()
}

// renderMenu печатает каталог напитков филиала
func (s *Session) renderMenu() {
	items := s.catalog.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "No drinks available at this branch.")
		return
	}

	fmt.Fprintf(s.out, "\n=== DRINKS MENU (%s) ===\n", s.branch)
	for _, item := range items {
		if item.AvailableQuantity <= 0 {
			fmt.Fprintf(s.out, " [%d] %-20s KSH %8s   out of stock\n",
				item.ID, item.Name, item.UnitPrice.StringFixed(2))
			continue
		}
		fmt.Fprintf(s.out, " [%d] %-20s KSH %8s   available: %d\n",
			item.ID, item.Name, item.UnitPrice.StringFixed(2), item.AvailableQuantity)
	}
}

// renderCart печатает проекцию корзины: позиции и итог
// Проекция пересчитывается заново при каждом вызове
func (s *Session) renderCart() {
	view := cart.Project(s.cart)
	if len(view.Lines) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty.")
		return
	}

	fmt.Fprintln(s.out, "\n=== YOUR CART ===")
	for _, lv := range view.Lines {
		marker := ""
		if lv.AtStockLimit {
			marker = "  (max)"
		}
		fmt.Fprintf(s.out, " [%d] %-20s x%-3d KSH %8s%s\n",
			lv.ItemID, lv.Name, lv.Quantity,
			lv.UnitPrice.Mul(decimalFromInt(lv.Quantity)).StringFixed(2), marker)
	}
	fmt.Fprintf(s.out, "TOTAL: KSH %s\n", view.Total.StringFixed(2))
}

// prompt печатает вопрос и читает одну строку ответа
func (s *Session) prompt(question string) string {
	fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}
