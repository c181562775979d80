package kiosk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/cart"
	"github.com/ICS2-1D/spring-drinks/internal/catalog"
	"github.com/ICS2-1D/spring-drinks/internal/checkout"
	"github.com/ICS2-1D/spring-drinks/internal/client/api"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// drinkRow - строка каталога тестового сервера
type drinkRow struct {
	ID       int64
	Name     string
	Price    float64
	Quantity int
}

// branchServer - тестовый сервер филиала с изменяемыми остатками
// Остатки уменьшаются при принятом заказе, как на настоящем сервере
type branchServer struct {
	mu           sync.Mutex
	drinks       []drinkRow
	nextOrderID  int64
	failPayment  bool
	rejectOrders bool

	drinksCalls  int
	orderCalls   int
	paymentCalls int
}

func (b *branchServer) router(t *testing.T) chi.Router {
	t.Helper()

	r := chi.NewRouter()

	r.Get("/drinks", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.drinksCalls++

		out := make([]map[string]any, 0, len(b.drinks))
		for _, d := range b.drinks {
			out = append(out, map[string]any{
				"id":            d.ID,
				"drinkName":     d.Name,
				"drinkPrice":    d.Price,
				"drinkQuantity": d.Quantity,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(out))
	})

	r.Post("/order", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.orderCalls++

		var body struct {
			Items []struct {
				DrinkID  int64 `json:"drinkId"`
				Quantity int   `json:"quantity"`
			} `json:"items"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))

		if b.rejectOrders {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "Insufficient stock for drink: Cola",
			})
			return
		}

		for _, item := range body.Items {
			for i := range b.drinks {
				if b.drinks[i].ID == item.DrinkID {
					if b.drinks[i].Quantity < item.Quantity {
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(http.StatusConflict)
						_ = json.NewEncoder(w).Encode(map[string]string{
							"message": "Insufficient stock for drink: " + b.drinks[i].Name,
						})
						return
					}
					b.drinks[i].Quantity -= item.Quantity
				}
			}
		}

		b.nextOrderID++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"orderId":     b.nextOrderID,
			"orderNumber": fmt.Sprintf("ORD-%d", b.nextOrderID),
		})
	})

	r.Post("/payments", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.paymentCalls++

		if b.failPayment {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "Payment service unavailable",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"transactionId": uuid.NewString(),
		})
	})

	return r
}

// newTestSession собирает полный стек киоска поверх тестового сервера
// и подаёт ему сценарий команд
func newTestSession(t *testing.T, server *branchServer, script string) (*Session, *cart.Store, *strings.Builder) {
	t.Helper()

	ts := httptest.NewServer(server.router(t))
	t.Cleanup(ts.Close)

	logger := zap.NewNop()
	client := api.NewClient(ts.URL, 5*time.Second, logger)

	catalogStore := catalog.NewStore()
	loader := catalog.NewLoader(client, catalogStore, drinks.BranchNairobi, logger)
	cartStore := cart.NewStore(catalogStore)
	checkoutService := checkout.NewService(cartStore, client, client, loader, logger)

	var out strings.Builder
	session := NewSession(drinks.BranchNairobi, catalogStore, loader, cartStore,
		checkoutService, strings.NewReader(script), &out, logger)

	return session, cartStore, &out
}

func defaultServer() *branchServer {
	return &branchServer{
		drinks: []drinkRow{
			{ID: 1, Name: "Cola", Price: 50, Quantity: 2},
			{ID: 2, Name: "Fanta", Price: 40, Quantity: 5},
		},
	}
}

func TestSession_OrderFlow(t *testing.T) {
	// Сценарий целиком: меню, две Cola, оформление, подтверждение, выход
	server := defaultServer()
	script := strings.Join([]string{
		"add 1",
		"add 1",
		"checkout",
		"John Kamau",
		"0712345678",
		"yes",
		"cart",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	output := out.String()
	require.Contains(t, output, "=== WELCOME TO SPRING DRINKS ===")
	require.Contains(t, output, "Connected to NAIROBI branch")
	require.Contains(t, output, "Cola added to cart!")
	require.Contains(t, output, "Cola quantity updated.")
	require.Contains(t, output, "TOTAL: KSH 100.00")
	require.Contains(t, output, "ORDER PLACED! Order #ORD-1")
	require.Contains(t, output, "Payment successful and recorded!")

	// После заказа корзина пуста, каталог перезагружен с новыми остатками
	require.True(t, cartStore.IsEmpty())
	require.Contains(t, output, "Your cart is empty.")
	require.Equal(t, 1, server.orderCalls)
	require.Equal(t, 1, server.paymentCalls)
	require.Equal(t, 2, server.drinksCalls) // стартовая загрузка + после заказа

	// Сервер списал остаток, меню после заказа показывает out of stock
	require.Contains(t, output, "out of stock")
}

func TestSession_StockLimit(t *testing.T) {
	server := defaultServer() // Cola: 2 в наличии
	script := strings.Join([]string{
		"add 1",
		"add 1",
		"add 1",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	require.Contains(t, out.String(), "no more Cola in stock")
	require.Equal(t, 2, cartStore.Lines()[0].Quantity)
	require.Equal(t, 0, server.orderCalls)
}

func TestSession_PaymentFailure(t *testing.T) {
	server := defaultServer()
	server.failPayment = true
	script := strings.Join([]string{
		"add 1",
		"checkout",
		"John Kamau",
		"0712345678",
		"yes",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	output := out.String()
	require.Contains(t, output, "ORDER PLACED! Order #ORD-1")
	require.Contains(t, output, "Order placed, but payment failed. Contact support.")

	// Заказ не откатывается: корзина очищена и каталог перезагружен
	require.True(t, cartStore.IsEmpty())
	require.Equal(t, 1, server.orderCalls)
	require.Equal(t, 1, server.paymentCalls)
	require.Equal(t, 2, server.drinksCalls)
}

func TestSession_OrderRejectedKeepsCart(t *testing.T) {
	// Другой покупатель успел выкупить Cola между загрузкой меню и заказом:
	// сервер отклоняет заказ, хотя клиентская корзина его пропустила
	server := defaultServer()
	server.rejectOrders = true
	script := strings.Join([]string{
		"add 1",
		"add 1",
		"checkout",
		"John Kamau",
		"0712345678",
		"yes",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	output := out.String()
	require.Contains(t, output, "Insufficient stock for drink: Cola")
	require.NotContains(t, output, "ORDER PLACED!")

	// Корзина не тронута - покупатель может поправить заказ и повторить
	require.Len(t, cartStore.Lines(), 1)
	require.Equal(t, 2, cartStore.Lines()[0].Quantity)
	require.Equal(t, 0, server.paymentCalls)
}

func TestSession_CheckoutCancelled(t *testing.T) {
	server := defaultServer()
	script := strings.Join([]string{
		"add 1",
		"checkout",
		"John Kamau",
		"0712345678",
		"no",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	require.Contains(t, out.String(), "Order cancelled")
	require.Len(t, cartStore.Lines(), 1)
	require.Equal(t, 0, server.orderCalls)
}

func TestSession_CheckoutEmptyCart(t *testing.T) {
	server := defaultServer()
	script := "checkout\nquit\n"

	session, _, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))
	require.Contains(t, out.String(), "Your cart is empty!")
	require.Equal(t, 0, server.orderCalls)
}

func TestSession_QuantityCommands(t *testing.T) {
	server := defaultServer()
	script := strings.Join([]string{
		"add 2",
		"+ 2",
		"+ 2",
		"- 2",
		"cart",
		"rm 2",
		"cart",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	output := out.String()
	require.Contains(t, output, "x2 ") // после +,+,- осталось 2 штуки
	require.Contains(t, output, "Your cart is empty.")
	require.True(t, cartStore.IsEmpty())
}

func TestSession_InvalidInput(t *testing.T) {
	server := defaultServer()
	script := strings.Join([]string{
		"frobnicate",
		"add",
		"add abc",
		"add 99",
		"quit",
	}, "\n")

	session, cartStore, out := newTestSession(t, server, script)

	require.NoError(t, session.Run(context.Background()))

	output := out.String()
	require.Contains(t, output, "Invalid choice, try again")
	require.Contains(t, output, "please enter a drink number")
	require.Contains(t, output, "please enter a valid number")
	require.Contains(t, output, "Invalid drink number")
	require.True(t, cartStore.IsEmpty())
}

func TestSession_HelpListsEveryCommand(t *testing.T) {
	server := defaultServer()
	session, _, out := newTestSession(t, server, "help\nquit\n")

	require.NoError(t, session.Run(context.Background()))

	// help перечисляет команды из той же таблицы, по которой идёт dispatch
	output := out.String()
	for _, a := range actions {
		usage := a.usage
		if usage == "" {
			usage = a.name
		}
		require.Contains(t, output, usage)
	}

	// Основное имя команды видно рядом с алиасом
	require.Contains(t, output, "inc|+ <drink#>")
	require.Contains(t, output, "dec|- <drink#>")
}

func TestSession_EndOfInputEndsSession(t *testing.T) {
	server := defaultServer()
	session, _, out := newTestSession(t, server, "add 1\n")

	require.NoError(t, session.Run(context.Background()))
	require.Contains(t, out.String(), "Thank you for visiting!")
}
