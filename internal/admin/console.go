package admin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// Console - интерактивная админская сессия: вход, остатки,
// обновление напитков и отчёты о продажах
// Токен сессии живёт только в памяти процесса
type Console struct {
	api    API
	logger *zap.Logger

	in  *bufio.Scanner
	out io.Writer
	eof bool

	token string
}

// NewConsole создаёт админскую консоль
func NewConsole(api API, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	return &Console{
		api:    api,
		logger: logger,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run проводит администратора через вход и главное меню
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== SPRING DRINKS ADMIN ===")

	if err := c.authenticate(ctx); err != nil {
		return err
	}

	for {
		fmt.Fprintln(c.out, "\n=== MAIN MENU ===")
		fmt.Fprintln(c.out, "1. View stock")
		fmt.Fprintln(c.out, "2. Update drinks")
		fmt.Fprintln(c.out, "3. Sales reports")
		fmt.Fprintln(c.out, "0. Logout and exit")

		choice := c.prompt("Choose option: ")
		if c.eof {
			break
		}

		switch choice {
		case "1":
			c.viewStock(ctx)
		case "2":
			c.updateDrinks(ctx)
		case "3":
			c.salesReports(ctx)
		case "0":
			c.token = ""
			fmt.Fprintln(c.out, "Logged out. Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice, try again")
		}
	}
	return c.in.Err()
}

// authenticate спрашивает логин/пароль, предлагая регистрацию при желании
func (c *Console) authenticate(ctx context.Context) error {
	if c.prompt("Register a new admin? (yes/no): ") == "yes" {
		username := c.prompt("New username: ")
		password := c.prompt("New password: ")
		if err := c.api.Register(ctx, username, password); err != nil {
			fmt.Fprintf(c.out, "Registration failed: %s\n", err)
		} else {
			fmt.Fprintln(c.out, "Registration successful! You can now log in.")
		}
	}

	for {
		username := c.prompt("Username: ")
		password := c.prompt("Password: ")

		if c.eof {
			return fmt.Errorf("login aborted")
		}
		if username == "" || password == "" {
			fmt.Fprintln(c.out, "Please enter both username and password.")
			continue
		}

		token, err := c.api.Login(ctx, username, password)
		if err != nil {
			c.logger.Warn("admin login failed", zap.String("username", username), zap.Error(err))
			fmt.Fprintf(c.out, "Login failed: %s\n", err)
			continue
		}

		c.token = token
		fmt.Fprintln(c.out, "Login successful!")
		return nil
	}
}

// viewStock печатает таблицу остатков по всем напиткам
func (c *Console) viewStock(ctx context.Context) {
	items, err := c.api.ListDrinks(ctx, "")
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load stock: %s\n", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No drinks in stock.")
		return
	}

	fmt.Fprintf(c.out, "\n%-6s %-20s %-12s %s\n", "ID", "Drink", "Price", "Quantity")
	for _, item := range items {
		fmt.Fprintf(c.out, "%-6d %-20s KSH %-8s %d\n",
			item.ID, item.Name, item.UnitPrice.StringFixed(2), item.AvailableQuantity)
	}
}

// updateDrinks спрашивает напиток и новые значения, отправляет обновление
func (c *Console) updateDrinks(ctx context.Context) {
	c.viewStock(ctx)

	idStr := c.prompt("\nDrink ID to update (or empty to cancel): ")
	if idStr == "" {
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Please enter a valid number")
		return
	}

	priceStr := c.prompt("New price: ")
	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		fmt.Fprintln(c.out, "Please enter a valid non-negative price")
		return
	}

	qtyStr := c.prompt("New quantity: ")
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 0 {
		fmt.Fprintln(c.out, "Please enter a valid non-negative quantity")
		return
	}

	if err := c.api.UpdateDrink(ctx, c.token, id, price, qty); err != nil {
		fmt.Fprintf(c.out, "Failed to update drink: %s\n", err)
		return
	}
	fmt.Fprintln(c.out, "Updated!")
}

// salesReports показывает отчёт по филиалу или сводный по всем
func (c *Console) salesReports(ctx context.Context) {
	fmt.Fprintln(c.out, "\nKnown branches:")
	for _, b := range drinks.KnownBranches() {
		fmt.Fprintf(c.out, "  %s\n", b)
	}

	choice := c.prompt("Branch name (or empty for consolidated): ")
	if choice == "" {
		report, err := c.api.ConsolidatedReport(ctx, c.token)
		if err != nil {
			fmt.Fprintf(c.out, "Failed to load sales report: %s\n", err)
			return
		}
		c.renderConsolidated(report)
		return
	}

	branch, err := drinks.ParseBranch(strings.ToUpper(choice))
	if err != nil {
		fmt.Fprintf(c.out, "%s\n", err)
		return
	}

	report, err := c.api.BranchReport(ctx, c.token, branch)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load sales report: %s\n", err)
		return
	}
	c.renderReport(report)
}

// renderReport печатает отчёт одного филиала
// Напитки отсортированы по убыванию выручки
func (c *Console) renderReport(report SalesReport) {
	fmt.Fprintf(c.out, "\nTotal branch sales: KSH %s\n", report.TotalSales.StringFixed(2))
	if len(report.DrinksSold) == 0 {
		fmt.Fprintln(c.out, "No sales recorded for this period.")
		return
	}

	names := make([]string, 0, len(report.DrinksSold))
	for name := range report.DrinksSold {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return report.DrinksSold[names[i]].TotalPrice.GreaterThan(report.DrinksSold[names[j]].TotalPrice)
	})

	fmt.Fprintf(c.out, "%-20s %-10s %s\n", "Drink", "Qty sold", "Revenue")
	for _, name := range names {
		sale := report.DrinksSold[name]
		fmt.Fprintf(c.out, "%-20s %-10d KSH %s\n", name, sale.Quantity, sale.TotalPrice.StringFixed(2))
	}
}

// renderConsolidated печатает сводный отчёт по всем филиалам
func (c *Console) renderConsolidated(report ConsolidatedReport) {
	fmt.Fprintf(c.out, "\nGrand total: KSH %s\n", report.GrandTotalSales.StringFixed(2))
	if len(report.SalesByBranch) == 0 {
		fmt.Fprintln(c.out, "No sales data available for any branch.")
		return
	}

	branches := make([]string, 0, len(report.SalesByBranch))
	for b := range report.SalesByBranch {
		branches = append(branches, string(b))
	}
	sort.Strings(branches)

	for _, b := range branches {
		fmt.Fprintf(c.out, "\nBranch: %s\n", b)
		c.renderReport(report.SalesByBranch[drinks.Branch(b)])
	}
}

// prompt печатает вопрос и читает одну строку ответа
// При исчерпании ввода поднимает флаг eof, чтобы циклы переспросов
// не вращались бесконечно на закрытом stdin
func (c *Console) prompt(question string) string {
	if c.eof {
		return ""
	}
	fmt.Fprint(c.out, question)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}
