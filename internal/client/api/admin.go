package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/admin"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// credentialsRequest - тело POST /admin/login и /admin/register
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// drinkUpdateRequest - тело PUT /admin/drinks/{id}
// Цена уходит как JSON число, поэтому decimal конвертируется в float
// только на этой границе
type drinkUpdateRequest struct {
	ID            int64   `json:"id"`
	DrinkPrice    float64 `json:"drinkPrice"`
	DrinkQuantity int     `json:"drinkQuantity"`
}

// salesReportDTO - ответ GET /reports/branch/{branch}
type salesReportDTO struct {
	TotalSales *float64                 `json:"totalSales"`
	DrinksSold map[string]drinkSalesDTO `json:"drinksSold"`
}

type drinkSalesDTO struct {
	Quantity   *int     `json:"quantity"`
	TotalPrice *float64 `json:"totalPrice"`
}

// consolidatedReportDTO - ответ GET /reports/consolidated
type consolidatedReportDTO struct {
	GrandTotalSales *float64                  `json:"grandTotalSales"`
	SalesByBranch   map[string]salesReportDTO `json:"salesByBranch"`
}

// Login аутентифицирует администратора
// Сервер отвечает токеном в виде простого текста
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	token, err := c.doText(ctx, http.MethodPost, "/admin/login", "", credentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("empty token received from server")
	}
	return token, nil
}

// Register регистрирует нового администратора
func (c *Client) Register(ctx context.Context, username, password string) error {
	_, err := c.doText(ctx, http.MethodPost, "/admin/register", "", credentialsRequest{
		Username: username,
		Password: password,
	})
	return err
}

// UpdateDrink обновляет цену и количество напитка через админскую ручку
func (c *Client) UpdateDrink(ctx context.Context, token string, id int64, price decimal.Decimal, quantity int) error {
	priceFloat, exact := price.Float64()
	if !exact {
		c.logger.Debug("drink price rounded for transport",
			zap.Int64("drink_id", id),
			zap.String("price", price.String()))
	}
	req := drinkUpdateRequest{
		ID:            id,
		DrinkPrice:    priceFloat,
		DrinkQuantity: quantity,
	}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/drinks/%d", id), token, req, nil)
}

// BranchReport загружает отчёт о продажах одного филиала
func (c *Client) BranchReport(ctx context.Context, token string, branch drinks.Branch) (admin.SalesReport, error) {
	var dto salesReportDTO
	path := "/reports/branch/" + url.PathEscape(string(branch))
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &dto); err != nil {
		return admin.SalesReport{}, err
	}
	return dto.toReport()
}

// ConsolidatedReport загружает сводный отчёт по всем филиалам
func (c *Client) ConsolidatedReport(ctx context.Context, token string) (admin.ConsolidatedReport, error) {
	var dto consolidatedReportDTO
	if err := c.doJSON(ctx, http.MethodGet, "/reports/consolidated", token, nil, &dto); err != nil {
		return admin.ConsolidatedReport{}, err
	}
	if dto.GrandTotalSales == nil {
		return admin.ConsolidatedReport{}, fmt.Errorf("grandTotalSales is missing")
	}

	report := admin.ConsolidatedReport{
		GrandTotalSales: decimal.NewFromFloat(*dto.GrandTotalSales),
		SalesByBranch:   make(map[drinks.Branch]admin.SalesReport, len(dto.SalesByBranch)),
	}
	for name, branchDTO := range dto.SalesByBranch {
		branch, err := drinks.ParseBranch(name)
		if err != nil {
			return admin.ConsolidatedReport{}, fmt.Errorf("invalid branch in report: %w", err)
		}
		branchReport, err := branchDTO.toReport()
		if err != nil {
			return admin.ConsolidatedReport{}, fmt.Errorf("invalid report for branch %s: %w", name, err)
		}
		report.SalesByBranch[branch] = branchReport
	}
	return report, nil
}

// toReport проверяет схему DTO и преобразует его в доменную модель
func (d salesReportDTO) toReport() (admin.SalesReport, error) {
	if d.TotalSales == nil {
		return admin.SalesReport{}, fmt.Errorf("totalSales is missing")
	}

	report := admin.SalesReport{
		TotalSales: decimal.NewFromFloat(*d.TotalSales),
		DrinksSold: make(map[string]admin.DrinkSales, len(d.DrinksSold)),
	}
	for name, sale := range d.DrinksSold {
		if sale.Quantity == nil || sale.TotalPrice == nil {
			return admin.SalesReport{}, fmt.Errorf("incomplete sales entry for %s", name)
		}
		report.DrinksSold[name] = admin.DrinkSales{
			Quantity:   *sale.Quantity,
			TotalPrice: decimal.NewFromFloat(*sale.TotalPrice),
		}
	}
	return report, nil
}
