package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rewardly/cashback-system/internal/api/metrics"
	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

type MerchantHandler struct {
	merchantService ports.MerchantService
}

func NewMerchantHandler(merchantService ports.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

type createMerchantRequest struct {
	Name                      string   `json:"name" validate:"required"`
	DefaultCashbackPercentage *float64 `json:"default_cashback_percentage" validate:"required"`
	Active                    *bool    `json:"active"`
}

type merchantResponse struct {
	ID                        string  `json:"id"`
	Name                      string  `json:"name"`
	DefaultCashbackPercentage float64 `json:"default_cashback_percentage"`
	Active                    bool    `json:"active"`
}

type paginatedMerchantsResponse struct {
	Items    []merchantResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type merchantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type merchantStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Create enrolls a new merchant. Admin only.
func (h *MerchantHandler) Create(c echo.Context) error {
	var req createMerchantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	merchant, err := h.merchantService.CreateMerchant(c.Request().Context(), ports.CreateMerchantInput{
		Name:                      req.Name,
		DefaultCashbackPercentage: *req.DefaultCashbackPercentage,
		Active:                    active,
	})
	if err != nil {
		return err
	}

	metrics.MerchantsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toMerchantResponse(merchant))
}

// List returns a page of merchants, optionally filtered by active status.
func (h *MerchantHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "active must be true or false")
		}
		active = &v
	}

	filter := ports.ListMerchantsFilter{Page: page, PageSize: pageSize, Active: active}
	items, total, err := h.merchantService.ListMerchants(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := paginatedMerchantsResponse{
		Items:    make([]merchantResponse, 0, len(items)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, m := range items {
		resp.Items = append(resp.Items, toMerchantResponse(m))
	}

	return c.JSON(http.StatusOK, resp)
}

// SetStatus toggles a merchant's active flag. Admin only.
func (h *MerchantHandler) SetStatus(c echo.Context) error {
	merchantID := c.Param("id")

	var req merchantStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	merchant, err := h.merchantService.SetMerchantStatus(c.Request().Context(), merchantID, req.Status == "active")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, merchantStatusResponse{
		ID:     merchant.ID,
		Status: statusLabel(merchant.Active),
	})
}

func toMerchantResponse(m *domain.Merchant) merchantResponse {
	return merchantResponse{
		ID:                        m.ID,
		Name:                      m.Name,
		DefaultCashbackPercentage: m.DefaultCashbackPercentage,
		Active:                    m.Active,
	}
}

func statusLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
