package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AdminHandler serves the store operator endpoints. Routes are wrapped with
// AuthMiddleware.RequireAdmin.
type AdminHandler struct {
	lifecycle  service.CartLifecycleManager
	settings   service.SettingsService
	promotions service.PromotionService
	validator  *validator.Validate
	now        func() time.Time
}

func NewAdminHandler(lifecycle service.CartLifecycleManager, settings service.SettingsService, promotions service.PromotionService) *AdminHandler {
	return &AdminHandler{
		lifecycle:  lifecycle,
		settings:   settings,
		promotions: promotions,
		validator:  validator.New(),
		now:        time.Now,
	}
}

// SweepCarts godoc
//	@Summary		Run the cart expiry sweep now
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	models.SweepReport		"Sweep report"
//	@Failure		403	{object}	response.ErrorResponse	"Admin access required"
//	@Security		BearerAuth
//	@Router			/admin/carts/sweep [post]
func (h *AdminHandler) SweepCarts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		report, err := h.lifecycle.Sweep(r.Context(), h.now())
		if err != nil {
			logger.Error("Manual sweep failed", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Manual sweep finished",
			slog.Int("warned", report.Warned),
			slog.Int("expired", report.Expired),
			slog.Int("deleted", report.Deleted))
		response.Success(w, http.StatusOK, report)
	}
}

// GetSettings godoc
//	@Summary		Get store checkout settings
//	@Description	Gateway credentials are masked.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	models.SettingsSnapshot	"Settings"
//	@Failure		403	{object}	response.ErrorResponse	"Admin access required"
//	@Security		BearerAuth
//	@Router			/admin/settings [get]
func (h *AdminHandler) GetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		settings, err := h.settings.Masked(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load settings", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, settings)
	}
}

// UpdateSettings godoc
//	@Summary		Update store checkout settings
//	@Description	Credentials are write-only; empty or masked values keep the stored secret. The version must match the stored one.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			settings	body		models.UpdateSettingsRequest	true	"Settings changes"
//	@Success		200			{object}	models.SettingsSnapshot			"Updated settings, masked"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Failure		403			{object}	response.ErrorResponse			"Admin access required"
//	@Failure		409			{object}	response.ErrorResponse			"Settings changed since they were read"
//	@Security		BearerAuth
//	@Router			/admin/settings [put]
func (h *AdminHandler) UpdateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpdateSettingsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid settings input")
			return
		}

		settings, err := h.settings.Update(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to update settings", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Store settings updated", slog.Int64("version", settings.Version), slog.String("activeGateway", string(settings.ActiveGateway)))
		response.Success(w, http.StatusOK, settings)
	}
}

// CreateSale godoc
//	@Summary		Create a product sale
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			sale	body		models.CreateSaleRequest	true	"Sale window and products"
//	@Success		201		{object}	models.Sale					"Created sale"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		403		{object}	response.ErrorResponse		"Admin access required"
//	@Security		BearerAuth
//	@Router			/admin/sales [post]
func (h *AdminHandler) CreateSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateSaleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid sale input")
			return
		}

		sale, err := h.promotions.CreateSale(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create sale", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Sale created", slog.String("saleId", sale.ID.String()), slog.Int("products", len(sale.ProductIDs)))
		response.Success(w, http.StatusCreated, sale)
	}
}

// CreateCoupon godoc
//	@Summary		Create a coupon
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.CreateCouponRequest	true	"Coupon definition"
//	@Success		201		{object}	models.Coupon				"Created coupon"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		403		{object}	response.ErrorResponse		"Admin access required"
//	@Failure		409		{object}	response.ErrorResponse		"Coupon code already exists"
//	@Security		BearerAuth
//	@Router			/admin/coupons [post]
func (h *AdminHandler) CreateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid coupon input")
			return
		}

		coupon, err := h.promotions.CreateCoupon(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create coupon", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Coupon created", slog.String("code", coupon.Code))
		response.Success(w, http.StatusCreated, coupon)
	}
}
