package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// InitiatePayment godoc
//	@Summary		Start checkout for the current cart
//	@Description	Prices the cart, requests a payment from the selected or active gateway and returns the redirect URL.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.InitiatePaymentRequest	false	"Optional gateway and coupon"
//	@Success		201			{object}	models.InitiatePaymentResponse	"Payment initiated"
//	@Failure		400			{object}	response.ErrorResponse			"Cart empty or expired, coupon rejected"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		409			{object}	response.ErrorResponse			"A payment is already in progress"
//	@Failure		429			{object}	response.ErrorResponse			"Too many checkout attempts"
//	@Failure		502			{object}	response.ErrorResponse			"Gateway unavailable"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) InitiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.InitiatePaymentRequest
		if r.ContentLength != 0 {
			if !utils.ParseAndValidate(r, w, &req, h.validator) {
				logger.Warn("Invalid checkout input")
				return
			}
		}

		result, err := h.checkoutService.InitiatePayment(r.Context(), claims.UserID, claims.Email, &req)
		if err != nil {
			logger.Error("Failed to initiate payment", slog.String("gateway", string(req.Gateway)), slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Payment initiated",
			slog.String("transactionId", result.TransactionID.String()),
			slog.String("gateway", string(result.Gateway)),
			slog.String("amount", result.Amount.String()))
		response.Success(w, http.StatusCreated, result)
	}
}
