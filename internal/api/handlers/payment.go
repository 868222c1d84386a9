package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	successPage    string
	failurePage    string
}

func NewPaymentHandler(paymentService service.PaymentService, cfg config.GatewayConfig) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		successPage:    cfg.SuccessPageURL,
		failurePage:    cfg.FailurePageURL,
	}
}

// HandleCallback godoc
//	@Summary		Payment provider return URL
//	@Description	Verifies the payment named by the provider's callback and redirects the shopper to the success or failure page.
//	@Tags			Payments
//	@Param			gateway	path	string	true	"Gateway name"	Enums(zarinpal, sadad, stripe)
//	@Success		303		"Redirect to the result page"
//	@Failure		404		{object}	response.ErrorResponse	"Unknown gateway"
//	@Router			/payments/callback/{gateway} [get]
//	@Router			/payments/callback/{gateway} [post]
func (h *PaymentHandler) HandleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		name := models.GatewayName(strings.ToLower(r.PathValue("gateway")))
		logger = logger.With(slog.String("gateway", string(name)))

		// sadad posts a form; zarinpal and stripe use the query string
		if err := r.ParseForm(); err != nil {
			logger.Warn("Unreadable callback form", slog.String("error", err.Error()))
			response.Error(w, r, errors.BadRequestError("Invalid payment callback"))
			return
		}

		result, err := h.paymentService.HandleCallback(r.Context(), name, r.Form)
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound && result == nil {
			logger.Warn("Callback for unknown gateway or payment", slog.String("error", err.Error()))
			response.Error(w, r, err)
			return
		}

		if err != nil {
			logger.Error("Payment callback failed", slog.Any("error", err))
		}

		target := h.resultURL(result, err)
		logger.Info("Redirecting shopper after callback", slog.String("target", target))

		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func (h *PaymentHandler) resultURL(result *models.VerificationResult, err error) string {
	page := h.failurePage
	query := url.Values{}

	if result != nil {
		if result.Succeeded() && err == nil {
			page = h.successPage
		}

		query.Set("status", string(result.Status))
		query.Set("transaction_id", result.TransactionID.String())
		if result.ReferenceID != "" {
			query.Set("reference_id", result.ReferenceID)
		}
	} else {
		query.Set("status", "error")
	}

	if appErr, ok := errors.IsAppError(err); ok {
		query.Set("reason", appErr.Code)
	}

	separator := "?"
	if strings.Contains(page, "?") {
		separator = "&"
	}

	return page + separator + query.Encode()
}

// GetPayment godoc
//	@Summary		Get payment status
//	@Description	Returns the stored state of a payment by its gateway handle. Customers only see their own payments.
//	@Tags			Payments
//	@Produce		json
//	@Param			handle	path		string						true	"Gateway handle"
//	@Success		200		{object}	models.PaymentTransaction	"Payment"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Payment not found"
//	@Security		BearerAuth
//	@Router			/payments/{handle} [get]
func (h *PaymentHandler) GetPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		handle := strings.TrimSpace(r.PathValue("handle"))
		if handle == "" {
			response.Error(w, r, errors.BadRequestError("Payment handle is required"))
			return
		}

		txn, err := h.paymentService.GetTransaction(r.Context(), claims.UserID, claims.IsAdmin(), handle)
		if err != nil {
			logger.Warn("Failed to get payment", slog.String("handle", handle), slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, txn)
	}
}

// ListPayments godoc
//	@Summary		List payments for reconciliation
//	@Description	Lists payments filtered by status, newest first. Admin only.
//	@Tags			Admin
//	@Produce		json
//	@Param			status		query		string														false	"Comma separated statuses"	example(failed,verifying)
//	@Param			page		query		int															false	"Page number (default: 1)"
//	@Param			pageSize	query		int															false	"Page size (default: 20, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.PaymentTransaction}	"Payments"
//	@Failure		400			{object}	response.ErrorResponse										"Unknown status"
//	@Failure		403			{object}	response.ErrorResponse										"Admin access required"
//	@Security		BearerAuth
//	@Router			/admin/payments [get]
func (h *PaymentHandler) ListPayments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var statuses []models.TransactionStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				status := models.TransactionStatus(strings.ToLower(strings.TrimSpace(part)))
				switch status {
				case models.TransactionStatusInitiated, models.TransactionStatusVerifying,
					models.TransactionStatusVerified, models.TransactionStatusFailed:
					statuses = append(statuses, status)
				default:
					response.Error(w, r, errors.BadRequestError("Unknown payment status: "+part))
					return
				}
			}
		}

		page, pageSize := models.NormalizePage(queryInt(r, "page", 1), queryInt(r, "pageSize", models.DefaultPageSize))

		txns, total, err := h.paymentService.ListTransactions(r.Context(), statuses, page, pageSize)
		if err != nil {
			logger.Error("Failed to list payments", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     txns,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
