package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the caller's open cart with its derived expiry. An empty cart is returned when none exists.
//	@Tags			Carts
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Current cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/carts [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Debug("Cart retrieved", slog.Int("items", len(cart.Items)))
		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Adds a product line. A line with the same product and variants is merged by summing quantities.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Item to add"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Cart locked by a payment in progress or concurrent update"
//	@Security		BearerAuth
//	@Router			/carts/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, claims.Email, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Item added to cart", slog.String("cartId", cart.ID.String()), slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateItem godoc
//	@Summary		Set the quantity of a cart line
//	@Description	Sets the quantity of an existing line. A quantity of zero removes the line.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateItemRequest	true	"Line and new quantity"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Cart or line not found"
//	@Failure		409		{object}	response.ErrorResponse		"Cart locked or concurrent update"
//	@Security		BearerAuth
//	@Router			/carts/items [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.UpdateItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update item input")
			return
		}

		cart, err := h.cartService.UpdateItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart line", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Cart line updated", slog.String("cartId", cart.ID.String()), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.RemoveItemRequest	true	"Line to remove"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Cart or line not found"
//	@Security		BearerAuth
//	@Router			/carts/items [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid remove item input")
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to remove cart line", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		logger.Info("Cart line removed", slog.String("cartId", cart.ID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

// Quote godoc
//	@Summary		Price the current cart
//	@Description	Returns the line, sale, coupon and shipping breakdown the cart would be charged at.
//	@Tags			Carts
//	@Produce		json
//	@Param			coupon	query		string					false	"Coupon code"
//	@Success		200		{object}	models.PriceBreakdown	"Price breakdown"
//	@Failure		400		{object}	response.ErrorResponse	"Coupon rejected or cart empty"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/quote [get]
func (h *CartHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := requireClaims(w, r)
		if !ok {
			return
		}

		coupon := strings.TrimSpace(r.URL.Query().Get("coupon"))

		breakdown, err := h.cartService.Quote(r.Context(), claims.UserID, coupon)
		if err != nil {
			logger.Warn("Failed to quote cart", slog.String("coupon", coupon), slog.Any("error", err))
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, breakdown)
	}
}
