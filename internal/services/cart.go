package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
)

const maxLineQuantity = 1000

// ProductCatalog is the read-only view of the external product catalog.
type ProductCatalog interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type CartService interface {
	GetCart(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, ownerID uuid.UUID, email string, req *models.AddItemRequest) (*models.Cart, error)
	UpdateItem(ctx context.Context, ownerID uuid.UUID, req *models.UpdateItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, ownerID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error)
	Quote(ctx context.Context, ownerID uuid.UUID, couponCode string) (*models.PriceBreakdown, error)
}

type cartService struct {
	carts        repository.CartRepository
	transactions repository.TransactionRepository
	catalog      ProductCatalog
	settings     SettingsService
	lifecycle    CartLifecycleManager
	pricer       *CartPricer
	pendingTTL   time.Duration
	now          func() time.Time
}

func NewCartService(
	carts repository.CartRepository,
	transactions repository.TransactionRepository,
	catalog ProductCatalog,
	settings SettingsService,
	lifecycle CartLifecycleManager,
	pricer *CartPricer,
	paymentCfg config.PaymentConfig,
) CartService {
	return &cartService{
		carts:        carts,
		transactions: transactions,
		catalog:      catalog,
		settings:     settings,
		lifecycle:    lifecycle,
		pricer:       pricer,
		pendingTTL:   paymentCfg.PendingTTL,
		now:          time.Now,
	}
}

// GetCart returns the owner's open cart. An owner without one gets an empty,
// unsaved cart.
func (s *cartService) GetCart(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	cart, _, err := s.openCart(ctx, ownerID, settings, s.now(), true)
	if err != nil {
		return nil, err
	}

	if cart == nil {
		return emptyCart(ownerID), nil
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, ownerID uuid.UUID, email string, req *models.AddItemRequest) (*models.Cart, error) {

	product, err := s.catalog.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	if !product.IsPurchasable() {
		return nil, appErrors.ValidationError("Product is not available for purchase")
	}

	return s.mutate(ctx, ownerID, email, true, func(cart *models.Cart, now time.Time) error {
		if idx := cart.FindItem(req.ProductID, req.Variants); idx >= 0 {
			quantity := cart.Items[idx].Quantity + req.Quantity
			if quantity > maxLineQuantity {
				return appErrors.AddValidationError("quantity", "line quantity exceeds the maximum")
			}
			cart.Items[idx].Quantity = quantity

			return nil
		}

		// prices come from the catalog, never from the client
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:       product.ID,
			Name:            product.Name,
			Quantity:        req.Quantity,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercent,
			Variants:        req.Variants,
			AddedAt:         now,
		})

		return nil
	})
}

// UpdateItem sets the line quantity; zero removes the line.
func (s *cartService) UpdateItem(ctx context.Context, ownerID uuid.UUID, req *models.UpdateItemRequest) (*models.Cart, error) {
	return s.mutate(ctx, ownerID, "", false, func(cart *models.Cart, _ time.Time) error {
		idx := cart.FindItem(req.ProductID, req.Variants)
		if idx < 0 {
			return appErrors.NotFoundError("Item not found in the cart")
		}

		if req.Quantity == 0 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
			return nil
		}

		cart.Items[idx].Quantity = req.Quantity

		return nil
	})
}

func (s *cartService) RemoveItem(ctx context.Context, ownerID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {
	return s.mutate(ctx, ownerID, "", false, func(cart *models.Cart, _ time.Time) error {
		idx := cart.FindItem(req.ProductID, req.Variants)
		if idx < 0 {
			return appErrors.NotFoundError("Item not found in the cart")
		}

		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

		return nil
	})
}

func (s *cartService) Quote(ctx context.Context, ownerID uuid.UUID, couponCode string) (*models.PriceBreakdown, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	cart, expired, err := s.openCart(ctx, ownerID, settings, now, true)
	if err != nil {
		return nil, err
	}

	if expired {
		return nil, appErrors.Localized(appErrors.MsgCartExpired)
	}

	if cart == nil || len(cart.Items) == 0 {
		return nil, appErrors.Localized(appErrors.MsgCartEmpty)
	}

	breakdown, err := s.pricer.price(ctx, cart.Items, couponCode, now)
	if err != nil {
		return nil, err
	}

	return &breakdown, nil
}

type cartMutation func(cart *models.Cart, now time.Time) error

// mutate applies fn to the owner's open cart under optimistic concurrency.
// A lost version race is retried once with a fresh read.
func (s *cartService) mutate(ctx context.Context, ownerID uuid.UUID, email string, create bool, fn cartMutation) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.mutateOnce(ctx, ownerID, email, create, fn)
	if errors.Is(err, repository.ErrVersionConflict) {
		logger.Debug("Cart version conflict, retrying", slog.String("owner_id", ownerID.String()))
		cart, err = s.mutateOnce(ctx, ownerID, email, create, fn)
	}

	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, appErrors.ConcurrencyConflictError("Cart was changed concurrently, please try again").WithError(err)
		}
		if _, ok := appErrors.IsAppError(err); ok {
			return nil, err
		}
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) mutateOnce(ctx context.Context, ownerID uuid.UUID, email string, create bool, fn cartMutation) (*models.Cart, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	// an overdue cart the sweep has not reached is still the customer's; the
	// mutation below resets its clock
	cart, _, err := s.openCart(ctx, ownerID, settings, now, false)
	if err != nil {
		return nil, err
	}

	isNew := cart == nil
	if isNew {
		if !create {
			return nil, appErrors.NotFoundError("Cart not found")
		}
		cart = emptyCart(ownerID)
		cart.ID = uuid.New()
		cart.CreatedAt = now
	} else {
		locked, err := s.transactions.HasInFlightForCart(ctx, cart.ID, now.Add(-s.pendingTTL))
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, appErrors.CartLockedError()
		}
	}

	if err := fn(cart, now); err != nil {
		return nil, err
	}

	if email != "" {
		cart.ContactEmail = email
	}

	s.lifecycle.Touch(cart, settings, now)

	if isNew {
		err = s.carts.CreateCart(ctx, cart)
	} else {
		err = s.carts.UpdateCart(ctx, cart)
	}
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// openCart loads the owner's open cart with its derived expiry. With
// expireOverdue set, a cart past its expiry that the sweep has not reached yet
// is expired here and reported as (nil, true), unless a payment still
// references it.
func (s *cartService) openCart(ctx context.Context, ownerID uuid.UUID, settings *models.SettingsSnapshot, now time.Time, expireOverdue bool) (*models.Cart, bool, error) {
	cart, err := s.carts.GetOpenCartByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	expiresAt := cart.DeriveExpiry(settings)
	if !expireOverdue || expiresAt == nil || !settings.AutoExpireEnabled || now.Before(*expiresAt) {
		return cart, false, nil
	}

	inFlight, err := s.transactions.HasInFlightForCart(ctx, cart.ID, now.Add(-s.pendingTTL))
	if err != nil {
		return nil, false, appErrors.DatabaseError("Failed to check pending payments").WithError(err)
	}

	if inFlight {
		return cart, false, nil
	}

	cart.Status = models.CartStatusExpired

	if err := s.carts.UpdateCart(ctx, cart); err != nil && !errors.Is(err, repository.ErrVersionConflict) {
		return nil, false, appErrors.DatabaseError("Failed to expire cart").WithError(err)
	}

	return nil, true, nil
}

func emptyCart(ownerID uuid.UUID) *models.Cart {
	return &models.Cart{
		OwnerID: ownerID,
		Items:   []models.CartItem{},
		Status:  models.CartStatusActive,
	}
}

// CartPricer gathers the sales, coupon and shipping quote a cart is priced with.
type CartPricer struct {
	coupons  repository.CouponRepository
	sales    repository.SaleRepository
	shipping ShippingCalculator
}

func NewCartPricer(coupons repository.CouponRepository, sales repository.SaleRepository, shipping ShippingCalculator) *CartPricer {
	return &CartPricer{coupons: coupons, sales: sales, shipping: shipping}
}

func (p *CartPricer) price(ctx context.Context, items []models.CartItem, couponCode string, now time.Time) (models.PriceBreakdown, error) {
	var coupon *models.Coupon

	if code := models.NormalizeCouponCode(couponCode); code != "" {
		found, err := p.coupons.GetCouponByCode(ctx, code)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.PriceBreakdown{}, appErrors.Localized(appErrors.MsgCouponNotFound)
			}
			return models.PriceBreakdown{}, appErrors.DatabaseError("Failed to load coupon").WithError(err)
		}
		coupon = found
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	active, err := p.sales.ListActiveSales(ctx, productIDs, now)
	if err != nil {
		return models.PriceBreakdown{}, appErrors.DatabaseError("Failed to load sales").WithError(err)
	}

	sales := make([]models.Sale, 0, len(active))
	for _, sale := range active {
		sales = append(sales, *sale)
	}

	input := pricing.Input{
		Items:  items,
		Sales:  sales,
		Coupon: coupon,
		Now:    now,
	}

	if p.shipping != nil {
		input.Shipping = p.shipping.Quote
	}

	return pricing.Resolve(input)
}
