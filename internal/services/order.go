package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderCreator turns a verified payment into an order. Creating twice for
// the same transaction returns the first order.
type OrderCreator interface {
	CreateFromTransaction(ctx context.Context, txn *models.PaymentTransaction, cart *models.Cart) (*models.Order, error)
	// FindByTransaction returns nil without error when no order exists yet.
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderCreator {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) CreateFromTransaction(ctx context.Context, txn *models.PaymentTransaction, cart *models.Cart) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	order := &models.Order{
		ID:               uuid.New(),
		TransactionID:    txn.ID,
		CartID:           cart.ID,
		CustomerID:       txn.OwnerID,
		Status:           models.OrderStatusConfirmed,
		TotalAmount:      txn.Amount,
		CouponCode:       txn.CouponCode,
		PaymentReference: txn.ReferenceID,
	}

	// lines come from the breakdown the customer paid for
	if txn.Breakdown != nil {
		order.Subtotal = txn.Breakdown.Subtotal
		order.CouponDiscount = txn.Breakdown.CouponDiscount
		order.Shipping = txn.Breakdown.Shipping

		for _, line := range txn.Breakdown.Lines {
			order.Items = append(order.Items, models.OrderItem{
				ID:              uuid.New(),
				ProductID:       line.ProductID,
				Variants:        line.Variants,
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
				DiscountPercent: line.DiscountPercent,
				LineTotal:       line.LineTotal,
			})
		}
	} else {
		order.Subtotal = txn.Amount

		for _, item := range cart.Items {
			order.Items = append(order.Items, models.OrderItem{
				ID:              uuid.New(),
				ProductID:       item.ProductID,
				Variants:        item.Variants,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
				LineTotal:       pricing.DiscountedUnitPrice(item.UnitPrice, item.DiscountPercent).Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
			})
		}
	}

	created, err := s.orderRepo.CreateOrderForTransaction(ctx, order)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	if !created {
		logger.Info("Order already exists for transaction", slog.String("transaction_id", txn.ID.String()), slog.String("order_id", order.ID.String()))
	}

	return order, nil
}

func (s *orderService) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.DatabaseError("Failed to load order").WithError(err)
	}

	return order, nil
}
