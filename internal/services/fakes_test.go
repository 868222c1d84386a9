package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
)

// In-memory repositories with the same conditional-write semantics as the
// Postgres ones, for tests that race several goroutines.

func testContext(t *testing.T) context.Context {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return context.WithValue(t.Context(), middleware.LoggerKey, logger)
}

func cloneCart(c *models.Cart) *models.Cart {
	out := *c
	out.Items = append([]models.CartItem(nil), c.Items...)

	return &out
}

type memCarts struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*models.Cart
}

func newMemCarts(carts ...*models.Cart) *memCarts {
	m := &memCarts{carts: map[uuid.UUID]*models.Cart{}}
	for _, c := range carts {
		if c.Version == 0 {
			c.Version = 1
		}
		m.carts[c.ID] = cloneCart(c)
	}

	return m
}

func (m *memCarts) CreateCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.carts {
		if c.OwnerID == cart.OwnerID && c.Status.IsOpen() {
			return repository.ErrVersionConflict
		}
	}

	cart.Version = 1
	m.carts[cart.ID] = cloneCart(cart)

	return nil
}

func (m *memCarts) GetCartByID(_ context.Context, id uuid.UUID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	return cloneCart(c), nil
}

func (m *memCarts) GetOpenCartByOwner(_ context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.carts {
		if c.OwnerID == ownerID && c.Status.IsOpen() {
			return cloneCart(c), nil
		}
	}

	return nil, sql.ErrNoRows
}

func (m *memCarts) UpdateCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.carts[cart.ID]
	if !ok || stored.Version != cart.Version {
		return repository.ErrVersionConflict
	}

	cart.Version++
	next := cloneCart(cart)
	next.ExpiresAt = nil
	m.carts[cart.ID] = next

	return nil
}

func (m *memCarts) DeleteCart(_ context.Context, id uuid.UUID, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.carts[id]
	if !ok || stored.Version != version {
		return repository.ErrVersionConflict
	}

	delete(m.carts, id)

	return nil
}

func (m *memCarts) ListSweepCandidates(_ context.Context, cutoff time.Time, after repository.SweepCursor, limit int) ([]*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.Cart

	for _, c := range m.carts {
		if !c.Status.IsOpen() || c.LastModifiedAt.After(cutoff) {
			continue
		}
		if c.LastModifiedAt.Before(after.LastModifiedAt) ||
			(c.LastModifiedAt.Equal(after.LastModifiedAt) && c.ID.String() <= after.ID.String()) {
			continue
		}
		out = append(out, cloneCart(c))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastModifiedAt.Equal(out[j].LastModifiedAt) {
			return out[i].LastModifiedAt.Before(out[j].LastModifiedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (m *memCarts) get(id uuid.UUID) *models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[id]; ok {
		return cloneCart(c)
	}

	return nil
}

type memTransactions struct {
	mu   sync.Mutex
	txns map[uuid.UUID]*models.PaymentTransaction
}

func newMemTransactions(txns ...*models.PaymentTransaction) *memTransactions {
	m := &memTransactions{txns: map[uuid.UUID]*models.PaymentTransaction{}}
	for _, txn := range txns {
		copied := *txn
		m.txns[txn.ID] = &copied
	}

	return m
}

func (m *memTransactions) CreateTransaction(_ context.Context, txn *models.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *txn
	m.txns[txn.ID] = &copied

	return nil
}

func (m *memTransactions) GetTransactionByID(_ context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.txns[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *txn

	return &copied, nil
}

func (m *memTransactions) GetTransactionByHandle(_ context.Context, handle string) (*models.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, txn := range m.txns {
		if txn.Handle == handle {
			copied := *txn
			return &copied, nil
		}
	}

	return nil, sql.ErrNoRows
}

func (m *memTransactions) TransitionStatus(_ context.Context, id uuid.UUID, from, to models.TransactionStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.txns[id]
	if !ok || txn.Status != from {
		return false, nil
	}
	txn.Status = to

	return true, nil
}

func (m *memTransactions) CompleteTransaction(_ context.Context, txn *models.PaymentTransaction, from models.TransactionStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.txns[txn.ID]
	if !ok || stored.Status != from {
		return false, nil
	}

	copied := *txn
	m.txns[txn.ID] = &copied

	return true, nil
}

func (m *memTransactions) HasInFlightForCart(_ context.Context, cartID uuid.UUID, initiatedSince time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, txn := range m.txns {
		if txn.CartID != cartID {
			continue
		}
		if txn.Status == models.TransactionStatusVerifying ||
			(txn.Status == models.TransactionStatusInitiated && !txn.CreatedAt.Before(initiatedSince)) {
			return true, nil
		}
	}

	return false, nil
}

func (m *memTransactions) ListTransactions(_ context.Context, statuses []models.TransactionStatus, page, size int) ([]*models.PaymentTransaction, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.PaymentTransaction

	for _, txn := range m.txns {
		for _, status := range statuses {
			if txn.Status == status {
				copied := *txn
				out = append(out, &copied)
			}
		}
	}

	return out, len(out), nil
}

func (m *memTransactions) get(id uuid.UUID) *models.PaymentTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *m.txns[id]

	return &copied
}

// memCoupons enforces the usage limit the way the conditional UPDATE does.
type memCoupons struct {
	mu      sync.Mutex
	coupons map[string]*models.Coupon
}

func newMemCoupons(coupons ...*models.Coupon) *memCoupons {
	m := &memCoupons{coupons: map[string]*models.Coupon{}}
	for _, c := range coupons {
		copied := *c
		m.coupons[models.NormalizeCouponCode(c.Code)] = &copied
	}

	return m
}

func (m *memCoupons) CreateCoupon(_ context.Context, coupon *models.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.coupons[coupon.Code]; ok {
		return repository.ErrVersionConflict
	}
	copied := *coupon
	m.coupons[coupon.Code] = &copied

	return nil
}

func (m *memCoupons) GetCouponByCode(_ context.Context, code string) (*models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.coupons[models.NormalizeCouponCode(code)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c

	return &copied, nil
}

func (m *memCoupons) IncrementUsage(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.coupons[models.NormalizeCouponCode(code)]
	if !ok || c.Exhausted() {
		return false, nil
	}
	c.UsageCount++

	return true, nil
}

// countingOrders records how many orders were created per transaction.
type countingOrders struct {
	mu      sync.Mutex
	created map[uuid.UUID]int
	orders  map[uuid.UUID]*models.Order
}

func newCountingOrders() *countingOrders {
	return &countingOrders{created: map[uuid.UUID]int{}, orders: map[uuid.UUID]*models.Order{}}
}

func (o *countingOrders) CreateFromTransaction(_ context.Context, txn *models.PaymentTransaction, cart *models.Cart) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if existing, ok := o.orders[txn.ID]; ok {
		copied := *existing
		return &copied, nil
	}

	o.created[txn.ID]++
	order := &models.Order{
		ID:               uuid.NewSHA1(uuid.NameSpaceOID, txn.ID[:]),
		TransactionID:    txn.ID,
		CartID:           cart.ID,
		PaymentReference: txn.ReferenceID,
	}
	o.orders[txn.ID] = order

	copied := *order

	return &copied, nil
}

func (o *countingOrders) FindByTransaction(_ context.Context, transactionID uuid.UUID) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	existing, ok := o.orders[transactionID]
	if !ok {
		return nil, nil
	}
	copied := *existing

	return &copied, nil
}

func (o *countingOrders) count(id uuid.UUID) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.created[id]
}

// staticSettings serves a fixed snapshot.
type staticSettings struct {
	snapshot *models.SettingsSnapshot
}

func (s *staticSettings) Current(context.Context) (*models.SettingsSnapshot, error) {
	return s.snapshot.Clone(), nil
}

func (s *staticSettings) Masked(context.Context) (*models.SettingsSnapshot, error) {
	return s.snapshot.Masked(), nil
}

func (s *staticSettings) Update(context.Context, *models.UpdateSettingsRequest) (*models.SettingsSnapshot, error) {
	return s.snapshot.Masked(), nil
}
