package service

import (
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func oneHourSettings() *models.SettingsSnapshot {
	settings := models.DefaultSettings()
	settings.CartTTLHours = 1
	settings.ExpiryWarningMinutes = 15

	return settings
}

func cartModifiedAt(at time.Time) *models.Cart {
	return &models.Cart{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		ContactEmail:   "buyer@example.com",
		Status:         models.CartStatusActive,
		LastModifiedAt: at,
		Items: []models.CartItem{{
			ProductID: uuid.New(),
			Name:      "Mug",
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(120000),
			AddedAt:   at,
		}},
	}
}

type lifecycleFixture struct {
	manager    CartLifecycleManager
	carts      *memCarts
	txns       *memTransactions
	dispatcher *mocks.NotificationDispatcher
	redis      *miniredis.Miniredis
}

func newLifecycleFixture(t *testing.T, settings *models.SettingsSnapshot, carts ...*models.Cart) *lifecycleFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &lifecycleFixture{
		carts:      newMemCarts(carts...),
		txns:       newMemTransactions(),
		dispatcher: mocks.NewNotificationDispatcher(t),
		redis:      mr,
	}

	f.manager = NewCartLifecycleManager(
		f.carts,
		f.txns,
		&staticSettings{snapshot: settings},
		f.dispatcher,
		cache.NewRedisLocker(client),
		config.CartConfig{SweepBatch: 2, SweepLockTTL: time.Minute},
		config.PaymentConfig{PendingTTL: 30 * time.Minute},
	)

	return f
}

func TestTouch(t *testing.T) {
	manager := NewCartLifecycleManager(nil, nil, nil, nil, nil, config.CartConfig{}, config.PaymentConfig{})

	t.Run("Success - Expiry Follows Last Modification", func(t *testing.T) {
		// Arrange
		cart := cartModifiedAt(t0.Add(-3 * time.Hour))
		sentAt := t0.Add(-time.Hour)
		cart.Status = models.CartStatusWarned
		cart.WarningSentAt = &sentAt

		// Act
		manager.Touch(cart, oneHourSettings(), t0)

		// Assert
		require.NotNil(t, cart.ExpiresAt)
		assert.Equal(t, t0, cart.LastModifiedAt)
		assert.Equal(t, t0.Add(time.Hour), *cart.ExpiresAt)
		assert.Nil(t, cart.WarningSentAt)
		assert.Equal(t, models.CartStatusActive, cart.Status)
	})

	t.Run("Success - Permanent Carts Never Expire", func(t *testing.T) {
		settings := oneHourSettings()
		settings.PermanentCart = true
		cart := cartModifiedAt(t0)

		manager.Touch(cart, settings, t0)

		assert.Nil(t, cart.ExpiresAt)
	})
}

func TestSweep(t *testing.T) {
	t.Run("Success - Cart Expires After TTL", func(t *testing.T) {
		// Arrange
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, oneHourSettings(), cart)

		// Act
		report, err := f.manager.Sweep(testContext(t), t0.Add(61*time.Minute))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, report.Scanned)
		assert.Equal(t, 1, report.Expired)
		assert.Equal(t, 0, report.Deleted)
		assert.Equal(t, models.CartStatusExpired, f.carts.get(cart.ID).Status)
	})

	t.Run("Success - Expired Cart Deleted When Configured", func(t *testing.T) {
		settings := oneHourSettings()
		settings.AutoDeleteExpired = true
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, settings, cart)

		report, err := f.manager.Sweep(testContext(t), t0.Add(61*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 1, report.Deleted)
		assert.Nil(t, f.carts.get(cart.ID))
	})

	t.Run("Success - Warning Sent Once Inside Window", func(t *testing.T) {
		// Arrange
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, oneHourSettings(), cart)
		now := t0.Add(50 * time.Minute)

		f.dispatcher.On("SendExpiryWarning", mock.Anything, mock.MatchedBy(func(w *models.ExpiryWarning) bool {
			return w.CartID == cart.ID && w.Recipient == "buyer@example.com" && w.ExpiresAt.Equal(t0.Add(time.Hour))
		})).Return(nil).Once()

		// Act
		first, err := f.manager.Sweep(testContext(t), now)
		require.NoError(t, err)
		second, err := f.manager.Sweep(testContext(t), now)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, 1, first.Warned)
		assert.Equal(t, 0, second.Warned)
		stored := f.carts.get(cart.ID)
		assert.Equal(t, models.CartStatusWarned, stored.Status)
		require.NotNil(t, stored.WarningSentAt)
		assert.Equal(t, now, *stored.WarningSentAt)
	})

	t.Run("Success - Warned Cart Still Expires", func(t *testing.T) {
		cart := cartModifiedAt(t0)
		sentAt := t0.Add(50 * time.Minute)
		cart.Status = models.CartStatusWarned
		cart.WarningSentAt = &sentAt
		f := newLifecycleFixture(t, oneHourSettings(), cart)

		report, err := f.manager.Sweep(testContext(t), t0.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, 1, report.Expired)
		assert.Equal(t, models.CartStatusExpired, f.carts.get(cart.ID).Status)
	})

	t.Run("Success - Running Twice Yields Same State", func(t *testing.T) {
		// Arrange
		var carts []*models.Cart
		for i := range 5 {
			carts = append(carts, cartModifiedAt(t0.Add(time.Duration(i)*10*time.Minute)))
		}
		f := newLifecycleFixture(t, oneHourSettings(), carts...)
		f.dispatcher.On("SendExpiryWarning", mock.Anything, mock.Anything).Return(nil)
		now := t0.Add(75 * time.Minute)

		// Act
		_, err := f.manager.Sweep(testContext(t), now)
		require.NoError(t, err)
		after := map[uuid.UUID]*models.Cart{}
		for _, c := range carts {
			after[c.ID] = f.carts.get(c.ID)
		}

		report, err := f.manager.Sweep(testContext(t), now)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, 0, report.Warned+report.Expired+report.Deleted)
		for _, c := range carts {
			assert.Equal(t, after[c.ID], f.carts.get(c.ID))
		}
	})

	t.Run("Success - Cart With Payment In Flight Is Skipped", func(t *testing.T) {
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, oneHourSettings(), cart)
		f.txns = newMemTransactions(&models.PaymentTransaction{
			ID: uuid.New(), CartID: cart.ID, Status: models.TransactionStatusVerifying, Handle: "A1",
		})
		f.manager.(*cartLifecycle).transactions = f.txns

		report, err := f.manager.Sweep(testContext(t), t0.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, models.CartStatusActive, f.carts.get(cart.ID).Status)
	})

	t.Run("Success - Disabled By Settings", func(t *testing.T) {
		settings := oneHourSettings()
		settings.PermanentCart = true
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, settings, cart)

		report, err := f.manager.Sweep(testContext(t), t0.Add(48*time.Hour))

		require.NoError(t, err)
		assert.True(t, report.Disabled)
		assert.Equal(t, models.CartStatusActive, f.carts.get(cart.ID).Status)
	})

	t.Run("Success - Lock Held Elsewhere", func(t *testing.T) {
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, oneHourSettings(), cart)
		require.NoError(t, f.redis.Set(cache.Key(cache.SweepLockPrefix, "global"), "other-instance"))

		report, err := f.manager.Sweep(testContext(t), t0.Add(2*time.Hour))

		require.NoError(t, err)
		assert.True(t, report.LockHeld)
		assert.Equal(t, 0, report.Scanned)
	})

	t.Run("Success - Redis Down Does Not Block Sweep", func(t *testing.T) {
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, oneHourSettings(), cart)
		f.redis.Close()

		report, err := f.manager.Sweep(testContext(t), t0.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, 1, report.Expired)
	})

	t.Run("Failure - Dispatch Error Keeps Warning Claimed", func(t *testing.T) {
		cart := cartModifiedAt(t0)
		f := newLifecycleFixture(t, oneHourSettings(), cart)
		f.dispatcher.On("SendExpiryWarning", mock.Anything, mock.Anything).Return(errors.New("sendgrid: 503")).Once()

		report, err := f.manager.Sweep(testContext(t), t0.Add(50*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 1, report.Warned)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, models.CartStatusWarned, f.carts.get(cart.ID).Status)
	})
}
