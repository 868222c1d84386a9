package models_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantSetKey(t *testing.T) {
	t.Run("Order And Case Independent", func(t *testing.T) {
		a := models.VariantSet{"Size": "M", "color": "red"}
		b := models.VariantSet{"color": " red", "size": "M "}

		assert.Equal(t, a.Key(), b.Key())
		assert.Equal(t, "color=red;size=M", a.Key())
	})

	t.Run("Empty Set", func(t *testing.T) {
		assert.Equal(t, "", models.VariantSet(nil).Key())
	})
}

func TestCartFindItem(t *testing.T) {
	productID := uuid.New()
	cart := &models.Cart{Items: []models.CartItem{
		{ProductID: productID, Quantity: 1, Variants: models.VariantSet{"size": "S"}},
		{ProductID: productID, Quantity: 2, Variants: models.VariantSet{"size": "M"}},
	}}

	assert.Equal(t, 1, cart.FindItem(productID, models.VariantSet{"size": "M"}))
	assert.Equal(t, -1, cart.FindItem(productID, nil))
	assert.Equal(t, -1, cart.FindItem(uuid.New(), models.VariantSet{"size": "S"}))
}

func TestExpiryFor(t *testing.T) {
	lastModified := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success - TTL Added To Last Modification", func(t *testing.T) {
		settings := models.DefaultSettings()
		settings.CartTTLHours = 3

		expiresAt := models.ExpiryFor(lastModified, settings)

		require.NotNil(t, expiresAt)
		assert.Equal(t, lastModified.Add(3*time.Hour), *expiresAt)
	})

	t.Run("Success - Permanent Carts Never Expire", func(t *testing.T) {
		settings := models.DefaultSettings()
		settings.PermanentCart = true

		cart := &models.Cart{LastModifiedAt: lastModified}

		assert.Nil(t, cart.DeriveExpiry(settings))
		assert.Nil(t, cart.ExpiresAt)
	})
}

func TestSettingsMasked(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Gateways[models.GatewayStripe] = models.GatewaySettings{
		IsActive:    true,
		Credentials: map[string]string{"secret_key": "sk_test_1234567890abcd", "currency": "usd"},
	}

	masked := settings.Masked()

	assert.Equal(t, "****abcd", masked.Gateways[models.GatewayStripe].Credentials["secret_key"])
	assert.Equal(t, "****", masked.Gateways[models.GatewayStripe].Credentials["currency"])
	assert.True(t, models.IsMaskedCredential(masked.Gateways[models.GatewayStripe].Credentials["secret_key"]))
	// the original is untouched
	assert.Equal(t, "sk_test_1234567890abcd", settings.Gateways[models.GatewayStripe].Credentials["secret_key"])
}
