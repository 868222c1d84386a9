package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusWarned    CartStatus = "warned"
	CartStatusExpired   CartStatus = "expired"
	CartStatusConverted CartStatus = "converted"
)

// IsOpen reports whether the cart can still be mutated or checked out.
func (s CartStatus) IsOpen() bool {
	return s == CartStatusActive || s == CartStatusWarned
}

// VariantSet is the selector set of a line, e.g. {"size": "M", "color": "red"}.
type VariantSet map[string]string

// Key is the canonical form of the set: names sorted, values trimmed.
func (v VariantSet) Key() string {
	if len(v) == 0 {
		return ""
	}

	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, strings.ToLower(strings.TrimSpace(name)))
	}
	sort.Strings(names)

	normalized := make(map[string]string, len(v))
	for name, value := range v {
		normalized[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(normalized[name])
	}

	return b.String()
}

type CartItem struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent int             `json:"discount_percent"`
	Variants        VariantSet      `json:"variants,omitempty"`
	AddedAt         time.Time       `json:"added_at"`
}

// IdentityKey identifies a line: duplicate adds with the same key merge.
func (i CartItem) IdentityKey() string {
	return LineKey(i.ProductID, i.Variants)
}

func LineKey(productID uuid.UUID, variants VariantSet) string {
	return productID.String() + "|" + variants.Key()
}

type Cart struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	ContactEmail   string     `json:"-"`
	Items          []CartItem `json:"items"`
	Status         CartStatus `json:"status"`
	LastModifiedAt time.Time  `json:"last_modified_at"`
	// ExpiresAt is derived from LastModifiedAt and the store TTL; it is never persisted.
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	WarningSentAt *time.Time `json:"warning_sent_at,omitempty"`
	Version       int64      `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FindItem returns the index of the line with the given identity, or -1.
func (c *Cart) FindItem(productID uuid.UUID, variants VariantSet) int {
	key := LineKey(productID, variants)

	for i, item := range c.Items {
		if item.IdentityKey() == key {
			return i
		}
	}

	return -1
}

// DeriveExpiry recomputes ExpiresAt from the persisted LastModifiedAt.
func (c *Cart) DeriveExpiry(settings *SettingsSnapshot) *time.Time {
	c.ExpiresAt = ExpiryFor(c.LastModifiedAt, settings)

	return c.ExpiresAt
}

// ExpiryFor returns lastModified + TTL, or nil when carts are permanent.
func ExpiryFor(lastModified time.Time, settings *SettingsSnapshot) *time.Time {
	if settings == nil || settings.PermanentCart {
		return nil
	}

	expiresAt := lastModified.Add(settings.CartTTL())

	return &expiresAt
}

type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity"   validate:"required,min=1,max=1000"`
	Variants  VariantSet `json:"variants,omitempty" validate:"omitempty,max=10,dive,keys,required,max=50,endkeys,max=100"`
}

type UpdateItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity"   validate:"min=0,max=1000"`
	Variants  VariantSet `json:"variants,omitempty" validate:"omitempty,max=10"`
}

type RemoveItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	Variants  VariantSet `json:"variants,omitempty" validate:"omitempty,max=10"`
}

// SweepReport summarizes one expiry sweep.
type SweepReport struct {
	Scanned   int `json:"scanned"`
	Warned    int `json:"warned"`
	Expired   int `json:"expired"`
	Deleted   int `json:"deleted"`
	Conflicts int `json:"conflicts"`
	// Skipped counts due carts left alone because a payment is in flight.
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	// Disabled is set when the store settings turn expiry off.
	Disabled bool `json:"disabled,omitempty"`
	// LockHeld is set when another sweep was already running.
	LockHeld bool `json:"lock_held,omitempty"`
}
