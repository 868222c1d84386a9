package models

import (
	"strings"
	"time"
)

type GatewayName string

const (
	GatewayZarinpal GatewayName = "zarinpal"
	GatewaySadad    GatewayName = "sadad"
	GatewayStripe   GatewayName = "stripe"
)

// Gateways lists every gateway the store can route payments to.
func Gateways() []GatewayName {
	return []GatewayName{GatewayZarinpal, GatewaySadad, GatewayStripe}
}

func (n GatewayName) Valid() bool {
	for _, name := range Gateways() {
		if n == name {
			return true
		}
	}

	return false
}

type GatewaySettings struct {
	IsActive    bool              `json:"is_active"`
	Credentials map[string]string `json:"credentials,omitempty"`
	IsSandbox   bool              `json:"is_sandbox"`
}

// SettingsSnapshot is an immutable read of the store configuration.
// Callers receive their own copy and pass it explicitly into each operation.
type SettingsSnapshot struct {
	CartTTLHours         int                             `json:"cart_ttl_hours"`
	AutoExpireEnabled    bool                            `json:"auto_expire_enabled"`
	AutoDeleteExpired    bool                            `json:"auto_delete_expired"`
	PermanentCart        bool                            `json:"permanent_cart"`
	ExpiryWarningEnabled bool                            `json:"expiry_warning_enabled"`
	ExpiryWarningMinutes int                             `json:"expiry_warning_minutes"`
	ActiveGateway        GatewayName                     `json:"active_gateway"`
	Gateways             map[GatewayName]GatewaySettings `json:"gateways"`
	Version              int64                           `json:"version"`
	UpdatedAt            time.Time                       `json:"updated_at"`
}

func DefaultSettings() *SettingsSnapshot {
	return &SettingsSnapshot{
		CartTTLHours:         24,
		AutoExpireEnabled:    true,
		AutoDeleteExpired:    false,
		PermanentCart:        false,
		ExpiryWarningEnabled: true,
		ExpiryWarningMinutes: 60,
		ActiveGateway:        GatewayZarinpal,
		Gateways:             map[GatewayName]GatewaySettings{},
	}
}

func (s *SettingsSnapshot) CartTTL() time.Duration {
	return time.Duration(s.CartTTLHours) * time.Hour
}

func (s *SettingsSnapshot) WarningWindow() time.Duration {
	return time.Duration(s.ExpiryWarningMinutes) * time.Minute
}

func (s *SettingsSnapshot) Gateway(name GatewayName) (GatewaySettings, bool) {
	gs, ok := s.Gateways[name]

	return gs, ok
}

// Clone returns a deep copy so cached snapshots are never shared mutably.
func (s *SettingsSnapshot) Clone() *SettingsSnapshot {
	clone := *s
	clone.Gateways = make(map[GatewayName]GatewaySettings, len(s.Gateways))

	for name, gs := range s.Gateways {
		creds := make(map[string]string, len(gs.Credentials))
		for k, v := range gs.Credentials {
			creds[k] = v
		}
		gs.Credentials = creds
		clone.Gateways[name] = gs
	}

	return &clone
}

// Masked returns a copy safe to show in the admin UI.
func (s *SettingsSnapshot) Masked() *SettingsSnapshot {
	masked := s.Clone()

	for name, gs := range masked.Gateways {
		for k, v := range gs.Credentials {
			gs.Credentials[k] = MaskCredential(v)
		}
		masked.Gateways[name] = gs
	}

	return masked
}

const credentialMask = "****"

func MaskCredential(value string) string {
	if len(value) <= 8 {
		return credentialMask
	}

	return credentialMask + value[len(value)-4:]
}

// IsMaskedCredential reports whether value was produced by MaskCredential,
// i.e. the admin UI echoed it back unchanged.
func IsMaskedCredential(value string) bool {
	return strings.HasPrefix(value, credentialMask)
}

type GatewaySettingsUpdate struct {
	IsActive    *bool             `json:"is_active,omitempty"`
	IsSandbox   *bool             `json:"is_sandbox,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

type UpdateSettingsRequest struct {
	CartTTLHours         *int                                  `json:"cart_ttl_hours,omitempty" validate:"omitempty,min=1,max=8760"`
	AutoExpireEnabled    *bool                                 `json:"auto_expire_enabled,omitempty"`
	AutoDeleteExpired    *bool                                 `json:"auto_delete_expired,omitempty"`
	PermanentCart        *bool                                 `json:"permanent_cart,omitempty"`
	ExpiryWarningEnabled *bool                                 `json:"expiry_warning_enabled,omitempty"`
	ExpiryWarningMinutes *int                                  `json:"expiry_warning_minutes,omitempty" validate:"omitempty,min=1,max=10080"`
	ActiveGateway        *GatewayName                          `json:"active_gateway,omitempty" validate:"omitempty,oneof=zarinpal sadad stripe"`
	Gateways             map[GatewayName]GatewaySettingsUpdate `json:"gateways,omitempty"`
	Version              int64                                 `json:"version"`
}
