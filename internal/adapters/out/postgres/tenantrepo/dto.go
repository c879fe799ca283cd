// Package tenantrepo persists tenants and their credentials. The core only
// reads tenants; Add exists for provisioning scripts and tests.
package tenantrepo

import (
	"orderflow/internal/core/domain/model/tenant"
)

// TenantDTO is the database row for one tenant, credentials included.
// Secrets live in the same row but are only surfaced through GetSecrets, so
// aggregate reads never carry credentials around.
type TenantDTO struct {
	ID          string `gorm:"primaryKey;size:64"`
	Domain      string `gorm:"uniqueIndex;size:255"`
	ShopName    string
	CountryCode string `gorm:"size:8"`

	WebhookSecret   string
	PlatformToken   string
	CourierAPIKey   string
	OwnerPhone      string `gorm:"size:32"`
	AutoBookCourier bool
}

// TableName overrides GORM's default naming to use "tenants".
func (TenantDTO) TableName() string {
	return "tenants"
}

func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	return tenant.RestoreTenant(dto.ID, dto.Domain, dto.ShopName, dto.CountryCode)
}

func toSecrets(dto TenantDTO) *tenant.Secrets {
	return &tenant.Secrets{
		WebhookSecret:   dto.WebhookSecret,
		PlatformToken:   dto.PlatformToken,
		CourierAPIKey:   dto.CourierAPIKey,
		OwnerPhone:      dto.OwnerPhone,
		AutoBookCourier: dto.AutoBookCourier,
	}
}
