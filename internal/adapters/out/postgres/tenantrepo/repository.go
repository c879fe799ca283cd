package tenantrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTenantRepository implements ports.TenantRepository using GORM.
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GORM tenant repository.
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Add saves a tenant with its credentials. Not part of the core port; used by
// provisioning and tests.
func (r *GormTenantRepository) Add(ctx context.Context, tn *tenant.Tenant, secrets *tenant.Secrets) error {
	if err := tn.Validate(); err != nil {
		return err
	}

	dto := TenantDTO{
		ID:          tn.ID(),
		Domain:      tn.Domain(),
		ShopName:    tn.ShopName(),
		CountryCode: tn.CountryCode(),
	}

	if secrets != nil {
		dto.WebhookSecret = secrets.WebhookSecret
		dto.PlatformToken = secrets.PlatformToken
		dto.CourierAPIKey = secrets.CourierAPIKey
		dto.OwnerPhone = secrets.OwnerPhone
		dto.AutoBookCourier = secrets.AutoBookCourier
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a tenant by id.
func (r *GormTenantRepository) Get(ctx context.Context, tenantID string) (*tenant.Tenant, error) {
	var dto TenantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", tenantID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDomain resolves a storefront domain to a tenant. The domain is
// normalized before lookup.
func (r *GormTenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	normalized := tenant.NormalizeDomain(domain)

	var dto TenantDTO
	if err := r.db.WithContext(ctx).First(&dto, "domain = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetSecrets loads a tenant's credentials.
func (r *GormTenantRepository) GetSecrets(ctx context.Context, tenantID string) (*tenant.Secrets, error) {
	var dto TenantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenant", tenantID)
		}
		return nil, err
	}

	return toSecrets(dto), nil
}

// List retrieves all tenants, ordered by id for stable sweeps.
func (r *GormTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var dtos []TenantDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tenants := make([]*tenant.Tenant, 0, len(dtos))
	for _, dto := range dtos {
		tn, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tn)
	}

	return tenants, nil
}
