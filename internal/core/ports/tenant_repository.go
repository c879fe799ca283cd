package ports

import (
	"context"

	"orderflow/internal/core/domain/model/tenant"
)

// TenantRepository defines the lookup contract for tenants and their
// credentials. Tenants are provisioned out-of-band; the core only reads.
type TenantRepository interface {
	// Get retrieves a tenant by id.
	Get(ctx context.Context, tenantID string) (*tenant.Tenant, error)

	// GetByDomain resolves an inbound storefront domain to a tenant. The
	// domain is normalized before lookup; a miss means the event is not
	// from a known tenant and must be dropped.
	GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error)

	// GetSecrets loads a tenant's credentials. Secrets are fetched fresh
	// per event and never cached across events.
	GetSecrets(ctx context.Context, tenantID string) (*tenant.Secrets, error)

	// List retrieves all tenants, for the reconciliation sweep.
	List(ctx context.Context) ([]*tenant.Tenant, error)
}
