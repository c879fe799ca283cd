package tenant

import (
	"errors"
	"strings"

	"orderflow/internal/pkg/errs"
)

// ErrTenantIsNotConstructed is returned when a Tenant instance was not
// created through NewTenant or RestoreTenant.
var ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant or RestoreTenant")

// platformDomainSuffix is the storefront platform suffix stripped before
// domain lookups, so "Shop.myshopify.com" and "shop" resolve identically.
const platformDomainSuffix = ".myshopify.com"

// NormalizeDomain lower-cases a storefront domain and strips the platform
// suffix. Every inbound domain passes through here before any index lookup,
// and tenants store their domain already normalized.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(domain, platformDomainSuffix)
}

// Tenant is one onboarded storefront. It owns all orders created under it
// and maps the inbound webhook domain to the internal tenant identity.
type Tenant struct {
	id          string
	domain      string
	shopName    string
	countryCode string

	isConstructed bool
}

// NewTenant creates a Tenant. The domain is normalized on the way in.
func NewTenant(id, domain, shopName, countryCode string) (*Tenant, error) {
	t := &Tenant{
		shopName:      shopName,
		countryCode:   countryCode,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setDomain(domain),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTenant rebuilds a Tenant from persistence. The stored domain is
// expected to be normalized already.
func RestoreTenant(id, domain, shopName, countryCode string) (*Tenant, error) {
	return NewTenant(id, domain, shopName, countryCode)
}

// Validate ensures the Tenant was created via its constructor.
func (t *Tenant) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTenantIsNotConstructed
	}

	return nil
}

// ID returns the opaque stable tenant identifier.
func (t *Tenant) ID() string {
	return t.id
}

// Domain returns the normalized storefront domain.
func (t *Tenant) Domain() string {
	return t.domain
}

// ShopName returns the display name used in customer messages.
func (t *Tenant) ShopName() string {
	return t.shopName
}

// CountryCode returns the country calling code applied when normalizing this
// tenant's customer phone numbers.
func (t *Tenant) CountryCode() string {
	return t.countryCode
}

func (t *Tenant) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	t.id = id
	return nil
}

func (t *Tenant) setDomain(domain string) error {
	normalized := NormalizeDomain(domain)
	if normalized == "" {
		return errs.NewValueIsRequiredError("domain")
	}
	t.domain = normalized
	return nil
}

// Secrets holds a tenant's credentials and settings. They are loaded fresh
// for every event and never cached across events, so re-provisioning a tenant
// takes effect immediately.
type Secrets struct {
	// WebhookSecret signs storefront webhook bodies (HMAC-SHA256).
	WebhookSecret string

	// PlatformToken authenticates against the storefront admin API.
	PlatformToken string

	// CourierAPIKey authenticates against the courier API.
	CourierAPIKey string

	// OwnerPhone is the store owner's contact number.
	OwnerPhone string

	// AutoBookCourier books a shipment automatically when the customer
	// confirms the order.
	AutoBookCourier bool
}
