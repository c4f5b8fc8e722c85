package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims accepted by the KYB service.
type Claims struct {
	jwt.RegisteredClaims
	Name     string    `json:"name,omitempty"`
	Roles    []string  `json:"roles"`
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims include at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// Actor names the caller for audit fields: the display name when present,
// otherwise the subject.
func (c Claims) Actor() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Subject
}

// SeesAllTenants reports whether the caller may act across tenants. Merchant
// and API client tokens are confined to their own TenantID.
func (c Claims) SeesAllTenants() bool {
	return c.HasAnyRole(RoleAdmin, RoleComplianceOfficer, RoleAuditor)
}

// CanAccessTenant reports whether the caller may see data owned by tenantID.
func (c Claims) CanAccessTenant(tenantID uuid.UUID) bool {
	return c.SeesAllTenants() || c.TenantID == tenantID
}

const (
	RoleAdmin             = "admin"
	RoleComplianceOfficer = "compliance_officer"
	RoleAuditor           = "auditor"
	RoleMerchant          = "merchant"
	RoleAPIClient         = "api_client"
)
