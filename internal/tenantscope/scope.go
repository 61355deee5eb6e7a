// Package tenantscope enforces tenant isolation on every query against a
// tenant-owned collection. Non-superadmin callers are always forced onto
// their own tenant, overriding whatever the client supplied; superadmin
// callers may name a tenant explicitly or see all tenants.
package tenantscope

import (
	"fmt"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/pkg/jwtutil"
	"gorm.io/gorm"
)

// Caller is the authenticated caller context supplied by the auth layer.
type Caller struct {
	UserID   uint
	Role     string
	TenantID *uint
}

// FromClaims builds a Caller from validated JWT claims.
func FromClaims(claims *jwtutil.UserClaims) Caller {
	return Caller{
		UserID:   claims.UserID,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}
}

// IsSuperadmin reports whether the caller may cross tenant boundaries
func (c Caller) IsSuperadmin() bool {
	return c.Role == model.RoleSuperadmin
}

// Scope returns a gorm scope restricting a query to the caller's visible
// tenants. requested is the tenant the client asked for, if any; it is only
// honored for superadmin callers. A superadmin with no requested tenant gets
// an unrestricted query.
func (c Caller) Scope(requested *uint) (func(*gorm.DB) *gorm.DB, error) {
	if c.IsSuperadmin() {
		if requested != nil {
			id := *requested
			return func(db *gorm.DB) *gorm.DB {
				return db.Where("tenant_id = ?", id)
			}, nil
		}
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	}

	if c.TenantID == nil {
		return nil, fmt.Errorf("%w: tenant context required", apperr.ErrForbidden)
	}

	id := *c.TenantID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", id)
	}, nil
}

// Stamp returns the tenant id to write onto a new record. Non-superadmin
// callers always stamp their own tenant regardless of requested; superadmin
// callers must name the target tenant explicitly.
func (c Caller) Stamp(requested *uint) (uint, error) {
	if c.IsSuperadmin() {
		if requested == nil {
			return 0, fmt.Errorf("%w: tenant_id is required", apperr.ErrValidation)
		}
		return *requested, nil
	}

	if c.TenantID == nil {
		return 0, fmt.Errorf("%w: tenant context required", apperr.ErrForbidden)
	}
	return *c.TenantID, nil
}

// Check verifies that a record's tenant id is visible to the caller. Used on
// single-record reads fetched by primary key, where the scope cannot be
// applied up front.
func (c Caller) Check(tenantID uint) error {
	if c.IsSuperadmin() {
		return nil
	}
	if c.TenantID == nil || *c.TenantID != tenantID {
		return fmt.Errorf("%w: access denied", apperr.ErrForbidden)
	}
	return nil
}
