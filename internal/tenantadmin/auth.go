package tenantadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/hash"
	"github.com/githuax/zeduno-sub008/internal/model"
	"gorm.io/gorm"
)

// RegisterInput is a public self-registration request. The tenant is named
// by slug; the role is always staff, privileged roles are granted by an
// admin afterwards.
type RegisterInput struct {
	TenantSlug string `json:"tenant_slug"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

// RegisterUser creates a staff user under the tenant with the given slug,
// maintaining the tenant's active-user counter in the same transaction.
func (s *Service) RegisterUser(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.TenantSlug == "" {
		return nil, fmt.Errorf("%w: tenant_slug is required", apperr.ErrValidation)
	}
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperr.ErrValidation)
	}

	var t model.Tenant
	err := s.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(input.TenantSlug))).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tenant %q", apperr.ErrNotFound, input.TenantSlug)
	}
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, fmt.Errorf("%w: tenant %q is not active", apperr.ErrForbidden, t.Slug)
	}

	hashed, err := hash.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		TenantID:  &t.ID,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hashed,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      model.RoleStaff,
		Active:    true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		limit, err := fetchTenant(tx, t.ID)
		if err != nil {
			return err
		}
		if limit.CurrentUsers >= limit.MaxUsers {
			return fmt.Errorf("%w: tenant has reached its %d-user limit", apperr.ErrConflict, limit.MaxUsers)
		}

		if err := tx.Create(u).Error; err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: email %q is already registered", apperr.ErrConflict, u.Email)
			}
			return err
		}

		return tx.Model(&model.Tenant{}).Where("id = ?", t.ID).
			UpdateColumn("current_users", gorm.Expr("current_users + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate verifies credentials and returns the user with its tenant
// (nil tenant for superadmin users). Inactive users and users of inactive
// tenants are rejected.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, *model.Tenant, error) {
	var u model.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	if err != nil {
		return nil, nil, err
	}

	if !hash.CheckPassword(u.Password, password) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	if !u.Active {
		return nil, nil, fmt.Errorf("%w: account is deactivated", apperr.ErrForbidden)
	}

	if u.TenantID == nil {
		return &u, nil, nil
	}

	var t model.Tenant
	if err := s.db.WithContext(ctx).First(&t, *u.TenantID).Error; err != nil {
		return nil, nil, err
	}
	if !t.IsActive() {
		return nil, nil, fmt.Errorf("%w: tenant %q is not active", apperr.ErrForbidden, t.Slug)
	}

	return &u, &t, nil
}
