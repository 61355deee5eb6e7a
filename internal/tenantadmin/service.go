// Package tenantadmin manages tenants and their users, keeping the
// denormalized active-user counter consistent: every user mutation adjusts
// Tenant.CurrentUsers inside the same transaction, and a reconcile pass
// recounts from scratch to recover from any drift.
package tenantadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/hash"
	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/tenantscope"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"github.com/githuax/zeduno-sub008/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateTenantInput is a tenant creation request.
type CreateTenantInput struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Email        string  `json:"email"`
	Plan         string  `json:"plan,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	TaxRate      float64 `json:"tax_rate,omitempty"`
	BusinessType string  `json:"business_type,omitempty"`
	MaxUsers     int     `json:"max_users,omitempty"`
}

// CreateUserInput is a user creation request.
type CreateUserInput struct {
	TenantID  *uint  `json:"tenant_id,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Service owns tenant and user administration.
type Service struct {
	db              *gorm.DB
	defaultMaxUsers int
}

func NewService(db *gorm.DB, defaultMaxUsers int) *Service {
	if defaultMaxUsers <= 0 {
		defaultMaxUsers = 10
	}
	return &Service{db: db, defaultMaxUsers: defaultMaxUsers}
}

// CreateTenant creates a tenant. Superadmin only.
func (s *Service) CreateTenant(ctx context.Context, caller tenantscope.Caller, input CreateTenantInput) (*model.Tenant, error) {
	if !caller.IsSuperadmin() {
		return nil, fmt.Errorf("%w: superadmin role required", apperr.ErrForbidden)
	}
	if input.Name == "" || input.Slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", apperr.ErrValidation)
	}

	plan := input.Plan
	if plan == "" {
		plan = model.PlanBasic
	}
	maxUsers := input.MaxUsers
	if maxUsers <= 0 {
		maxUsers = s.defaultMaxUsers
	}

	t := &model.Tenant{
		Name:         input.Name,
		Slug:         strings.ToLower(strings.TrimSpace(input.Slug)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Plan:         plan,
		Status:       model.TenantStatusActive,
		MaxUsers:     maxUsers,
		Currency:     input.Currency,
		TaxRate:      input.TaxRate,
		BusinessType: input.BusinessType,
		CreatedBy:    &caller.UserID,
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: tenant slug %q already exists", apperr.ErrConflict, t.Slug)
		}
		return nil, err
	}

	prometheus.ActiveTenantsGauge.Inc()
	prometheus.SetUsersPerTenant(t.ID, t.Name, 0)

	logger.FromContext(ctx).Info("tenant created",
		zap.Uint("tenant_id", t.ID),
		zap.String("slug", t.Slug))

	return t, nil
}

// ListTenants returns all tenants. Superadmin only.
func (s *Service) ListTenants(ctx context.Context, caller tenantscope.Caller) ([]model.Tenant, error) {
	if !caller.IsSuperadmin() {
		return nil, fmt.Errorf("%w: superadmin role required", apperr.ErrForbidden)
	}

	var tenants []model.Tenant
	if err := s.db.WithContext(ctx).Order("name").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetTenant returns the caller's own tenant, or any tenant for superadmin.
func (s *Service) GetTenant(ctx context.Context, caller tenantscope.Caller, id uint) (*model.Tenant, error) {
	if err := caller.Check(id); err != nil {
		return nil, err
	}

	var t model.Tenant
	err := s.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tenant %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateUser creates an active user for a tenant and bumps the tenant's
// user counter in the same transaction. Activation beyond the tenant's plan
// limit is a conflict.
func (s *Service) CreateUser(ctx context.Context, caller tenantscope.Caller, input CreateUserInput) (*model.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperr.ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = model.RoleStaff
	}
	if role == model.RoleSuperadmin && !caller.IsSuperadmin() {
		return nil, fmt.Errorf("%w: only a superadmin may create superadmin users", apperr.ErrForbidden)
	}

	tenantID, err := caller.Stamp(input.TenantID)
	if err != nil {
		return nil, err
	}

	hashed, err := hash.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		TenantID:  &tenantID,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  hashed,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
		Active:    true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := fetchTenant(tx, tenantID)
		if err != nil {
			return err
		}
		if t.CurrentUsers >= t.MaxUsers {
			return fmt.Errorf("%w: tenant has reached its %d-user limit", apperr.ErrConflict, t.MaxUsers)
		}

		if err := tx.Create(u).Error; err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: email %q is already registered", apperr.ErrConflict, u.Email)
			}
			return err
		}

		return tx.Model(&model.Tenant{}).Where("id = ?", tenantID).
			UpdateColumn("current_users", gorm.Expr("current_users + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

// SetUserActive activates or deactivates a user and adjusts the tenant's
// user counter in the same transaction. A no-op when the user is already in
// the requested state.
func (s *Service) SetUserActive(ctx context.Context, caller tenantscope.Caller, userID uint, active bool) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	if u.TenantID == nil {
		return nil, fmt.Errorf("%w: user %d is not bound to a tenant", apperr.ErrValidation, userID)
	}
	if err := caller.Check(*u.TenantID); err != nil {
		return nil, err
	}
	if u.Active == active {
		return &u, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := fetchTenant(tx, *u.TenantID)
		if err != nil {
			return err
		}
		if active && t.CurrentUsers >= t.MaxUsers {
			return fmt.Errorf("%w: tenant has reached its %d-user limit", apperr.ErrConflict, t.MaxUsers)
		}

		if err := tx.Model(&model.User{}).Where("id = ?", u.ID).Update("active", active).Error; err != nil {
			return err
		}

		delta := "current_users + 1"
		if !active {
			delta = "current_users - 1"
		}
		return tx.Model(&model.Tenant{}).Where("id = ?", *u.TenantID).
			UpdateColumn("current_users", gorm.Expr(delta)).Error
	})
	if err != nil {
		return nil, err
	}

	u.Active = active
	return &u, nil
}

// DeleteUser soft-deletes a user, decrementing the counter if the user was
// active.
func (s *Service) DeleteUser(ctx context.Context, caller tenantscope.Caller, userID uint) error {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	if err != nil {
		return err
	}
	if u.TenantID != nil {
		if err := caller.Check(*u.TenantID); err != nil {
			return err
		}
	} else if !caller.IsSuperadmin() {
		return fmt.Errorf("%w: access denied", apperr.ErrForbidden)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&u).Error; err != nil {
			return err
		}
		if u.Active && u.TenantID != nil {
			return tx.Model(&model.Tenant{}).Where("id = ?", *u.TenantID).
				UpdateColumn("current_users", gorm.Expr("current_users - 1")).Error
		}
		return nil
	})
}

// ListUsers returns the users visible to the caller.
func (s *Service) ListUsers(ctx context.Context, caller tenantscope.Caller, requestedTenant *uint) ([]model.User, error) {
	scope, err := caller.Scope(requestedTenant)
	if err != nil {
		return nil, err
	}

	var users []model.User
	if err := s.db.WithContext(ctx).Scopes(scope).Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ReconcileUserCounts recomputes every tenant's CurrentUsers from the actual
// count of active users. Counter drift is recoverable, not fatal; this is
// the recovery pass. Superadmin only. Returns the number of tenants fixed.
func (s *Service) ReconcileUserCounts(ctx context.Context, caller tenantscope.Caller) (int, error) {
	if !caller.IsSuperadmin() {
		return 0, fmt.Errorf("%w: superadmin role required", apperr.ErrForbidden)
	}
	log := logger.FromContext(ctx)

	var tenants []model.Tenant
	if err := s.db.WithContext(ctx).Find(&tenants).Error; err != nil {
		return 0, err
	}

	fixed := 0
	active := 0
	for _, t := range tenants {
		var count int64
		err := s.db.WithContext(ctx).Model(&model.User{}).
			Where("tenant_id = ? AND active = ?", t.ID, true).
			Count(&count).Error
		if err != nil {
			return fixed, err
		}

		prometheus.SetUsersPerTenant(t.ID, t.Name, int(count))
		if t.IsActive() {
			active++
		}

		if int(count) != t.CurrentUsers {
			err := s.db.WithContext(ctx).Model(&model.Tenant{}).Where("id = ?", t.ID).
				UpdateColumn("current_users", int(count)).Error
			if err != nil {
				return fixed, err
			}
			log.Warn("reconciled tenant user counter",
				zap.Uint("tenant_id", t.ID),
				zap.Int("stored", t.CurrentUsers),
				zap.Int64("actual", count))
			fixed++
		}
	}

	prometheus.SetActiveTenants(active)
	return fixed, nil
}

// fetchTenant reads the tenant row inside the caller's transaction. The read
// takes no row lock, so two concurrent activations can both pass the limit
// check; the reconcile pass recounts and repairs any resulting drift.
func fetchTenant(tx *gorm.DB, id uint) (*model.Tenant, error) {
	var t model.Tenant
	err := tx.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: tenant %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
