package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService covers account administration: creating leaders/admins,
// status changes, and the one-shot organization name.
type UserService struct {
	Users UserRepository

	NewID func() string
	Now   func() time.Time
}

func (s *UserService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// canManage encodes who may administer whom: superadmins manage admins and
// leaders, admins manage leaders only, superadmin accounts are untouchable.
func canManage(actor domain.Role, target domain.Role) bool {
	switch target {
	case domain.RoleLeader:
		return domain.Can(actor, domain.CapManageLeaders)
	case domain.RoleAdmin:
		return domain.Can(actor, domain.CapManageAdmins)
	}
	return false
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

func (s *UserService) Create(ctx context.Context, actor domain.Principal, input CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleLeader
	}
	if !role.Valid() || !canManage(actor.Role, role) {
		return nil, domain.ErrForbidden
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", domain.ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	user := domain.User{
		ID:           s.newID(),
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.UserActive,
		CreatedAt:    now().UTC(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateStatus moves an account between active, suspended, and terminated.
// A termination reason is required exactly when the new status is
// terminated.
func (s *UserService) UpdateStatus(ctx context.Context, actor domain.Principal, userID string, status domain.UserStatus, reason string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	if status == domain.UserTerminated && reason == "" {
		return fmt.Errorf("%w: termination_reason is required", domain.ErrValidation)
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !canManage(actor.Role, user.Role) {
		return domain.ErrForbidden
	}
	user.Status = status
	if status == domain.UserTerminated {
		user.TerminationReason = reason
	} else {
		user.TerminationReason = ""
	}
	return s.Users.Update(ctx, *user)
}

// SetOrgName applies the first-write-wins organization name. Once set it is
// immutable; the update path refuses to overwrite.
func (s *UserService) SetOrgName(ctx context.Context, userID, orgName string) error {
	if orgName == "" {
		return fmt.Errorf("%w: org_name is required", domain.ErrValidation)
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.SetOrgName(orgName); err != nil {
		return err
	}
	return s.Users.Update(ctx, *user)
}

// List returns the accounts the actor may administer.
func (s *UserService) List(ctx context.Context, actor domain.Principal) ([]domain.User, error) {
	switch {
	case domain.Can(actor.Role, domain.CapManageAdmins):
		return s.Users.List(ctx, []domain.Role{domain.RoleLeader, domain.RoleAdmin})
	case domain.Can(actor.Role, domain.CapManageLeaders):
		return s.Users.List(ctx, []domain.Role{domain.RoleLeader})
	}
	return nil, domain.ErrForbidden
}

// Login checks credentials and account status; it backs the token issuance
// endpoint.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active() {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}
