package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func testUserService(users *memUserRepo) *UserService {
	return &UserService{
		Users: users,
		NewID: sequenceIDs("user"),
		Now:   func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func TestCreateUserCapabilities(t *testing.T) {
	cases := []struct {
		name    string
		actor   domain.Principal
		role    domain.Role
		wantErr error
	}{
		{"admin creates leader", adminPrincipal, domain.RoleLeader, nil},
		{"admin cannot create admin", adminPrincipal, domain.RoleAdmin, domain.ErrForbidden},
		{"superadmin creates admin", superadminPrincipal, domain.RoleAdmin, nil},
		{"superadmin creates leader", superadminPrincipal, domain.RoleLeader, nil},
		{"nobody creates superadmin", superadminPrincipal, domain.RoleSuperadmin, domain.ErrForbidden},
		{"leader creates nobody", leaderPrincipal, domain.RoleLeader, domain.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := testUserService(newMemUserRepo())
			_, err := svc.Create(context.Background(), tc.actor, CreateUserInput{
				Name: "New User", Email: "new@example.com", Password: "long-enough", Role: tc.role,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateUserValidation(t *testing.T) {
	users := newMemUserRepo()
	svc := testUserService(users)

	if _, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{Name: "x", Email: "bad", Password: "long-enough"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad email err = %v", err)
	}
	if _, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{Name: "x", Email: "x@example.com", Password: "short"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short password err = %v", err)
	}

	user, err := svc.Create(context.Background(), adminPrincipal, CreateUserInput{Name: "x", Email: "Mixed@Example.COM", Password: "long-enough"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "mixed@example.com" {
		t.Fatalf("email not lowercased: %q", user.Email)
	}
	if user.Role != domain.RoleLeader || user.Status != domain.UserActive {
		t.Fatalf("defaults = %+v", user)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long-enough")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestUpdateStatus(t *testing.T) {
	users := newMemUserRepo(
		domain.User{ID: "u-1", Role: domain.RoleLeader, Status: domain.UserActive},
		domain.User{ID: "u-2", Role: domain.RoleAdmin, Status: domain.UserActive},
		domain.User{ID: "u-3", Role: domain.RoleSuperadmin, Status: domain.UserActive},
	)
	svc := testUserService(users)
	ctx := context.Background()

	if err := svc.UpdateStatus(ctx, adminPrincipal, "u-1", "frozen", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown status err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, adminPrincipal, "u-1", domain.UserTerminated, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("terminate without reason err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, adminPrincipal, "u-2", domain.UserSuspended, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin touching admin err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, superadminPrincipal, "u-3", domain.UserSuspended, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("touching superadmin err = %v", err)
	}

	if err := svc.UpdateStatus(ctx, adminPrincipal, "u-1", domain.UserTerminated, "policy violation"); err != nil {
		t.Fatalf("terminate: %v", err)
	}
	user, _ := users.GetByID(ctx, "u-1")
	if user.Status != domain.UserTerminated || user.TerminationReason != "policy violation" {
		t.Fatalf("terminated = %+v", user)
	}

	// Reactivation clears the stale termination reason.
	if err := svc.UpdateStatus(ctx, adminPrincipal, "u-1", domain.UserActive, ""); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	user, _ = users.GetByID(ctx, "u-1")
	if user.Status != domain.UserActive || user.TerminationReason != "" {
		t.Fatalf("reactivated = %+v", user)
	}
}

func TestSetOrgNameFirstWriteWins(t *testing.T) {
	users := newMemUserRepo(domain.User{ID: "u-1", Role: domain.RoleLeader, Status: domain.UserActive})
	svc := testUserService(users)
	ctx := context.Background()

	if err := svc.SetOrgName(ctx, "u-1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty org name err = %v", err)
	}
	if err := svc.SetOrgName(ctx, "u-1", "GDG on Campus ASU"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := svc.SetOrgName(ctx, "u-1", "Renamed Org"); !errors.Is(err, domain.ErrOrgNameSet) {
		t.Fatalf("second write err = %v", err)
	}
	user, _ := users.GetByID(ctx, "u-1")
	if user.OrgName != "GDG on Campus ASU" {
		t.Fatalf("org name = %q", user.OrgName)
	}
}

func TestListUsersByActorRole(t *testing.T) {
	users := newMemUserRepo(
		domain.User{ID: "u-1", Role: domain.RoleLeader},
		domain.User{ID: "u-2", Role: domain.RoleAdmin},
		domain.User{ID: "u-3", Role: domain.RoleSuperadmin},
	)
	svc := testUserService(users)
	ctx := context.Background()

	list, err := svc.List(ctx, superadminPrincipal)
	if err != nil || len(list) != 2 {
		t.Fatalf("superadmin list = %d users, err %v", len(list), err)
	}
	list, err = svc.List(ctx, adminPrincipal)
	if err != nil || len(list) != 1 || list[0].Role != domain.RoleLeader {
		t.Fatalf("admin list = %+v, err %v", list, err)
	}
	if _, err := svc.List(ctx, leaderPrincipal); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("leader list err = %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := newMemUserRepo(
		domain.User{ID: "u-1", Email: "alice@example.com", PasswordHash: string(hash), Role: domain.RoleLeader, Status: domain.UserActive},
		domain.User{ID: "u-2", Email: "gone@example.com", PasswordHash: string(hash), Role: domain.RoleLeader, Status: domain.UserTerminated},
	)
	svc := testUserService(users)
	ctx := context.Background()

	user, err := svc.Login(ctx, "Alice@Example.com", "correct horse")
	if err != nil || user.ID != "u-1" {
		t.Fatalf("login = %+v, %v", user, err)
	}
	if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown user err = %v", err)
	}
	if _, err := svc.Login(ctx, "gone@example.com", "correct horse"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("terminated user err = %v", err)
	}
}
