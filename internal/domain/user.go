package domain

import "time"

type Role string

const (
	RoleLeader     Role = "leader"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleLeader, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive     UserStatus = "active"
	UserSuspended  UserStatus = "suspended"
	UserTerminated UserStatus = "terminated"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserSuspended, UserTerminated:
		return true
	}
	return false
}

type Capability string

const (
	CapIssueCertificates Capability = "certificates:issue"
	CapRevokeCertificate Capability = "certificates:revoke"
	CapManageTemplates   Capability = "templates:manage"
	CapManageGlobals     Capability = "templates:manage_global"
	CapManageSmtp        Capability = "smtp:manage"
	CapManageLeaders     Capability = "users:manage_leaders"
	CapManageAdmins      Capability = "users:manage_admins"
	CapViewAdminPanel    Capability = "admin:view"
)

// Can is the single capability-check decision point. Every role is matched
// explicitly; an unknown role holds no capability.
func Can(role Role, cap Capability) bool {
	switch role {
	case RoleLeader:
		switch cap {
		case CapIssueCertificates, CapRevokeCertificate, CapManageTemplates, CapManageSmtp:
			return true
		}
		return false
	case RoleAdmin:
		switch cap {
		case CapIssueCertificates, CapRevokeCertificate, CapManageTemplates, CapManageSmtp,
			CapManageLeaders, CapViewAdminPanel:
			return true
		}
		return false
	case RoleSuperadmin:
		switch cap {
		case CapIssueCertificates, CapRevokeCertificate, CapManageTemplates, CapManageSmtp,
			CapManageGlobals, CapManageLeaders, CapManageAdmins, CapViewAdminPanel:
			return true
		}
		return false
	}
	return false
}

// User is an organization leader, admin, or superadmin. OrgName is settable
// exactly once; the update path refuses to overwrite a non-empty value.
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	OrgName           string
	Role              Role
	Status            UserStatus
	TerminationReason string
	OIDCProvider      string
	OIDCSubject       string
	CreatedAt         time.Time
}

// SetOrgName applies the first-write-wins rule as an explicit transition.
func (u *User) SetOrgName(name string) error {
	if u.OrgName != "" {
		return ErrOrgNameSet
	}
	u.OrgName = name
	return nil
}

// Active gates all authenticated access on account status.
func (u User) Active() bool {
	return u.Status == UserActive
}
