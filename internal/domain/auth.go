package domain

import "context"

// Principal is the authenticated caller as seen by handlers.
type Principal struct {
	UserID  string
	Name    string
	Email   string
	OrgName string
	Role    Role
	Status  UserStatus
}

type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}
