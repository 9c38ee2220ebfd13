package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrTemplateNotFound    = errors.New("certificate template not found")
	ErrAlreadyRevoked      = errors.New("certificate already revoked")
	ErrOriginalGone        = errors.New("original template no longer exists")
	ErrNotCloned           = errors.New("template was not cloned from a global template")
	ErrOrgNameSet          = errors.New("organization name already set")
	ErrAccountInactive     = errors.New("account is not active")
	ErrDuplicateIdentifier = errors.New("duplicate public identifier")
)
