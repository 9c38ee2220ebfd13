package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"github.com/google/uuid"
)

// SmtpService manages per-user outbound-mail providers. Passwords are
// encrypted by the repository layer; this service only ever sees and
// returns plaintext in-process values.
type SmtpService struct {
	Providers SmtpProviderRepository

	NewID func() string
	Now   func() time.Time
}

type SmtpProviderInput struct {
	Name        string
	Host        string
	Port        int
	Username    string
	Password    string
	Encryption  string
	FromAddress string
	FromName    string
}

func (in SmtpProviderInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Host == "" {
		return fmt.Errorf("%w: host is required", domain.ErrValidation)
	}
	if in.Port <= 0 || in.Port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535", domain.ErrValidation)
	}
	switch in.Encryption {
	case "tls", "ssl", "none":
	default:
		return fmt.Errorf("%w: encryption must be tls, ssl, or none", domain.ErrValidation)
	}
	if in.FromAddress == "" {
		return fmt.Errorf("%w: from_address is required", domain.ErrValidation)
	}
	return nil
}

func (s *SmtpService) Create(ctx context.Context, p domain.Principal, input SmtpProviderInput) (*domain.SmtpProvider, error) {
	if !domain.Can(p.Role, domain.CapManageSmtp) {
		return nil, domain.ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	newID := uuid.NewString
	if s.NewID != nil {
		newID = s.NewID
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	provider := domain.SmtpProvider{
		ID:          newID(),
		UserID:      p.UserID,
		Name:        input.Name,
		Host:        input.Host,
		Port:        input.Port,
		Username:    input.Username,
		Password:    input.Password,
		Encryption:  input.Encryption,
		FromAddress: input.FromAddress,
		FromName:    input.FromName,
		CreatedAt:   now().UTC(),
	}
	if err := s.Providers.Create(ctx, provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (s *SmtpService) Update(ctx context.Context, p domain.Principal, id string, input SmtpProviderInput) (*domain.SmtpProvider, error) {
	provider, err := s.Providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider.UserID != p.UserID {
		return nil, domain.ErrForbidden
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	provider.Name = input.Name
	provider.Host = input.Host
	provider.Port = input.Port
	provider.Username = input.Username
	if input.Password != "" {
		provider.Password = input.Password
	}
	provider.Encryption = input.Encryption
	provider.FromAddress = input.FromAddress
	provider.FromName = input.FromName
	if err := s.Providers.Update(ctx, *provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (s *SmtpService) Delete(ctx context.Context, p domain.Principal, id string) error {
	provider, err := s.Providers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if provider.UserID != p.UserID {
		return domain.ErrForbidden
	}
	return s.Providers.Delete(ctx, id)
}

func (s *SmtpService) List(ctx context.Context, p domain.Principal) ([]domain.SmtpProvider, error) {
	return s.Providers.ListByUser(ctx, p.UserID)
}
