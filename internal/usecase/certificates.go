package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

// CertificateService is the authenticated surface over issued certificates:
// listing, one-way revocation, and dashboard statistics.
type CertificateService struct {
	Certificates   CertificateRepository
	CertTemplates  CertificateTemplateRepository
	EmailTemplates EmailTemplateRepository

	Now func() time.Time
}

func (s *CertificateService) List(ctx context.Context, p domain.Principal, limit, offset int) ([]domain.Certificate, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Certificates.ListByUser(ctx, p.UserID, limit, offset)
}

// Revoke performs the terminal issued -> revoked transition. The reason is
// required, the transition is never reversed, and only the owning leader may
// perform it.
func (s *CertificateService) Revoke(ctx context.Context, p domain.Principal, uniqueID, reason string) error {
	if !domain.Can(p.Role, domain.CapRevokeCertificate) {
		return domain.ErrForbidden
	}
	if reason == "" {
		return fmt.Errorf("%w: revocation_reason is required", domain.ErrValidation)
	}
	cert, err := s.Certificates.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		return domain.ErrNotFound
	}
	if cert.UserID != p.UserID {
		return domain.ErrForbidden
	}
	if !cert.Revocable() {
		return domain.ErrAlreadyRevoked
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Certificates.Revoke(ctx, cert.ID, reason, now().UTC())
}

// Stats assembles the per-leader dashboard counters.
func (s *CertificateService) Stats(ctx context.Context, p domain.Principal) (DashboardStats, error) {
	stats, err := s.Certificates.StatsByUser(ctx, p.UserID)
	if err != nil {
		return DashboardStats{}, err
	}
	if s.CertTemplates != nil {
		n, err := s.CertTemplates.CountVisible(ctx, p.UserID)
		if err != nil {
			return DashboardStats{}, fmt.Errorf("count certificate templates: %w", err)
		}
		stats.CertificateTemplates = n
	}
	if s.EmailTemplates != nil {
		n, err := s.EmailTemplates.CountVisible(ctx, p.UserID)
		if err != nil {
			return DashboardStats{}, fmt.Errorf("count email templates: %w", err)
		}
		stats.EmailTemplates = n
	}
	return stats, nil
}
