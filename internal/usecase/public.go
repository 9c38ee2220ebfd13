package usecase

import (
	"context"
	"fmt"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

// PublicService backs the unauthenticated verification endpoints. Lookups
// never reveal whether an identifier was once valid: anything that cannot be
// served is a plain not-found.
type PublicService struct {
	Certificates CertificateRepository
	Renderer     *Renderer
	Store        BlobStore
}

// Show returns the certificate for the validation page, revoked ones
// included so the page can display the revocation.
func (s *PublicService) Show(ctx context.Context, uniqueID string) (*domain.Certificate, error) {
	cert, err := s.Certificates.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return cert, nil
}

// Download serves the PDF for an issued certificate. A stored file is served
// directly; otherwise the PDF is rendered once, persisted at the canonical
// path, and served. Revoked certificates are not downloadable even when a
// cached PDF exists.
func (s *PublicService) Download(ctx context.Context, uniqueID string) ([]byte, error) {
	cert, err := s.Certificates.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if cert.Status != domain.CertificateIssued {
		return nil, domain.ErrNotFound
	}

	if cert.FilePath != "" {
		exists, err := s.Store.Exists(ctx, cert.FilePath)
		if err != nil {
			return nil, fmt.Errorf("check stored pdf: %w", err)
		}
		if exists {
			return s.Store.Get(ctx, cert.FilePath)
		}
	}

	pdf, err := s.Renderer.Generate(ctx, *cert)
	if err != nil {
		return nil, err
	}
	path := PDFPath(cert.UniqueID)
	if err := s.Store.Put(ctx, path, pdf); err != nil {
		return nil, fmt.Errorf("cache pdf %s: %w", path, err)
	}
	if err := s.Certificates.UpdateFilePath(ctx, cert.ID, path); err != nil {
		return nil, fmt.Errorf("record pdf path: %w", err)
	}
	return pdf, nil
}
