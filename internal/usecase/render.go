package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/placeholder"
)

// Renderer turns a certificate into PDF bytes: resolve the template, apply
// escaped substitution, hand the HTML to the converter. Persistence is the
// caller's responsibility.
type Renderer struct {
	Templates CertificateTemplateRepository
	Converter Converter
}

// Generate renders the certificate's PDF. A template deleted after the
// certificate was created surfaces as domain.ErrTemplateNotFound; converter
// failures propagate untouched, with no retry here.
func (r *Renderer) Generate(ctx context.Context, cert domain.Certificate) ([]byte, error) {
	html, err := r.RenderHTML(ctx, cert)
	if err != nil {
		return nil, err
	}
	pdf, err := r.Converter.Convert(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("convert certificate %s: %w", cert.UniqueID, err)
	}
	return pdf, nil
}

// RenderHTML resolves the template and produces the substituted HTML that
// feeds the converter. Unchanged certificate data and template content yield
// identical output across calls.
func (r *Renderer) RenderHTML(ctx context.Context, cert domain.Certificate) (string, error) {
	tmpl, err := r.Templates.GetByID(ctx, cert.CertificateTemplateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrTemplateNotFound
		}
		return "", fmt.Errorf("resolve template %s: %w", cert.CertificateTemplateID, err)
	}
	// The legacy single-brace form is honored only on this rendering path.
	return placeholder.ApplyLegacy(tmpl.Content, cert.PlaceholderValues(), true), nil
}
