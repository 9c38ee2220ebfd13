package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/placeholder"

	"github.com/google/uuid"
)

// TemplateService owns certificate- and email-template lifecycle: CRUD,
// cloning a global template into a user-owned copy, resetting a clone from
// its original, and side-effect-free previews with sample values.
type TemplateService struct {
	CertTemplates  CertificateTemplateRepository
	EmailTemplates EmailTemplateRepository

	NewID func() string
	Now   func() time.Time
}

func (s *TemplateService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *TemplateService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// canEdit applies the ownership rule shared by update, delete, and reset:
// the owner may touch their templates, only a global manager may touch
// global ones.
func canEdit(p domain.Principal, ownerID string, isGlobal bool) bool {
	if isGlobal {
		return domain.Can(p.Role, domain.CapManageGlobals)
	}
	return ownerID == p.UserID
}

func (s *TemplateService) CreateCertificateTemplate(ctx context.Context, p domain.Principal, name, content string, typ domain.TemplateType, global bool) (*domain.CertificateTemplate, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unsupported template type %q", domain.ErrValidation, typ)
	}
	if global && !domain.Can(p.Role, domain.CapManageGlobals) {
		return nil, domain.ErrForbidden
	}
	tmpl := domain.CertificateTemplate{
		ID:        s.newID(),
		UserID:    p.UserID,
		Name:      name,
		Content:   content,
		Type:      typ,
		IsGlobal:  global,
		CreatedAt: s.now().UTC(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.CertTemplates.Create(ctx, tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (s *TemplateService) UpdateCertificateTemplate(ctx context.Context, p domain.Principal, id, name, content string, typ domain.TemplateType) (*domain.CertificateTemplate, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unsupported template type %q", domain.ErrValidation, typ)
	}
	tmpl, err := s.CertTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(p, tmpl.UserID, tmpl.IsGlobal) {
		return nil, domain.ErrForbidden
	}
	tmpl.Name = name
	tmpl.Content = content
	tmpl.Type = typ
	tmpl.UpdatedAt = s.now().UTC()
	if err := s.CertTemplates.Update(ctx, *tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *TemplateService) DeleteCertificateTemplate(ctx context.Context, p domain.Principal, id string) error {
	tmpl, err := s.CertTemplates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(p, tmpl.UserID, tmpl.IsGlobal) {
		return domain.ErrForbidden
	}
	return s.CertTemplates.Delete(ctx, id)
}

// CloneCertificateTemplate copies a template into a user-owned copy that
// back-references the original for later reset.
func (s *TemplateService) CloneCertificateTemplate(ctx context.Context, p domain.Principal, id string) (*domain.CertificateTemplate, error) {
	original, err := s.CertTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !original.IsGlobal && original.UserID != p.UserID {
		return nil, domain.ErrForbidden
	}
	clone := domain.CertificateTemplate{
		ID:                 s.newID(),
		UserID:             p.UserID,
		Name:               original.Name + " (Copy)",
		Content:            original.Content,
		Type:               original.Type,
		IsGlobal:           false,
		OriginalTemplateID: original.ID,
		CreatedAt:          s.now().UTC(),
		UpdatedAt:          s.now().UTC(),
	}
	if err := s.CertTemplates.Create(ctx, clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// ResetCertificateTemplate overwrites a clone's content and type from its
// still-existing original. A template that was never cloned cannot be reset,
// and a deleted original fails gracefully.
func (s *TemplateService) ResetCertificateTemplate(ctx context.Context, p domain.Principal, id string) (*domain.CertificateTemplate, error) {
	tmpl, err := s.CertTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(p, tmpl.UserID, tmpl.IsGlobal) {
		return nil, domain.ErrForbidden
	}
	if tmpl.OriginalTemplateID == "" {
		return nil, domain.ErrNotCloned
	}
	original, err := s.CertTemplates.GetByID(ctx, tmpl.OriginalTemplateID)
	if err != nil {
		return nil, domain.ErrOriginalGone
	}
	tmpl.Content = original.Content
	tmpl.Type = original.Type
	tmpl.UpdatedAt = s.now().UTC()
	if err := s.CertTemplates.Update(ctx, *tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *TemplateService) ListCertificateTemplates(ctx context.Context, p domain.Principal) (owned, global []domain.CertificateTemplate, err error) {
	owned, err = s.CertTemplates.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	global, err = s.CertTemplates.ListGlobal(ctx)
	if err != nil {
		return nil, nil, err
	}
	return owned, global, nil
}

func (s *TemplateService) CreateEmailTemplate(ctx context.Context, p domain.Principal, name, subject, body string, global bool) (*domain.EmailTemplate, error) {
	if global && !domain.Can(p.Role, domain.CapManageGlobals) {
		return nil, domain.ErrForbidden
	}
	tmpl := domain.EmailTemplate{
		ID:        s.newID(),
		UserID:    p.UserID,
		Name:      name,
		Subject:   subject,
		Body:      body,
		IsGlobal:  global,
		CreatedAt: s.now().UTC(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.EmailTemplates.Create(ctx, tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (s *TemplateService) UpdateEmailTemplate(ctx context.Context, p domain.Principal, id, name, subject, body string) (*domain.EmailTemplate, error) {
	tmpl, err := s.EmailTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(p, tmpl.UserID, tmpl.IsGlobal) {
		return nil, domain.ErrForbidden
	}
	tmpl.Name = name
	tmpl.Subject = subject
	tmpl.Body = body
	tmpl.UpdatedAt = s.now().UTC()
	if err := s.EmailTemplates.Update(ctx, *tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *TemplateService) DeleteEmailTemplate(ctx context.Context, p domain.Principal, id string) error {
	tmpl, err := s.EmailTemplates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(p, tmpl.UserID, tmpl.IsGlobal) {
		return domain.ErrForbidden
	}
	return s.EmailTemplates.Delete(ctx, id)
}

func (s *TemplateService) CloneEmailTemplate(ctx context.Context, p domain.Principal, id string) (*domain.EmailTemplate, error) {
	original, err := s.EmailTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !original.IsGlobal && original.UserID != p.UserID {
		return nil, domain.ErrForbidden
	}
	clone := domain.EmailTemplate{
		ID:                 s.newID(),
		UserID:             p.UserID,
		Name:               original.Name + " (Copy)",
		Subject:            original.Subject,
		Body:               original.Body,
		IsGlobal:           false,
		OriginalTemplateID: original.ID,
		CreatedAt:          s.now().UTC(),
		UpdatedAt:          s.now().UTC(),
	}
	if err := s.EmailTemplates.Create(ctx, clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

func (s *TemplateService) ResetEmailTemplate(ctx context.Context, p domain.Principal, id string) (*domain.EmailTemplate, error) {
	tmpl, err := s.EmailTemplates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(p, tmpl.UserID, tmpl.IsGlobal) {
		return nil, domain.ErrForbidden
	}
	if tmpl.OriginalTemplateID == "" {
		return nil, domain.ErrNotCloned
	}
	original, err := s.EmailTemplates.GetByID(ctx, tmpl.OriginalTemplateID)
	if err != nil {
		return nil, domain.ErrOriginalGone
	}
	tmpl.Subject = original.Subject
	tmpl.Body = original.Body
	tmpl.UpdatedAt = s.now().UTC()
	if err := s.EmailTemplates.Update(ctx, *tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *TemplateService) ListEmailTemplates(ctx context.Context, p domain.Principal) (owned, global []domain.EmailTemplate, err error) {
	owned, err = s.EmailTemplates.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	global, err = s.EmailTemplates.ListGlobal(ctx)
	if err != nil {
		return nil, nil, err
	}
	return owned, global, nil
}

// CertificatePreview substitutes the fixed sample values into raw template
// content. Previews never persist anything and never execute the template.
func (s *TemplateService) CertificatePreview(content string) string {
	values := placeholder.SampleValues(s.now().Format("Jan 2, 2006"))
	return placeholder.Apply(content, values, false)
}

// EmailPreview substitutes sample values into a subject and body pair.
func (s *TemplateService) EmailPreview(subject, body string) (string, string) {
	values := placeholder.SampleValues(s.now().Format("Jan 2, 2006"))
	return placeholder.Apply(subject, values, false), placeholder.Apply(body, values, false)
}
