package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/placeholder"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Row is one parsed line of a bulk upload.
type Row struct {
	RecipientName  string
	RecipientEmail string
	State          string
	EventType      string
	EventTitle     string
	IssueDate      time.Time
}

// RowJob is the payload carried by one queued unit of work.
type RowJob struct {
	UserID                string
	Row                   Row
	IssuerName            string
	OrgName               string
	CertificateTemplateID string
	EmailTemplateID       string
	SmtpProviderID        string
}

// IssueResult reports what one row execution produced.
type IssueResult struct {
	CertificateID string
	UniqueID      string
	FilePath      string
	EmailSent     bool
}

// RowIssuer executes one row job: create the certificate, render and store
// its PDF, and send the notification email over the resolved transport.
// Each execution creates a new certificate; there is no idempotency key, so
// re-running the same logical row produces a duplicate.
type RowIssuer struct {
	Certificates   CertificateRepository
	CertTemplates  CertificateTemplateRepository
	EmailTemplates EmailTemplateRepository
	SmtpProviders  SmtpProviderRepository
	Renderer       *Renderer
	Store          BlobStore
	Mailer         MailSender

	// DefaultTransport is the system transport used when the job carries no
	// SMTP provider override, or the provider row no longer exists.
	DefaultTransport domain.MailTransport

	Logger *zap.Logger

	// NewID and Now are overridable for tests.
	NewID func() string
	Now   func() time.Time
}

// PDFPath is the canonical storage location for a certificate's PDF.
func PDFPath(uniqueID string) string {
	return "certificates/" + uniqueID + ".pdf"
}

func (i *RowIssuer) Execute(ctx context.Context, job RowJob) (IssueResult, error) {
	newID := i.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	now := i.Now
	if now == nil {
		now = time.Now
	}
	logger := i.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Only a template that is actually gone is fatal for the row; repository
	// failures stay retryable.
	if _, err := i.CertTemplates.GetByID(ctx, job.CertificateTemplateID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return IssueResult{}, fmt.Errorf("resolve certificate template %s: %w", job.CertificateTemplateID, domain.ErrTemplateNotFound)
		}
		return IssueResult{}, fmt.Errorf("resolve certificate template %s: %w", job.CertificateTemplateID, err)
	}
	emailTmpl, err := i.EmailTemplates.GetByID(ctx, job.EmailTemplateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return IssueResult{}, fmt.Errorf("resolve email template %s: %w", job.EmailTemplateID, domain.ErrTemplateNotFound)
		}
		return IssueResult{}, fmt.Errorf("resolve email template %s: %w", job.EmailTemplateID, err)
	}

	cert := domain.Certificate{
		ID:                    newID(),
		UserID:                job.UserID,
		CertificateTemplateID: job.CertificateTemplateID,
		UniqueID:              newID(),
		RecipientName:         job.Row.RecipientName,
		RecipientEmail:        job.Row.RecipientEmail,
		State:                 job.Row.State,
		EventType:             job.Row.EventType,
		EventTitle:            job.Row.EventTitle,
		IssueDate:             job.Row.IssueDate,
		IssuerName:            job.IssuerName,
		OrgName:               job.OrgName,
		Status:                domain.CertificateIssued,
		CreatedAt:             now().UTC(),
	}
	if err := i.Certificates.Create(ctx, cert); err != nil {
		return IssueResult{}, fmt.Errorf("create certificate: %w", err)
	}

	pdf, err := i.Renderer.Generate(ctx, cert)
	if err != nil {
		return IssueResult{}, err
	}
	path := PDFPath(cert.UniqueID)
	if err := i.Store.Put(ctx, path, pdf); err != nil {
		return IssueResult{}, fmt.Errorf("store pdf %s: %w", path, err)
	}
	if err := i.Certificates.UpdateFilePath(ctx, cert.ID, path); err != nil {
		return IssueResult{}, fmt.Errorf("record pdf path: %w", err)
	}

	transport := i.resolveTransport(ctx, job.SmtpProviderID, logger)

	result := IssueResult{
		CertificateID: cert.ID,
		UniqueID:      cert.UniqueID,
		FilePath:      path,
	}

	// No recipient email means the certificate is issued silently.
	if cert.RecipientEmail == "" {
		logger.Info("certificate issued without notification",
			zap.String("unique_id", cert.UniqueID))
		return result, nil
	}

	values := cert.PlaceholderValues()
	subject := placeholder.Apply(emailTmpl.Subject, values, false)
	body := placeholder.Apply(emailTmpl.Body, values, true)

	mail := domain.OutboundMail{
		To:       cert.RecipientEmail,
		Subject:  subject,
		HTMLBody: body,
		PDF:      pdf,
	}
	if err := i.Mailer.Send(ctx, transport, mail); err != nil {
		return IssueResult{}, fmt.Errorf("send certificate mail: %w", err)
	}
	result.EmailSent = true
	logger.Info("certificate issued and mailed",
		zap.String("unique_id", cert.UniqueID))
	return result, nil
}

// resolveTransport prefers the job's SMTP provider when it still exists and
// falls back to the default transport otherwise. The returned value is local
// to this job; nothing process-wide is mutated.
func (i *RowIssuer) resolveTransport(ctx context.Context, providerID string, logger *zap.Logger) domain.MailTransport {
	if providerID == "" {
		return i.DefaultTransport
	}
	provider, err := i.SmtpProviders.GetByID(ctx, providerID)
	if err != nil {
		logger.Warn("smtp provider gone, using default transport",
			zap.String("smtp_provider_id", providerID))
		return i.DefaultTransport
	}
	return provider.Transport()
}
