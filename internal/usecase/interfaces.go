package usecase

import (
	"context"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

// DashboardStats are the per-leader counters shown on the dashboard.
type DashboardStats struct {
	TotalCertificates    int64
	ActiveCertificates   int64
	RevokedCertificates  int64
	EmailsSent           int64
	CertificateTemplates int64
	EmailTemplates       int64
}

type CertificateRepository interface {
	Create(ctx context.Context, cert domain.Certificate) error
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Certificate, error)
	UpdateFilePath(ctx context.Context, id, filePath string) error
	Revoke(ctx context.Context, id, reason string, revokedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Certificate, error)
	StatsByUser(ctx context.Context, userID string) (DashboardStats, error)
}

type CertificateTemplateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.CertificateTemplate, error)
	Create(ctx context.Context, t domain.CertificateTemplate) error
	Update(ctx context.Context, t domain.CertificateTemplate) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.CertificateTemplate, error)
	ListGlobal(ctx context.Context) ([]domain.CertificateTemplate, error)
	CountVisible(ctx context.Context, userID string) (int64, error)
}

type EmailTemplateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error)
	Create(ctx context.Context, t domain.EmailTemplate) error
	Update(ctx context.Context, t domain.EmailTemplate) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.EmailTemplate, error)
	ListGlobal(ctx context.Context) ([]domain.EmailTemplate, error)
	CountVisible(ctx context.Context, userID string) (int64, error)
}

type SmtpProviderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SmtpProvider, error)
	Create(ctx context.Context, p domain.SmtpProvider) error
	Update(ctx context.Context, p domain.SmtpProvider) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.SmtpProvider, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) error
	Update(ctx context.Context, u domain.User) error
	List(ctx context.Context, roles []domain.Role) ([]domain.User, error)
}

// Converter is the opaque HTML-to-PDF boundary. Implementations must force
// the security hardening options on regardless of template content.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// BlobStore persists rendered PDFs. Paths are keyed by the certificate's
// public identifier, so no two row jobs ever target the same path.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// MailSender sends one message through the given transport. The transport is
// a job-local value resolved per row; senders never mutate shared state.
type MailSender interface {
	Send(ctx context.Context, transport domain.MailTransport, mail domain.OutboundMail) error
}

// RowDispatcher enqueues one independent asynchronous row job. Dispatch is
// fire-and-forget from the HTTP request's perspective.
type RowDispatcher interface {
	Dispatch(ctx context.Context, job RowJob) error
}
