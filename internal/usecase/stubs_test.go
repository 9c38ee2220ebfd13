package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

type memCertificateRepo struct {
	mu    sync.Mutex
	certs map[string]domain.Certificate
}

func newMemCertificateRepo() *memCertificateRepo {
	return &memCertificateRepo{certs: make(map[string]domain.Certificate)}
}

func (r *memCertificateRepo) Create(ctx context.Context, cert domain.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.certs {
		if existing.UniqueID == cert.UniqueID {
			return domain.ErrDuplicateIdentifier
		}
	}
	r.certs[cert.ID] = cert
	return nil
}

func (r *memCertificateRepo) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cert := range r.certs {
		if cert.UniqueID == uniqueID {
			out := cert
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCertificateRepo) UpdateFilePath(ctx context.Context, id, filePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert, ok := r.certs[id]
	if !ok {
		return domain.ErrNotFound
	}
	cert.FilePath = filePath
	r.certs[id] = cert
	return nil
}

func (r *memCertificateRepo) Revoke(ctx context.Context, id, reason string, revokedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert, ok := r.certs[id]
	if !ok {
		return domain.ErrNotFound
	}
	cert.Status = domain.CertificateRevoked
	cert.RevocationReason = reason
	cert.RevokedAt = &revokedAt
	r.certs[id] = cert
	return nil
}

func (r *memCertificateRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Certificate
	for _, cert := range r.certs {
		if cert.UserID == userID {
			out = append(out, cert)
		}
	}
	return out, nil
}

func (r *memCertificateRepo) StatsByUser(ctx context.Context, userID string) (DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats DashboardStats
	for _, cert := range r.certs {
		if cert.UserID != userID {
			continue
		}
		stats.TotalCertificates++
		switch cert.Status {
		case domain.CertificateIssued:
			stats.ActiveCertificates++
		case domain.CertificateRevoked:
			stats.RevokedCertificates++
		}
		if cert.RecipientEmail != "" {
			stats.EmailsSent++
		}
	}
	return stats, nil
}

func (r *memCertificateRepo) all() []domain.Certificate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Certificate, 0, len(r.certs))
	for _, cert := range r.certs {
		out = append(out, cert)
	}
	return out
}

type memCertTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]domain.CertificateTemplate
	getErr    error
	countErr  error
}

func newMemCertTemplateRepo(templates ...domain.CertificateTemplate) *memCertTemplateRepo {
	repo := &memCertTemplateRepo{templates: make(map[string]domain.CertificateTemplate)}
	for _, t := range templates {
		repo.templates[t.ID] = t
	}
	return repo
}

func (r *memCertTemplateRepo) GetByID(ctx context.Context, id string) (*domain.CertificateTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *memCertTemplateRepo) Create(ctx context.Context, t domain.CertificateTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
	return nil
}

func (r *memCertTemplateRepo) Update(ctx context.Context, t domain.CertificateTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.templates[t.ID] = t
	return nil
}

func (r *memCertTemplateRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

func (r *memCertTemplateRepo) ListByUser(ctx context.Context, userID string) ([]domain.CertificateTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CertificateTemplate
	for _, t := range r.templates {
		if t.UserID == userID && !t.IsGlobal {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memCertTemplateRepo) ListGlobal(ctx context.Context) ([]domain.CertificateTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CertificateTemplate
	for _, t := range r.templates {
		if t.IsGlobal {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memCertTemplateRepo) CountVisible(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, t := range r.templates {
		if t.IsGlobal || t.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memEmailTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]domain.EmailTemplate
	getErr    error
}

func newMemEmailTemplateRepo(templates ...domain.EmailTemplate) *memEmailTemplateRepo {
	repo := &memEmailTemplateRepo{templates: make(map[string]domain.EmailTemplate)}
	for _, t := range templates {
		repo.templates[t.ID] = t
	}
	return repo
}

func (r *memEmailTemplateRepo) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *memEmailTemplateRepo) Create(ctx context.Context, t domain.EmailTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
	return nil
}

func (r *memEmailTemplateRepo) Update(ctx context.Context, t domain.EmailTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.templates[t.ID] = t
	return nil
}

func (r *memEmailTemplateRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

func (r *memEmailTemplateRepo) ListByUser(ctx context.Context, userID string) ([]domain.EmailTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.EmailTemplate
	for _, t := range r.templates {
		if t.UserID == userID && !t.IsGlobal {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memEmailTemplateRepo) ListGlobal(ctx context.Context) ([]domain.EmailTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.EmailTemplate
	for _, t := range r.templates {
		if t.IsGlobal {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memEmailTemplateRepo) CountVisible(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.templates {
		if t.IsGlobal || t.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memSmtpRepo struct {
	mu        sync.Mutex
	providers map[string]domain.SmtpProvider
}

func newMemSmtpRepo(providers ...domain.SmtpProvider) *memSmtpRepo {
	repo := &memSmtpRepo{providers: make(map[string]domain.SmtpProvider)}
	for _, p := range providers {
		repo.providers[p.ID] = p
	}
	return repo
}

func (r *memSmtpRepo) GetByID(ctx context.Context, id string) (*domain.SmtpProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *memSmtpRepo) Create(ctx context.Context, p domain.SmtpProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
	return nil
}

func (r *memSmtpRepo) Update(ctx context.Context, p domain.SmtpProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.providers[p.ID] = p
	return nil
}

func (r *memSmtpRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, id)
	return nil
}

func (r *memSmtpRepo) ListByUser(ctx context.Context, userID string) ([]domain.SmtpProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SmtpProvider
	for _, p := range r.providers {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo(users ...domain.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) Create(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) List(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

// fakeConverter records every HTML input and produces deterministic bytes.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []string
	err    error
}

func (c *fakeConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	c.inputs = append(c.inputs, html)
	return []byte("%PDF " + html), nil
}

func (c *fakeConverter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inputs)
}

type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Put(ctx context.Context, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[path] = buf
	return nil
}

func (s *memBlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (s *memBlobStore) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[path]
	return ok, nil
}

type sentMail struct {
	transport domain.MailTransport
	mail      domain.OutboundMail
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, transport domain.MailTransport, mail domain.OutboundMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{transport: transport, mail: mail})
	return nil
}

type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []RowJob
	err  error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, job RowJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

// sequenceIDs hands out deterministic identifiers for tests.
func sequenceIDs(prefix string) func() string {
	n := 0
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
