package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

var (
	leaderPrincipal     = domain.Principal{UserID: "u-leader", Role: domain.RoleLeader, Status: domain.UserActive}
	otherLeader         = domain.Principal{UserID: "u-other", Role: domain.RoleLeader, Status: domain.UserActive}
	adminPrincipal      = domain.Principal{UserID: "u-admin", Role: domain.RoleAdmin, Status: domain.UserActive}
	superadminPrincipal = domain.Principal{UserID: "u-super", Role: domain.RoleSuperadmin, Status: domain.UserActive}
)

func testTemplateService(certTemplates *memCertTemplateRepo, emailTemplates *memEmailTemplateRepo) *TemplateService {
	return &TemplateService{
		CertTemplates:  certTemplates,
		EmailTemplates: emailTemplates,
		NewID:          sequenceIDs("tmpl"),
		Now:            func() time.Time { return time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC) },
	}
}

func TestCertificateTemplateCRUD(t *testing.T) {
	certTemplates := newMemCertTemplateRepo()
	svc := testTemplateService(certTemplates, newMemEmailTemplateRepo())

	created, err := svc.CreateCertificateTemplate(context.Background(), leaderPrincipal, "Award", "<h1>x</h1>", domain.TemplateTypeHTML, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != leaderPrincipal.UserID || created.IsGlobal {
		t.Fatalf("created = %+v", created)
	}

	if _, err := svc.CreateCertificateTemplate(context.Background(), leaderPrincipal, "Bad", "x", "pdf", false); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("invalid type err = %v", err)
	}
	if _, err := svc.CreateCertificateTemplate(context.Background(), leaderPrincipal, "Global", "x", domain.TemplateTypeSVG, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("leader creating global err = %v", err)
	}
	if _, err := svc.CreateCertificateTemplate(context.Background(), adminPrincipal, "Global", "x", domain.TemplateTypeSVG, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin creating global err = %v", err)
	}
	if _, err := svc.CreateCertificateTemplate(context.Background(), superadminPrincipal, "Global", "x", domain.TemplateTypeSVG, true); err != nil {
		t.Fatalf("superadmin creating global: %v", err)
	}

	if _, err := svc.UpdateCertificateTemplate(context.Background(), otherLeader, created.ID, "Stolen", "y", domain.TemplateTypeHTML); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-user update err = %v", err)
	}
	updated, err := svc.UpdateCertificateTemplate(context.Background(), leaderPrincipal, created.ID, "Award v2", "<h2>y</h2>", domain.TemplateTypeHTML)
	if err != nil || updated.Name != "Award v2" {
		t.Fatalf("owner update = %+v, %v", updated, err)
	}

	if err := svc.DeleteCertificateTemplate(context.Background(), otherLeader, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-user delete err = %v", err)
	}
	if err := svc.DeleteCertificateTemplate(context.Background(), leaderPrincipal, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestCloneAndReset(t *testing.T) {
	certTemplates := newMemCertTemplateRepo(domain.CertificateTemplate{
		ID:       "ct-global",
		UserID:   "u-admin",
		Name:     "Global Award",
		Content:  "original content",
		Type:     domain.TemplateTypeHTML,
		IsGlobal: true,
	})
	svc := testTemplateService(certTemplates, newMemEmailTemplateRepo())

	clone, err := svc.CloneCertificateTemplate(context.Background(), leaderPrincipal, "ct-global")
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if clone.Name != "Global Award (Copy)" {
		t.Fatalf("clone name = %q", clone.Name)
	}
	if clone.IsGlobal || clone.UserID != leaderPrincipal.UserID || clone.OriginalTemplateID != "ct-global" {
		t.Fatalf("clone = %+v", clone)
	}

	// Local edits are recoverable while the original exists.
	if _, err := svc.UpdateCertificateTemplate(context.Background(), leaderPrincipal, clone.ID, clone.Name, "hacked up", domain.TemplateTypeHTML); err != nil {
		t.Fatalf("edit clone: %v", err)
	}
	reset, err := svc.ResetCertificateTemplate(context.Background(), leaderPrincipal, clone.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.Content != "original content" {
		t.Fatalf("reset content = %q", reset.Content)
	}

	if _, err := svc.ResetCertificateTemplate(context.Background(), leaderPrincipal, "ct-global"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("reset of global by leader err = %v", err)
	}

	// Deleting the original leaves the clone usable but unresettable.
	if err := certTemplates.Delete(context.Background(), "ct-global"); err != nil {
		t.Fatalf("delete original: %v", err)
	}
	if _, err := svc.ResetCertificateTemplate(context.Background(), leaderPrincipal, clone.ID); !errors.Is(err, domain.ErrOriginalGone) {
		t.Fatalf("reset with gone original err = %v", err)
	}

	fresh, err := svc.CreateCertificateTemplate(context.Background(), leaderPrincipal, "Own", "x", domain.TemplateTypeHTML, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ResetCertificateTemplate(context.Background(), leaderPrincipal, fresh.ID); !errors.Is(err, domain.ErrNotCloned) {
		t.Fatalf("reset of never-cloned err = %v", err)
	}
}

func TestEmailTemplateCloneAndReset(t *testing.T) {
	emailTemplates := newMemEmailTemplateRepo(domain.EmailTemplate{
		ID:       "et-global",
		UserID:   "u-admin",
		Name:     "Notify",
		Subject:  "Your certificate",
		Body:     "<p>original</p>",
		IsGlobal: true,
	})
	svc := testTemplateService(newMemCertTemplateRepo(), emailTemplates)

	clone, err := svc.CloneEmailTemplate(context.Background(), leaderPrincipal, "et-global")
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if clone.Name != "Notify (Copy)" || clone.OriginalTemplateID != "et-global" {
		t.Fatalf("clone = %+v", clone)
	}

	if _, err := svc.UpdateEmailTemplate(context.Background(), leaderPrincipal, clone.ID, clone.Name, "Changed", "<p>changed</p>"); err != nil {
		t.Fatalf("edit clone: %v", err)
	}
	reset, err := svc.ResetEmailTemplate(context.Background(), leaderPrincipal, clone.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.Subject != "Your certificate" || reset.Body != "<p>original</p>" {
		t.Fatalf("reset = %+v", reset)
	}
}

func TestListTemplatesSplitsOwnedAndGlobal(t *testing.T) {
	certTemplates := newMemCertTemplateRepo(
		domain.CertificateTemplate{ID: "ct-1", UserID: "u-leader"},
		domain.CertificateTemplate{ID: "ct-2", UserID: "u-other"},
		domain.CertificateTemplate{ID: "ct-3", UserID: "u-admin", IsGlobal: true},
	)
	svc := testTemplateService(certTemplates, newMemEmailTemplateRepo())

	owned, global, err := svc.ListCertificateTemplates(context.Background(), leaderPrincipal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != "ct-1" {
		t.Fatalf("owned = %+v", owned)
	}
	if len(global) != 1 || global[0].ID != "ct-3" {
		t.Fatalf("global = %+v", global)
	}
}

func TestPreviews(t *testing.T) {
	svc := testTemplateService(newMemCertTemplateRepo(), newMemEmailTemplateRepo())

	out := svc.CertificatePreview("<h1>{{Recipient_Name}}</h1><p>{{ Event_Title }}</p>")
	if !strings.Contains(out, "John Doe") || !strings.Contains(out, "Certificate Award Ceremony") {
		t.Fatalf("preview = %q", out)
	}
	if strings.Contains(out, "{{") {
		t.Fatalf("unresolved placeholders in preview: %q", out)
	}

	subject, body := svc.EmailPreview("Re: {{ Event_Title }}", "<p>{{Recipient_Name}} from {{ Org_Name }}</p>")
	if subject != "Re: Certificate Award Ceremony" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "John Doe") || !strings.Contains(body, "GDG on Campus") {
		t.Fatalf("body = %q", body)
	}
}
