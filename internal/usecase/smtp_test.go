package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

func validSmtpInput() SmtpProviderInput {
	return SmtpProviderInput{
		Name:        "Campus SMTP",
		Host:        "smtp.campus.test",
		Port:        587,
		Username:    "mailer",
		Password:    "secret",
		Encryption:  "tls",
		FromAddress: "certs@campus.test",
		FromName:    "Campus Certs",
	}
}

func TestSmtpProviderLifecycle(t *testing.T) {
	providers := newMemSmtpRepo()
	svc := &SmtpService{Providers: providers, NewID: sequenceIDs("sp")}
	ctx := context.Background()

	created, err := svc.Create(ctx, leaderPrincipal, validSmtpInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != leaderPrincipal.UserID {
		t.Fatalf("created = %+v", created)
	}

	// Blank password on update keeps the stored one.
	input := validSmtpInput()
	input.Host = "smtp2.campus.test"
	input.Password = ""
	updated, err := svc.Update(ctx, leaderPrincipal, created.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Host != "smtp2.campus.test" || updated.Password != "secret" {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := svc.Update(ctx, otherLeader, created.ID, validSmtpInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-user update err = %v", err)
	}
	if err := svc.Delete(ctx, otherLeader, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-user delete err = %v", err)
	}

	list, err := svc.List(ctx, leaderPrincipal)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %+v, %v", list, err)
	}
	if err := svc.Delete(ctx, leaderPrincipal, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestSmtpProviderValidation(t *testing.T) {
	svc := &SmtpService{Providers: newMemSmtpRepo()}
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(*SmtpProviderInput)
	}{
		{"missing name", func(in *SmtpProviderInput) { in.Name = "" }},
		{"missing host", func(in *SmtpProviderInput) { in.Host = "" }},
		{"zero port", func(in *SmtpProviderInput) { in.Port = 0 }},
		{"port too large", func(in *SmtpProviderInput) { in.Port = 70000 }},
		{"bad encryption", func(in *SmtpProviderInput) { in.Encryption = "starttls" }},
		{"missing from address", func(in *SmtpProviderInput) { in.FromAddress = "" }},
	}
	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			input := validSmtpInput()
			tc.mutate(&input)
			if _, err := svc.Create(ctx, leaderPrincipal, input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want validation", err)
			}
		})
	}

	for _, enc := range []string{"tls", "ssl", "none"} {
		input := validSmtpInput()
		input.Encryption = enc
		if _, err := svc.Create(ctx, leaderPrincipal, input); err != nil {
			t.Fatalf("encryption %q rejected: %v", enc, err)
		}
	}
}
