package main

import (
	"log"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/config"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/db"
	httpinfra "github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/http"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/pdf"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/queue"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/ratelimit"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/secrets"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/storage"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/pkg/logger"

	"go.temporal.io/sdk/client"
)

func main() {
	cfg := config.FromEnv()

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	store, err := db.NewStore(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	box, err := secrets.NewBox(cfg.SecretsKeyBase64)
	if err != nil {
		log.Fatalf("failed to init secrets box: %v", err)
	}

	blobs, err := storage.NewFSStore(cfg.StorageRoot)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	certRepo := db.NewCertificateRepository(store.DB)
	certTmplRepo := db.NewCertificateTemplateRepository(store.DB)
	emailTmplRepo := db.NewEmailTemplateRepository(store.DB)
	smtpRepo := db.NewSmtpProviderRepository(store.DB, box)
	userRepo := db.NewUserRepository(store.DB)

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("failed to create temporal client: %v", err)
	}
	defer temporalClient.Close()

	tokens, err := httpinfra.NewTokenSigner(cfg.AuthTokenSecret)
	if err != nil {
		log.Fatalf("failed to init token signer: %v", err)
	}

	var limiter domain.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
		if err != nil {
			log.Fatalf("failed to init redis limiter: %v", err)
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
			MaxKeys: cfg.RateLimitMaxKeys,
		})
	}

	renderer := &usecase.Renderer{
		Templates: certTmplRepo,
		Converter: pdf.NewConverter(cfg.WkhtmltopdfPath),
	}

	srv := httpinfra.NewServer(cfg, httpinfra.ServerDeps{
		Public: &usecase.PublicService{
			Certificates: certRepo,
			Renderer:     renderer,
			Store:        blobs,
		},
		Bulk: &usecase.BulkIssuer{
			CertTemplates:  certTmplRepo,
			EmailTemplates: emailTmplRepo,
			SmtpProviders:  smtpRepo,
			Dispatcher:     queue.NewDispatcher(temporalClient, cfg.TaskQueue),
		},
		Certificates: &usecase.CertificateService{
			Certificates:   certRepo,
			CertTemplates:  certTmplRepo,
			EmailTemplates: emailTmplRepo,
		},
		Templates: &usecase.TemplateService{
			CertTemplates:  certTmplRepo,
			EmailTemplates: emailTmplRepo,
		},
		Smtp:          &usecase.SmtpService{Providers: smtpRepo},
		Users:         &usecase.UserService{Users: userRepo},
		Tokens:        tokens,
		Authenticator: &httpinfra.UserAuthenticator{Tokens: tokens, Users: userRepo},
		RateLimiter:   limiter,
		Logger:        zlog,
	})

	zlog.Info("certsd listening")
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
