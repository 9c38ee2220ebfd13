package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/activities"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/config"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/db"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/mail"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/pdf"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/secrets"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/infra/storage"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/workflows"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/pkg/logger"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	cfg := config.FromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	healthSrv := startHealthServer(cfg.WorkerHealthAddr)
	defer func() {
		_ = healthSrv.Shutdown(context.Background())
	}()

	store, err := db.NewStore(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
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

	issuer := &usecase.RowIssuer{
		Certificates:   certRepo,
		CertTemplates:  certTmplRepo,
		EmailTemplates: emailTmplRepo,
		SmtpProviders:  smtpRepo,
		Renderer: &usecase.Renderer{
			Templates: certTmplRepo,
			Converter: pdf.NewConverter(cfg.WkhtmltopdfPath),
		},
		Store:  blobs,
		Mailer: mail.NewSender(),
		DefaultTransport: domain.MailTransport{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUsername,
			Password:    cfg.SMTPPassword,
			Encryption:  cfg.SMTPEncryption,
			FromAddress: cfg.SMTPFromAddress,
			FromName:    cfg.SMTPFromName,
		},
		Logger: zlog,
	}

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("failed to create temporal client: %v", err)
	}
	defer temporalClient.Close()

	acts := activities.New(issuer)
	w := worker.New(temporalClient, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.CertificateRowWorkflow)
	w.RegisterActivityWithOptions(acts.IssueCertificate, activity.RegisterOptions{
		Name: activities.IssueCertificateActivityName,
	})

	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	log.Printf("certificate worker listening on task queue %s", cfg.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker exited: %v", err)
	}
}

func startHealthServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("health server error: %v", err)
		}
	}()
	return srv
}
