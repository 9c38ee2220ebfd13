// Package http exposes the public verification endpoints and the
// authenticated management API.
package http

import (
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/config"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.Config
	r      *gin.Engine
	logger *zap.Logger

	public       *usecase.PublicService
	bulk         *usecase.BulkIssuer
	certificates *usecase.CertificateService
	templates    *usecase.TemplateService
	smtp         *usecase.SmtpService
	users        *usecase.UserService

	tokens        *TokenSigner
	authenticator domain.Authenticator

	rateLimiter         domain.RateLimiter
	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool
}

type ServerDeps struct {
	Public       *usecase.PublicService
	Bulk         *usecase.BulkIssuer
	Certificates *usecase.CertificateService
	Templates    *usecase.TemplateService
	Smtp         *usecase.SmtpService
	Users        *usecase.UserService

	Tokens        *TokenSigner
	Authenticator domain.Authenticator
	RateLimiter   domain.RateLimiter
	Logger        *zap.Logger
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:                 cfg,
		r:                   r,
		logger:              logger,
		public:              deps.Public,
		bulk:                deps.Bulk,
		certificates:        deps.Certificates,
		templates:           deps.Templates,
		smtp:                deps.Smtp,
		users:               deps.Users,
		tokens:              deps.Tokens,
		authenticator:       deps.Authenticator,
		rateLimiter:         deps.RateLimiter,
		rateLimitRequests:   cfg.RateLimitRequests,
		rateLimitWindow:     cfg.RateLimitWindow(),
		rateLimitFailClosed: cfg.RateLimitFailClosed,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/healthz", s.handleHealthz)

	// Public certificate surface, throttled per client IP.
	public := s.r.Group("/")
	public.Use(s.rateLimitMiddleware())
	{
		public.GET("/c/:unique_id", s.handlePublicShow)
		public.GET("/c/:unique_id/download", s.handlePublicDownload)
		public.GET("/v1/validate", s.handleValidate)
		public.POST("/v1/preview/certificate", s.handleCertTemplatePreview)
		public.POST("/v1/preview/email", s.handleEmailTemplatePreview)
	}

	s.r.POST("/v1/auth/login", s.handleLogin)

	v1 := s.r.Group("/v1")
	v1.Use(s.requireAuth())
	{
		v1.GET("/me", s.handleMe)
		v1.PUT("/me/org-name", s.handleSetOrgName)

		v1.POST("/certificates/bulk", s.handleBulkIssue)
		v1.GET("/certificates", s.handleListCertificates)
		v1.POST("/certificates/:unique_id/revoke", s.handleRevokeCertificate)
		v1.GET("/dashboard/stats", s.handleDashboardStats)

		v1.GET("/templates/certificate", s.handleListCertTemplates)
		v1.POST("/templates/certificate", s.handleCreateCertTemplate)
		v1.PUT("/templates/certificate/:id", s.handleUpdateCertTemplate)
		v1.DELETE("/templates/certificate/:id", s.handleDeleteCertTemplate)
		v1.POST("/templates/certificate/:id/clone", s.handleCloneCertTemplate)
		v1.POST("/templates/certificate/:id/reset", s.handleResetCertTemplate)
		v1.POST("/templates/certificate/preview", s.handleCertTemplatePreview)

		v1.GET("/templates/email", s.handleListEmailTemplates)
		v1.POST("/templates/email", s.handleCreateEmailTemplate)
		v1.PUT("/templates/email/:id", s.handleUpdateEmailTemplate)
		v1.DELETE("/templates/email/:id", s.handleDeleteEmailTemplate)
		v1.POST("/templates/email/:id/clone", s.handleCloneEmailTemplate)
		v1.POST("/templates/email/:id/reset", s.handleResetEmailTemplate)
		v1.POST("/templates/email/preview", s.handleEmailTemplatePreview)

		v1.GET("/smtp-providers", s.handleListSmtpProviders)
		v1.POST("/smtp-providers", s.handleCreateSmtpProvider)
		v1.PUT("/smtp-providers/:id", s.handleUpdateSmtpProvider)
		v1.DELETE("/smtp-providers/:id", s.handleDeleteSmtpProvider)

		v1.GET("/admin/users", s.handleListUsers)
		v1.POST("/admin/users", s.handleCreateUser)
		v1.PATCH("/admin/users/:id/status", s.handleUpdateUserStatus)
	}

	s.r.NoRoute(s.handleNoRoute)
}

func (s *Server) Handler() *gin.Engine { return s.r }

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}
