package http

import (
	"net/http"
	"strconv"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleBulkIssue accepts a multipart form with a csv_file part plus the
// template and provider selections. The whole file is validated before any
// row is enqueued; a bad batch enqueues nothing.
func (s *Server) handleBulkIssue(c *gin.Context) {
	principal := currentPrincipal(c)
	if !domain.Can(principal.Role, domain.CapIssueCertificates) {
		writeError(c, domain.ErrForbidden)
		return
	}

	fileHeader, err := c.FormFile("csv_file")
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "MISSING_FILE", "csv_file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read csv_file")
		return
	}
	defer file.Close()

	input := usecase.BulkInput{
		UserID:                principal.UserID,
		IssuerName:            principal.Name,
		OrgName:               principal.OrgName,
		CertificateTemplateID: c.PostForm("certificate_template_id"),
		EmailTemplateID:       c.PostForm("email_template_id"),
		SmtpProviderID:        c.PostForm("smtp_provider_id"),
		CSV:                   file,
	}
	dispatched, err := s.bulk.Execute(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	s.logger.Info("bulk upload accepted",
		zap.String("user_id", principal.UserID),
		zap.Int("rows", dispatched))
	c.JSON(http.StatusAccepted, gin.H{"dispatched": dispatched})
}

func (s *Server) handleListCertificates(c *gin.Context) {
	principal := currentPrincipal(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	certs, err := s.certificates.List(c.Request.Context(), principal, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]certificateResponse, 0, len(certs))
	for _, cert := range certs {
		out = append(out, certificateToResponse(cert))
	}
	c.JSON(http.StatusOK, gin.H{"certificates": out})
}

type revokeRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleRevokeCertificate(c *gin.Context) {
	principal := currentPrincipal(c)
	var req revokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	uniqueID := c.Param("unique_id")
	if err := s.certificates.Revoke(c.Request.Context(), principal, uniqueID, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	s.logger.Info("certificate revoked",
		zap.String("unique_id", uniqueID),
		zap.String("user_id", principal.UserID))
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

func (s *Server) handleDashboardStats(c *gin.Context) {
	principal := currentPrincipal(c)
	stats, err := s.certificates.Stats(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_certificates":    stats.TotalCertificates,
		"active_certificates":   stats.ActiveCertificates,
		"revoked_certificates":  stats.RevokedCertificates,
		"emails_sent":           stats.EmailsSent,
		"certificate_templates": stats.CertificateTemplates,
		"email_templates":       stats.EmailTemplates,
	})
}
