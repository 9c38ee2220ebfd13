package http

import (
	"net/http"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"github.com/gin-gonic/gin"
)

type certificateResponse struct {
	UniqueID         string `json:"unique_id"`
	RecipientName    string `json:"recipient_name"`
	State            string `json:"state,omitempty"`
	EventType        string `json:"event_type,omitempty"`
	EventTitle       string `json:"event_title,omitempty"`
	IssueDate        string `json:"issue_date"`
	IssuerName       string `json:"issuer_name,omitempty"`
	OrgName          string `json:"org_name,omitempty"`
	Status           string `json:"status"`
	RevocationReason string `json:"revocation_reason,omitempty"`
	RevokedAt        string `json:"revoked_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func certificateToResponse(cert domain.Certificate) certificateResponse {
	resp := certificateResponse{
		UniqueID:      cert.UniqueID,
		RecipientName: cert.RecipientName,
		State:         cert.State,
		EventType:     cert.EventType,
		EventTitle:    cert.EventTitle,
		IssueDate:     cert.IssueDate.Format("2006-01-02"),
		IssuerName:    cert.IssuerName,
		OrgName:       cert.OrgName,
		Status:        string(cert.Status),
		CreatedAt:     cert.CreatedAt.UTC().Format(time.RFC3339),
	}
	if cert.Status == domain.CertificateRevoked {
		resp.RevocationReason = cert.RevocationReason
		if cert.RevokedAt != nil {
			resp.RevokedAt = cert.RevokedAt.UTC().Format(time.RFC3339)
		}
	}
	return resp
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handlePublicShow backs the validation page. Revoked certificates are shown
// with their revocation; unknown identifiers are a plain not-found.
func (s *Server) handlePublicShow(c *gin.Context) {
	cert, err := s.public.Show(c.Request.Context(), c.Param("unique_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, certificateToResponse(*cert))
}

func (s *Server) handlePublicDownload(c *gin.Context) {
	pdf, err := s.public.Download(c.Request.Context(), c.Param("unique_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="certificate.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// handleValidate is the query-parameter form of the validation lookup used
// by the scanner flow.
func (s *Server) handleValidate(c *gin.Context) {
	uniqueID := c.Query("unique_id")
	if uniqueID == "" {
		writeErrorCode(c, http.StatusBadRequest, "MISSING_UNIQUE_ID", "unique_id is required")
		return
	}
	cert, err := s.public.Show(c.Request.Context(), uniqueID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, certificateToResponse(*cert))
}

func (s *Server) handleNoRoute(c *gin.Context) {
	writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
}
