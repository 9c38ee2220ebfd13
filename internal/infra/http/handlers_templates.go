package http

import (
	"net/http"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"github.com/gin-gonic/gin"
)

type certTemplateRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	IsGlobal bool   `json:"is_global"`
}

type certTemplateResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Content            string `json:"content"`
	Type               string `json:"type"`
	IsGlobal           bool   `json:"is_global"`
	OriginalTemplateID string `json:"original_template_id,omitempty"`
	UpdatedAt          string `json:"updated_at"`
}

func certTemplateToHTTP(t domain.CertificateTemplate) certTemplateResponse {
	return certTemplateResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Content:            t.Content,
		Type:               string(t.Type),
		IsGlobal:           t.IsGlobal,
		OriginalTemplateID: t.OriginalTemplateID,
		UpdatedAt:          t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleListCertTemplates(c *gin.Context) {
	owned, global, err := s.templates.ListCertificateTemplates(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ownedOut := make([]certTemplateResponse, 0, len(owned))
	for _, t := range owned {
		ownedOut = append(ownedOut, certTemplateToHTTP(t))
	}
	globalOut := make([]certTemplateResponse, 0, len(global))
	for _, t := range global {
		globalOut = append(globalOut, certTemplateToHTTP(t))
	}
	c.JSON(http.StatusOK, gin.H{"owned": ownedOut, "global": globalOut})
}

func (s *Server) handleCreateCertTemplate(c *gin.Context) {
	var req certTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	tmpl, err := s.templates.CreateCertificateTemplate(c.Request.Context(), currentPrincipal(c),
		req.Name, req.Content, domain.TemplateType(req.Type), req.IsGlobal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, certTemplateToHTTP(*tmpl))
}

func (s *Server) handleUpdateCertTemplate(c *gin.Context) {
	var req certTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	tmpl, err := s.templates.UpdateCertificateTemplate(c.Request.Context(), currentPrincipal(c),
		c.Param("id"), req.Name, req.Content, domain.TemplateType(req.Type))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, certTemplateToHTTP(*tmpl))
}

func (s *Server) handleDeleteCertTemplate(c *gin.Context) {
	if err := s.templates.DeleteCertificateTemplate(c.Request.Context(), currentPrincipal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCloneCertTemplate(c *gin.Context) {
	tmpl, err := s.templates.CloneCertificateTemplate(c.Request.Context(), currentPrincipal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, certTemplateToHTTP(*tmpl))
}

func (s *Server) handleResetCertTemplate(c *gin.Context) {
	tmpl, err := s.templates.ResetCertificateTemplate(c.Request.Context(), currentPrincipal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, certTemplateToHTTP(*tmpl))
}

type previewRequest struct {
	Content string `json:"content"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) handleCertTemplatePreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": s.templates.CertificatePreview(req.Content)})
}

func (s *Server) handleEmailTemplatePreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	subject, body := s.templates.EmailPreview(req.Subject, req.Body)
	c.JSON(http.StatusOK, gin.H{"subject": subject, "body": body})
}

type emailTemplateRequest struct {
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	IsGlobal bool   `json:"is_global"`
}

type emailTemplateResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Subject            string `json:"subject"`
	Body               string `json:"body"`
	IsGlobal           bool   `json:"is_global"`
	OriginalTemplateID string `json:"original_template_id,omitempty"`
	UpdatedAt          string `json:"updated_at"`
}

func emailTemplateToHTTP(t domain.EmailTemplate) emailTemplateResponse {
	return emailTemplateResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Subject:            t.Subject,
		Body:               t.Body,
		IsGlobal:           t.IsGlobal,
		OriginalTemplateID: t.OriginalTemplateID,
		UpdatedAt:          t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleListEmailTemplates(c *gin.Context) {
	owned, global, err := s.templates.ListEmailTemplates(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ownedOut := make([]emailTemplateResponse, 0, len(owned))
	for _, t := range owned {
		ownedOut = append(ownedOut, emailTemplateToHTTP(t))
	}
	globalOut := make([]emailTemplateResponse, 0, len(global))
	for _, t := range global {
		globalOut = append(globalOut, emailTemplateToHTTP(t))
	}
	c.JSON(http.StatusOK, gin.H{"owned": ownedOut, "global": globalOut})
}

func (s *Server) handleCreateEmailTemplate(c *gin.Context) {
	var req emailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	tmpl, err := s.templates.CreateEmailTemplate(c.Request.Context(), currentPrincipal(c),
		req.Name, req.Subject, req.Body, req.IsGlobal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emailTemplateToHTTP(*tmpl))
}

func (s *Server) handleUpdateEmailTemplate(c *gin.Context) {
	var req emailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	tmpl, err := s.templates.UpdateEmailTemplate(c.Request.Context(), currentPrincipal(c),
		c.Param("id"), req.Name, req.Subject, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emailTemplateToHTTP(*tmpl))
}

func (s *Server) handleDeleteEmailTemplate(c *gin.Context) {
	if err := s.templates.DeleteEmailTemplate(c.Request.Context(), currentPrincipal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCloneEmailTemplate(c *gin.Context) {
	tmpl, err := s.templates.CloneEmailTemplate(c.Request.Context(), currentPrincipal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emailTemplateToHTTP(*tmpl))
}

func (s *Server) handleResetEmailTemplate(c *gin.Context) {
	tmpl, err := s.templates.ResetEmailTemplate(c.Request.Context(), currentPrincipal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emailTemplateToHTTP(*tmpl))
}
