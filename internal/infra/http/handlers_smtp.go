package http

import (
	"net/http"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"github.com/gin-gonic/gin"
)

type smtpProviderRequest struct {
	Name        string `json:"name"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Encryption  string `json:"encryption"`
	FromAddress string `json:"from_address"`
	FromName    string `json:"from_name"`
}

func (r smtpProviderRequest) toInput() usecase.SmtpProviderInput {
	return usecase.SmtpProviderInput{
		Name:        r.Name,
		Host:        r.Host,
		Port:        r.Port,
		Username:    r.Username,
		Password:    r.Password,
		Encryption:  r.Encryption,
		FromAddress: r.FromAddress,
		FromName:    r.FromName,
	}
}

// smtpProviderResponse never carries the password, not even masked.
type smtpProviderResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Encryption  string `json:"encryption"`
	FromAddress string `json:"from_address"`
	FromName    string `json:"from_name"`
}

func smtpProviderToHTTP(p domain.SmtpProvider) smtpProviderResponse {
	return smtpProviderResponse{
		ID:          p.ID,
		Name:        p.Name,
		Host:        p.Host,
		Port:        p.Port,
		Username:    p.Username,
		Encryption:  p.Encryption,
		FromAddress: p.FromAddress,
		FromName:    p.FromName,
	}
}

func (s *Server) handleListSmtpProviders(c *gin.Context) {
	providers, err := s.smtp.List(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]smtpProviderResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, smtpProviderToHTTP(p))
	}
	c.JSON(http.StatusOK, gin.H{"providers": out})
}

func (s *Server) handleCreateSmtpProvider(c *gin.Context) {
	var req smtpProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	provider, err := s.smtp.Create(c.Request.Context(), currentPrincipal(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, smtpProviderToHTTP(*provider))
}

func (s *Server) handleUpdateSmtpProvider(c *gin.Context) {
	var req smtpProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	provider, err := s.smtp.Update(c.Request.Context(), currentPrincipal(c), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, smtpProviderToHTTP(*provider))
}

func (s *Server) handleDeleteSmtpProvider(c *gin.Context) {
	if err := s.smtp.Delete(c.Request.Context(), currentPrincipal(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
