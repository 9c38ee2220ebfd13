package http

import (
	"net/http"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	OrgName           string `json:"org_name,omitempty"`
	Role              string `json:"role"`
	Status            string `json:"status"`
	TerminationReason string `json:"termination_reason,omitempty"`
	CreatedAt         string `json:"created_at"`
}

func userToHTTP(u domain.User) userResponse {
	return userResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		OrgName:           u.OrgName,
		Role:              string(u.Role),
		Status:            string(u.Status),
		TerminationReason: u.TerminationReason,
		CreatedAt:         u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": s.tokens.Sign(user.ID),
		"user":  userToHTTP(*user),
	})
}

func (s *Server) handleMe(c *gin.Context) {
	p := currentPrincipal(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       p.UserID,
		"name":     p.Name,
		"email":    p.Email,
		"org_name": p.OrgName,
		"role":     string(p.Role),
		"status":   string(p.Status),
	})
}

type orgNameRequest struct {
	OrgName string `json:"org_name"`
}

func (s *Server) handleSetOrgName(c *gin.Context) {
	var req orgNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if err := s.users.SetOrgName(c.Request.Context(), currentPrincipal(c).UserID, req.OrgName); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"org_name": req.OrgName})
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToHTTP(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	user, err := s.users.Create(c.Request.Context(), currentPrincipal(c), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToHTTP(*user))
}

type updateUserStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (s *Server) handleUpdateUserStatus(c *gin.Context) {
	var req updateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	err := s.users.UpdateStatus(c.Request.Context(), currentPrincipal(c),
		c.Param("id"), domain.UserStatus(req.Status), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
