package http

import (
	"errors"
	"net/http"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrTemplateNotFound):
		status, code = http.StatusNotFound, "TEMPLATE_NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyRevoked):
		status, code = http.StatusConflict, "ALREADY_REVOKED"
	case errors.Is(err, domain.ErrNotCloned):
		status, code = http.StatusUnprocessableEntity, "NOT_CLONED"
	case errors.Is(err, domain.ErrOriginalGone):
		status, code = http.StatusConflict, "ORIGINAL_GONE"
	case errors.Is(err, domain.ErrOrgNameSet):
		status, code = http.StatusConflict, "ORG_NAME_SET"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		status, code = http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, domain.ErrAccountInactive):
		status, code = http.StatusForbidden, "ACCOUNT_INACTIVE"
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	}
	writeErrorCode(c, status, code, err.Error())
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: message})
}
