package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"github.com/gin-gonic/gin"
)

const principalContextKey = "principal"

// TokenSigner mints and verifies opaque bearer tokens of the form
// base64(user_id) + "." + base64(hmac). Tokens carry no claims; the user
// record is loaded on every request so status changes apply immediately.
type TokenSigner struct {
	secret []byte
}

func NewTokenSigner(secret string) (*TokenSigner, error) {
	if len(secret) < 32 {
		return nil, errors.New("auth token secret must be at least 32 bytes")
	}
	return &TokenSigner{secret: []byte(secret)}, nil
}

func (t *TokenSigner) Sign(userID string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(userID))
	return base64.RawURLEncoding.EncodeToString([]byte(userID)) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (t *TokenSigner) Verify(token string) (string, error) {
	idPart, macPart, ok := strings.Cut(token, ".")
	if !ok {
		return "", domain.ErrUnauthorized
	}
	userID, err := base64.RawURLEncoding.DecodeString(idPart)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	got, err := base64.RawURLEncoding.DecodeString(macPart)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	mac := hmac.New(sha256.New, t.secret)
	mac.Write(userID)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return "", domain.ErrUnauthorized
	}
	return string(userID), nil
}

// UserAuthenticator resolves bearer tokens to live principals. Suspended and
// terminated accounts fail authentication even with a valid token.
type UserAuthenticator struct {
	Tokens *TokenSigner
	Users  usecase.UserRepository
}

func (a *UserAuthenticator) Authenticate(ctx context.Context, bearerToken string) (domain.Principal, error) {
	userID, err := a.Tokens.Verify(bearerToken)
	if err != nil {
		return domain.Principal{}, err
	}
	user, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	if !user.Active() {
		return domain.Principal{}, domain.ErrAccountInactive
	}
	return domain.Principal{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		OrgName: user.OrgName,
		Role:    user.Role,
		Status:  user.Status,
	}, nil
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			writeErrorCode(c, 401, "UNAUTHORIZED", "missing bearer token")
			return
		}
		principal, err := s.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) domain.Principal {
	value, _ := c.Get(principalContextKey)
	principal, _ := value.(domain.Principal)
	return principal
}

func extractBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
