package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/blackjack/core"
	"github.com/layer-3/blackjack/service"
)

const credentialKey = "credential"

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if len(auth) < 8 || !strings.EqualFold(auth[:7], "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(auth[7:]), true
}

// AuthMiddleware validates the bearer token and stores the credential in the
// context. Handlers still check that it matches the address they act on.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, core.ErrInvalidToken)
			return
		}

		credential, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(credentialKey, credential)
		c.Next()
	}
}

// credentialFrom returns the credential set by AuthMiddleware
func credentialFrom(c *gin.Context) (*core.Credential, bool) {
	v, ok := c.Get(credentialKey)
	if !ok {
		return nil, false
	}
	credential, ok := v.(*core.Credential)
	return credential, ok
}
