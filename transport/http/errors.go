package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/blackjack/core"
)

// errorStatus maps a service error to a status code and a client-safe message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidAddress):
		return http.StatusBadRequest, "invalid address"
	case errors.Is(err, core.ErrInvalidAction):
		return http.StatusBadRequest, "invalid action"
	case errors.Is(err, core.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, core.ErrInvalidSignature):
		return http.StatusUnauthorized, "invalid signature"
	case errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrTokenExpired),
		errors.Is(err, core.ErrAddressMismatch):
		// clients are not told why a credential was refused
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, core.ErrNoActiveRound):
		return http.StatusConflict, "no active round"
	case errors.Is(err, core.ErrRoundResolved):
		return http.StatusConflict, "round already resolved"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
