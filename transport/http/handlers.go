package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/blackjack/core"
	"github.com/layer-3/blackjack/service"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// GameHandlers contains HTTP handlers for the game and auth endpoints
type GameHandlers struct {
	authService *service.AuthService
	gameService *service.GameService
	checks      []HealthCheck
}

// NewGameHandlers creates new game handlers
func NewGameHandlers(authService *service.AuthService, gameService *service.GameService, checks ...HealthCheck) *GameHandlers {
	return &GameHandlers{
		authService: authService,
		gameService: gameService,
		checks:      checks,
	}
}

type actionRequest struct {
	Action    string `json:"action"`
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type addressQuery struct {
	Address string `form:"address" binding:"required"`
}

// Status deals a fresh round and returns its view
func (h *GameHandlers) Status(c *gin.Context) {
	var q addressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, core.ErrInvalidAddress)
		return
	}

	view, err := h.gameService.Status(c.Request.Context(), q.Address)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Action dispatches the single-endpoint protocol: authenticate, hit or stand
func (h *GameHandlers) Action(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, core.ErrInvalidRequest)
		return
	}

	action, err := core.ParseAction(req.Action)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !action.RequiresCredential() {
		h.authenticate(c, req)
		return
	}

	if _, err := core.CanonicalAddress(req.Address); err != nil {
		abortWithError(c, err)
		return
	}

	token, _ := bearerToken(c)
	if _, err := h.authService.Authorize(c.Request.Context(), token, req.Address); err != nil {
		abortWithError(c, err)
		return
	}

	view, err := h.gameService.Apply(c.Request.Context(), action, req.Address)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Authenticate exchanges a wallet signature for a bearer token
func (h *GameHandlers) Authenticate(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, core.ErrInvalidRequest)
		return
	}
	h.authenticate(c, req)
}

func (h *GameHandlers) authenticate(c *gin.Context, req actionRequest) {
	token, _, err := h.authService.Authenticate(c.Request.Context(), req.Address, req.Message, req.Signature)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "auth success",
		"jsonwebtoken": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.authService.TokenTTL().Seconds()),
	})
}

// Hit draws a card for the authenticated player
func (h *GameHandlers) Hit(c *gin.Context) {
	h.play(c, core.ActionHit)
}

// Stand settles the authenticated player's round
func (h *GameHandlers) Stand(c *gin.Context) {
	h.play(c, core.ActionStand)
}

// play acts on the credential's address. A body address, when present, must
// match it.
func (h *GameHandlers) play(c *gin.Context, action core.Action) {
	credential, ok := credentialFrom(c)
	if !ok {
		abortWithError(c, core.ErrInvalidToken)
		return
	}

	// the body is optional
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, core.ErrInvalidRequest)
		return
	}
	if req.Address != "" && !strings.EqualFold(strings.TrimSpace(req.Address), credential.Address) {
		abortWithError(c, core.ErrAddressMismatch)
		return
	}

	view, err := h.gameService.Apply(c.Request.Context(), action, credential.Address)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Stats returns the player's win/loss counters
func (h *GameHandlers) Stats(c *gin.Context) {
	var q addressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, core.ErrInvalidAddress)
		return
	}

	stats, err := h.gameService.Stats(c.Request.Context(), q.Address)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":  stats.Address,
		"wins":     stats.Wins,
		"losses":   stats.Losses,
		"draws":    stats.Draws,
		"rounds":   stats.Rounds(),
		"win_rate": stats.WinRate(),
	})
}

// Health runs the configured dependency checks
func (h *GameHandlers) Health(c *gin.Context) {
	for _, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
