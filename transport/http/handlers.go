package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/ordauth"
	"github.com/layer-3/ordauth/core"
	"github.com/layer-3/ordauth/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Challenge handles the challenge request
func (h *AuthHandlers) Challenge(c *gin.Context) {
	challenge, token, err := h.authService.CreateChallenge(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ordauth.ChallengeResponse{
		Challenge:      challenge.Value,
		ChallengeToken: token,
		IssuedAt:       challenge.IssuedAt,
		ExpiresAt:      challenge.ExpiresAt,
	})
}

// Login handles the login request
func (h *AuthHandlers) Login(c *gin.Context) {
	var req ordauth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.ChallengeToken, req.Address, req.Signature)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ordauth.LoginResponse{
		SessionToken: session.Token,
		Address:      session.Address,
		ExpiresAt:    session.ExpiresAt,
	})
}

// Logout handles session logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req ordauth.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.SessionToken); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns information about the authenticated wallet
func (h *AuthHandlers) Me(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		abortWithError(c, core.ErrSessionNotFound)
		return
	}

	c.JSON(http.StatusOK, ordauth.MeResponse{
		Address:   session.Address,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	})
}

// Authorize checks if a wallet is authorized
func (h *AuthHandlers) Authorize(c *gin.Context) {
	// Reaching this handler means the middleware accepted the session
	session, ok := sessionFrom(c)
	if !ok {
		abortWithError(c, core.ErrSessionNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"address":    session.Address,
	})
}

// Health reports that the process is serving
func (h *AuthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
