package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrnhq/jrn/internal/config"
)

const (
	// AuthCookieName carries the session token between browser requests.
	AuthCookieName = "auth_token"
	sessionTTL     = 30 * 24 * time.Hour
)

// AuthHandler issues and clears session tokens. It only exists when the
// auth variant is enabled; the core API never depends on it.
type AuthHandler struct {
	cfg config.AuthConfig
	log zerolog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(cfg config.AuthConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, log: log}
}

// LoginInput DTO for the login request
type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// Login verifies the access password and issues a signed session token,
// both as an httpOnly cookie and in the response body for non-browser
// clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	if !h.passwordMatches(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"authenticated": true,
		"exp":           time.Now().Add(sessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to sign session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, token, int(sessionTTL.Seconds()), "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// passwordMatches checks the bcrypt hash when configured, otherwise falls
// back to a constant-time comparison against the plain password.
func (h *AuthHandler) passwordMatches(password string) bool {
	if h.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(password)) == nil
	}
	if h.cfg.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.cfg.Password), []byte(password)) == 1
}
