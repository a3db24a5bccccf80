package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rufoabrahamguyo/king-taper/internal/config"
	"github.com/rufoabrahamguyo/king-taper/internal/httpresp"
	"github.com/rufoabrahamguyo/king-taper/internal/middleware"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type LoginRequest struct {
	User string `json:"user" binding:"required"`
	Pass string `json:"pass" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing credentials"})
		return
	}

	if req.User != h.config.AdminUser ||
		bcrypt.CompareHashAndPassword([]byte(h.config.AdminPassHash), []byte(req.Pass)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}

	token, err := h.generateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Login failed"})
		return
	}

	h.setSessionCookie(c, token, int(sessionTTL.Seconds()))
	httpresp.OK(c, gin.H{})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	httpresp.OK(c, gin.H{})
}

func (h *AuthHandler) Check(c *gin.Context) {
	loggedIn := middleware.ValidSession(h.config, middleware.SessionToken(c))
	c.JSON(http.StatusOK, gin.H{"loggedIn": loggedIn})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	// Cross-site cookies need SameSite=None in production, where the
	// frontend may live on another origin behind TLS.
	if h.config.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.config.IsProduction(), true)
}

func (h *AuthHandler) generateToken() (string, error) {
	claims := jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(sessionTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.SessionSecret))
}
