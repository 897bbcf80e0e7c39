package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"talentd/internal/api/middleware"
	"talentd/internal/auth"
	"talentd/internal/database"
)

const refreshTokenCookieName = "refresh_token"
const refreshTokenBlacklistKeyPrefix = "auth:refresh:blacklist:"
const loginRateLimitPerHour = 10

// AuthHandler serves register, login, refresh and logout.
type AuthHandler struct {
	db          *gorm.DB
	authService *auth.AuthService
	redis       redis.UniversalClient
	logger      *slog.Logger
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(db *gorm.DB, authService *auth.AuthService, redisClient redis.UniversalClient, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		db:          db,
		authService: authService,
		redis:       redisClient,
		logger:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))

	var existing database.User
	if err := h.db.WithContext(ctx).
		Where("username = ? OR email = ?", req.Username, req.Email).
		First(&existing).Error; err == nil {
		logger.Info("register conflict: user already exists")
		Conflict(c, "username or email already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("register lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	user := database.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.Status(http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IsAdmin     bool   `json:"is_admin"`
}

// Login checks credentials and returns a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))

	// Per IP+username, hourly window.
	rateKey := "rate:login:" + ip + ":" + strings.ToLower(req.Username) + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if count > loginRateLimitPerHour {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	var user database.User
	if err := h.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Info("login failed: user not found")
			Unauthorized(c)
			return
		}
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		Unauthorized(c)
		return
	}

	tokenPair, err := h.authService.GenerateTokenPair(user.ID, user.IsAdmin)
	if err != nil {
		logger.Error("generate token pair failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithTokenPair(c, tokenPair, user.IsAdmin)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh validates the refresh token, rotates it and issues a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := h.extractRefreshToken(c)
	if refreshToken == "" {
		Unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c)

	claims, err := h.authService.ValidateToken(refreshToken)
	if err != nil {
		logger.Info("refresh token invalid", slog.Any("error", err))
		Unauthorized(c)
		return
	}
	if claims.TokenType != "refresh" || claims.ID == "" {
		logger.Info("refresh token malformed", slog.String("token_type", claims.TokenType))
		Unauthorized(c)
		return
	}

	key := refreshTokenBlacklistKeyPrefix + claims.ID
	if err := h.redis.Get(ctx, key).Err(); err == nil {
		logger.Info("refresh token revoked", slog.String("jti", claims.ID))
		Unauthorized(c)
		return
	} else if !errors.Is(err, redis.Nil) {
		logger.Error("refresh token blacklist lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	var user database.User
	if err := h.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		logger.Info("refresh user not found", slog.Any("error", err))
		Unauthorized(c)
		return
	}

	tokenPair, err := h.authService.GenerateTokenPair(user.ID, user.IsAdmin)
	if err != nil {
		logger.Error("refresh generate token pair failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	// Rotate the old refresh token so it cannot be replayed.
	if err := h.revokeRefreshToken(ctx, key, claims.ExpiresAt); err != nil {
		logger.Error("refresh revoke old token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithTokenPair(c, tokenPair, user.IsAdmin)
}

// Logout blacklists the refresh token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken := h.extractRefreshToken(c)
	if refreshToken == "" {
		BadRequest(c, "refresh token missing")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c)

	claims, err := h.authService.ValidateToken(refreshToken)
	if err != nil {
		logger.Info("logout token invalid", slog.Any("error", err))
		Unauthorized(c)
		return
	}
	if claims.TokenType != "refresh" || claims.ID == "" {
		logger.Info("logout token malformed", slog.String("token_type", claims.TokenType))
		Unauthorized(c)
		return
	}

	key := refreshTokenBlacklistKeyPrefix + claims.ID
	if err := h.revokeRefreshToken(ctx, key, claims.ExpiresAt); err != nil {
		logger.Error("logout revoke token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     refreshTokenCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
	})
	c.Status(http.StatusOK)
}

func (h *AuthHandler) replyWithTokenPair(c *gin.Context, tokenPair auth.TokenPair, isAdmin bool) {
	h.setRefreshCookie(c, tokenPair.RefreshToken)
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: tokenPair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.authService.AccessTokenTTL().Seconds()),
		IsAdmin:     isAdmin,
	})
}

func (h *AuthHandler) extractRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshTokenCookieName); err == nil && token != "" {
		return token
	}

	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	maxAge := int(h.authService.RefreshTokenTTL().Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     refreshTokenCookieName,
		Value:    refreshToken,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
		Expires:  time.Now().Add(h.authService.RefreshTokenTTL()),
	})
}

func (h *AuthHandler) revokeRefreshToken(ctx context.Context, key string, expiresAt *jwt.NumericDate) error {
	var ttl time.Duration
	if expiresAt == nil {
		ttl = h.authService.RefreshTokenTTL()
	} else {
		ttl = time.Until(expiresAt.Time)
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return h.redis.Set(ctx, key, "revoked", ttl).Err()
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *AuthHandler) isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}
