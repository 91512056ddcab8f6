package router

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/libas-next/internal/cache"
	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/repository"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const sessionIDKey = "session_id"
const userRoleKey = "user_role"

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			constants.SessionHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware tags every request with an id.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// SessionMiddleware resolves the storefront session identifier. A
// client without one gets a fresh id minted and echoed back so it can
// persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(constants.SessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set(sessionIDKey, sessionID)
		c.Writer.Header().Set(constants.SessionHeader, sessionID)
		c.Next()
	}
}

// LoggerMiddleware writes one structured log line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// UserJWTAuthMiddleware requires a valid user token. Token version and
// invalid-before are checked against the cached auth snapshot, falling
// back to the database.
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticateUser(c, secretKey, userRepo)
		if !ok {
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalUserAuthMiddleware resolves the user when a valid token is
// present and lets the request through as a guest otherwise.
func OptionalUserAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		claims, role, _, ok := resolveUserClaims(c, secretKey, userRepo)
		if ok {
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set(userRoleKey, role)
		}
		c.Next()
	}
}

// AdminAuthMiddleware requires a valid token carrying the admin role.
func AdminAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticateUser(c, secretKey, userRepo)
		if !ok {
			c.Abort()
			return
		}
		role := ""
		if value, exists := c.Get(userRoleKey); exists {
			if r, cast := value.(string); cast {
				role = r
			}
		}
		if role != constants.UserRoleAdmin {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

func authenticateUser(c *gin.Context, secretKey string, userRepo repository.UserRepository) (*service.UserJWTClaims, bool) {
	claims, role, reason, ok := resolveUserClaims(c, secretKey, userRepo)
	if !ok {
		response.Unauthorized(c, reason)
		return nil, false
	}
	c.Set(userRoleKey, role)
	return claims, true
}

// resolveUserClaims validates the bearer token without writing a reply,
// so optional auth can fall through silently on failure.
func resolveUserClaims(c *gin.Context, secretKey string, userRepo repository.UserRepository) (*service.UserJWTClaims, string, string, bool) {
	if secretKey == "" {
		return nil, "", "token signing key missing", false
	}
	if userRepo == nil {
		return nil, "", "invalid token", false
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "", "authorization header missing", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, "", "authorization header invalid", false
	}

	tokenString := parts[1]
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &service.UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, "", "invalid token", false
	}

	if cached, hit, cacheErr := cache.GetUserAuthState(c.Request.Context(), claims.UserID); cacheErr == nil && hit && cached != nil {
		if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
			return nil, "", "token revoked", false
		}
		return claims, cached.Role, "", true
	}

	user, err := userRepo.GetByID(claims.UserID)
	if err != nil || user == nil {
		return nil, "", "invalid token", false
	}
	if claims.TokenVersion != user.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, user.TokenInvalidBefore) {
		return nil, "", "token revoked", false
	}
	_ = cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user))

	return claims, user.Role, "", true
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}
