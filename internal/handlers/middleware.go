package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"github.com/justsurfingit/habte-job-portal/internal/services"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	currentUserKey  = "current_user"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "http",
			slog.String("request_id", requestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes", c.Writer.Size()),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()),
		)
	}
}

// Recover turns panics into the standard 500 envelope.
func Recover(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error("panic",
			slog.String("request_id", requestID(c)),
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", rec),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	})
}

// AuthMiddleware resolves bearer tokens to users.
type AuthMiddleware struct {
	Users  *services.UserService
	Logger *slog.Logger
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Required rejects requests without a valid token.
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, m.Logger, apperr.Auth("Access denied. No token provided."))
			return
		}
		user, err := m.Users.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondError(c, m.Logger, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// Optional attaches the user when a valid token is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := m.Users.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.RequireRole(currentUser(c), role); err != nil {
			respondError(c, m.Logger, err)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// currentUserID is empty for anonymous requests.
func currentUserID(c *gin.Context) models.ID {
	if u := currentUser(c); u != nil {
		return u.ID
	}
	return ""
}

const maxTrackedClients = 10000

// ClientLimiter rate-limits per client IP.
type ClientLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewClientLimiter(perSecond float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(perSecond),
		b: burst,
	}
}

func (l *ClientLimiter) limiterFor(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.m[client]; ok {
		return lim
	}
	if len(l.m) >= maxTrackedClients {
		l.m = make(map[string]*rate.Limiter)
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.m[client] = lim
	return lim
}

func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
