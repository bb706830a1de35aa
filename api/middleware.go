package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	callerKey       = "caller"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// authenticate resolves the Authorization header into a caller. Requests
// without credentials continue as anonymous; bad credentials stop here.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(callerKey, auth.Caller{})
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || token == "" || !(strings.EqualFold(scheme, "Bearer") || strings.EqualFold(scheme, "Token")) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token header."})
			return
		}

		caller, err := s.services.Accounts.Identify(c.Request.Context(), token)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// throttle applies per-minute quotas: anonymous callers by client IP,
// users by id. Limiter failures let the request through.
func (s *Server) throttle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}

		caller := callerFrom(c)
		key, limit := "anon:"+c.ClientIP(), s.config.Throttle.AnonPerMinute
		if caller.Authenticated() {
			key, limit = fmt.Sprintf("user:%d", caller.UserID), s.config.Throttle.UserPerMinute
		}
		if limit <= 0 {
			c.Next()
			return
		}

		allowed, err := s.limiter.Allow(c.Request.Context(), key, limit, time.Minute)
		if err != nil {
			s.logger.Warn("Throttle check failed, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Request was throttled."})
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) auth.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(auth.Caller); ok {
			return caller
		}
	}
	return auth.Caller{}
}
