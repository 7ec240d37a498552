package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/logging"
	"github.com/gymfitness/membership/internal/server/auth"
)

const (
	requestIDHeader = "X-Request-ID"

	loggerKey = "logger"
	claimsKey = "claims"
)

// requestID tags every request with an id and a child logger carrying it.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(loggerKey, s.logger.With("request_id", id))
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		s.metrics.observeRequest(c.Request.Method, route, status, elapsed)
		s.requestLogger(c).Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
}

// requireToken rejects requests without a valid bearer token and stores
// the token claims on the context.
func (s *HTTPServer) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.TokenType+" ")
		if !ok || strings.TrimSpace(token) == "" {
			respondMessage(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		claims, err := s.auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			respondMessage(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// rateLimit throttles a route per client IP.
func (s *HTTPServer) rateLimit(route string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		key := route + ":ip:" + c.ClientIP()
		d := s.limiter.Allow(c.Request.Context(), key, limit, window)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(limit-d.Count, 0)))
		if !d.Allowed {
			retry := int(time.Until(d.WindowEnd).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
			s.metrics.rateLimited(route)
			respondMessage(c, http.StatusTooManyRequests, msgTooMany)
			return
		}
		c.Next()
	}
}

func (s *HTTPServer) requestLogger(c *gin.Context) logging.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logging.Logger); ok {
			return l
		}
	}
	return s.logger
}

func claimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
