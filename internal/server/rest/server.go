// Package rest exposes the membership use cases over HTTP with gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/logging"
	"github.com/gymfitness/membership/internal/server/auth"
	"github.com/gymfitness/membership/internal/server/config"
	"github.com/gymfitness/membership/internal/server/models"
	"github.com/gymfitness/membership/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// AuthService is the subset of services.AuthService the handlers call.
type AuthService interface {
	SignUp(ctx context.Context, in services.SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*services.SignInResult, error)
	ChangePassword(ctx context.Context, email, newPassword string) error
	Cancel(ctx context.Context, email string) error
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type HTTPServer struct {
	address      string
	logger       logging.Logger
	auth         AuthService
	limiter      RateLimiter
	metrics      *Metrics
	signInLimit  int
	signInWindow time.Duration
	engine       *gin.Engine
}

// NewHTTPServer builds the router. A nil limiter falls back to the
// in-memory one.
func NewHTTPServer(cfg *config.Config, l logging.Logger, svc AuthService, limiter RateLimiter) *HTTPServer {
	if limiter == nil {
		limiter = NewMemoryRateLimiter()
	}
	s := &HTTPServer{
		address:      cfg.EndpointAddrHTTP,
		logger:       l.With("module", "http_server"),
		auth:         svc,
		limiter:      limiter,
		signInLimit:  cfg.SignInRateLimit,
		signInWindow: cfg.SignInRateWindow,
	}
	if cfg.MetricsEnabled {
		s.metrics = NewMetrics()
	}
	s.engine = s.routes(cfg.CORSAllowedOrigins)
	return s
}

func (s *HTTPServer) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeaderName}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api/auth")
	{
		api.POST("/signup", s.signUp)
		api.POST("/signin", s.rateLimit("signin", s.signInLimit, s.signInWindow), s.signIn)
		api.POST("/changepass", s.changePassword)
		api.POST("/cancel", s.cancel)
		api.GET("/me", s.requireToken(), s.me)
	}
	return r
}

// Handler returns the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the limiter.
func (s *HTTPServer) Close() {
	s.limiter.Close()
}
