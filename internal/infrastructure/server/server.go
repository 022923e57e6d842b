package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/greenfund/core/docs"
	httpHandlers "github.com/greenfund/core/internal/adapters/http"
	"github.com/greenfund/core/internal/adapters/repository"
	"github.com/greenfund/core/internal/adapters/upload"
	"github.com/greenfund/core/internal/application/services"
	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/config"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/infrastructure/metrics"
	"github.com/greenfund/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	store   *jsonstore.Store
	metrics *metrics.Metrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type handlers struct {
	auth       *httpHandlers.AuthHandler
	campaign   *httpHandlers.CampaignHandler
	admin      *httpHandlers.AdminHandler
	submission *httpHandlers.SubmissionHandler
	file       *httpHandlers.FileHandler
}

// New creates a new server instance
func New(cfg *config.Config, store *jsonstore.Store, uploader upload.Uploader, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	m := metrics.New()

	// Initialize repositories
	campaignRepo := repository.NewCampaignRepository(store)
	donationRepo := repository.NewDonationRepository(store)
	userRepo := repository.NewUserRepository(store)
	adminRepo := repository.NewAdminRepository(store)
	kycRepo := repository.NewKYCRepository(store)
	messageRepo := repository.NewMessageRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)

	// Initialize services
	authService := services.NewAuthService(userRepo, adminRepo, cfg.JWT, m, appLogger.WithComponent("auth"))
	campaignService := services.NewCampaignService(campaignRepo, m, appLogger.WithComponent("campaigns"))
	donationService := services.NewDonationService(donationRepo, campaignRepo, m, appLogger.WithComponent("donations"))
	kycService := services.NewKYCService(kycRepo, m, appLogger.WithComponent("kyc"))
	contactService := services.NewContactService(messageRepo, m, appLogger.WithComponent("contact"))
	settingsService := services.NewSettingsService(settingsRepo, appLogger.WithComponent("settings"))

	// Initialize handlers
	maxMemory := cfg.Upload.MaxMemory
	h := handlers{
		auth:       httpHandlers.NewAuthHandler(authService, appLogger),
		campaign:   httpHandlers.NewCampaignHandler(campaignService, donationService, uploader, maxMemory, appLogger),
		admin:      httpHandlers.NewAdminHandler(campaignService, settingsService, kycService, contactService, appLogger),
		submission: httpHandlers.NewSubmissionHandler(kycService, contactService, uploader, maxMemory, appLogger),
		file:       httpHandlers.NewFileHandler(uploader, appLogger),
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		store:   store,
		metrics: m,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(h, authService)

	// Serve the marketing site when its directory is present
	server.setupFrontend()

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers, authService ports.AuthService) {
	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded files
	s.echo.GET("/uploads/:file", h.file.Serve)

	api := s.echo.Group("/api")

	// Health check routes
	api.GET("/health", s.healthCheck)
	api.GET("/health/detailed", s.detailedHealthCheck)
	api.GET("/ready", s.readinessCheck)

	// Campaign routes (public)
	api.GET("/campaigns", h.campaign.ListCampaigns)
	api.POST("/campaigns", h.campaign.CreateCampaign)
	api.GET("/campaigns/:id", h.campaign.GetCampaign)
	api.POST("/campaigns/:id/donations", h.campaign.Donate)
	api.GET("/campaigns/:id/donations", h.campaign.ListDonations)

	// Auth routes (public)
	api.POST("/auth/register", h.auth.Register)
	api.POST("/auth/login", h.auth.Login)
	api.POST("/admin/login", h.auth.AdminLogin)

	// Forms (public)
	api.POST("/kyc", h.submission.SubmitKYC)
	api.POST("/contact", h.submission.Contact)

	// Admin routes
	var adminMiddleware []echo.MiddlewareFunc
	if s.config.Security.RequireAdminAuth {
		adminMiddleware = append(adminMiddleware, s.authMiddleware(authService), s.requireRole(entities.UserRoleAdmin))
	} else {
		s.logger.Warnw("Admin routes are not protected", "setting", "security.require_admin_auth")
	}

	adminGroup := api.Group("/admin", adminMiddleware...)
	adminGroup.GET("/campaigns", h.admin.ListCampaigns)
	adminGroup.PUT("/campaigns/:id/status", h.admin.ReviewCampaign)
	adminGroup.GET("/pending-count", h.admin.PendingCount)
	adminGroup.GET("/settings", h.admin.GetSettings)
	adminGroup.PUT("/settings", h.admin.UpdateSettings)
	adminGroup.GET("/kyc", h.admin.ListKYC)
	adminGroup.GET("/messages", h.admin.ListMessages)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metricsMiddleware())

	metricsHandler := promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

func (s *Server) setupFrontend() {
	dir := s.config.Storage.FrontendDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.logger.Infow("Frontend directory not found, static site disabled", "dir", dir)
		return
	}

	s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  dir,
		Index: "index.html",
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/uploads/")
		},
	}))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, ports.HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.store.HealthCheck(); err != nil {
		status = "error"
		checks["store"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		docs, err := s.store.Stats()
		if err != nil {
			status = "error"
			checks["store"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["store"] = map[string]interface{}{
				"status":    "ok",
				"dir":       s.store.Dir(),
				"documents": docs,
			}
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.HealthCheck(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "store_not_writable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops. A clean shutdown
// returns nil.
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as {"message": ...}
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  = http.StatusText(http.StatusInternalServerError)
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = ve.Error()
		}

		if code >= http.StatusInternalServerError {
			logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
				WithError(err).
				Errorw("Internal server error", "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, ports.MessageResponse{Message: msg})
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
