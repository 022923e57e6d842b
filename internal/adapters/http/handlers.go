package http

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/labstack/echo/v4"

	"github.com/greenfund/core/internal/adapters/upload"
	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/ports"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		v, ok := ports.ParseLeadingInt(vals[0])
		return ports.FlexibleInt{Value: v, Valid: ok}, nil
	}, ports.FlexibleInt{})
	return d
}

// AuthHandler handles member and admin authentication requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a member account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.RegisterRequest true "Account details"
// @Success 201 {object} ports.RegisterResponse
// @Failure 400 {object} ports.MessageResponse
// @Failure 409 {object} ports.MessageResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if _, err := bindForm(c, &req, 0); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Member login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.LoginResponse
// @Failure 401 {object} ports.MessageResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if _, err := bindForm(c, &req, 0); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// AdminLogin godoc
// @Summary Admin login with username, password and access code
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ports.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} ports.LoginResponse
// @Failure 401 {object} ports.MessageResponse
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req ports.AdminLoginRequest
	if _, err := bindForm(c, &req, 0); err != nil {
		return err
	}

	resp, err := h.authService.AdminLogin(c.Request().Context(), req)
	if err != nil {
		if entities.KindOf(err) == entities.KindUnauthorized {
			h.logger.LogSecurityEvent("admin_login_rejected", req.Username, c.RealIP(), nil)
		}
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Utility functions

// httpError maps domain errors to HTTP errors. Anything else is returned as
// is and rendered as a 500 by the server's error handler.
func httpError(err error) error {
	var de *entities.Error
	if !errors.As(err, &de) {
		return err
	}

	switch de.Kind {
	case entities.KindValidation:
		return echo.NewHTTPError(http.StatusBadRequest, de.Message)
	case entities.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, de.Message)
	case entities.KindConflict:
		return echo.NewHTTPError(http.StatusConflict, de.Message)
	case entities.KindUnauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, de.Message)
	default:
		return err
	}
}

// bindForm fills dst from a multipart, urlencoded or JSON body. For multipart
// requests the parsed form is returned so the caller can read its files.
func bindForm(c echo.Context, dst interface{}, maxMemory int64) (*multipart.Form, error) {
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		if maxMemory <= 0 {
			maxMemory = 32 << 20
		}
		if err := req.ParseMultipartForm(maxMemory); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
		}
		if err := formDecoder.Decode(dst, req.MultipartForm.Value); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
		return req.MultipartForm, nil

	case strings.HasPrefix(ctype, echo.MIMEApplicationForm):
		if err := req.ParseForm(); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
		if err := formDecoder.Decode(dst, req.PostForm); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
		return nil, nil
	}

	if req.ContentLength == 0 {
		return nil, nil
	}
	if err := c.Bind(dst); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return nil, nil
}

// campaignIDParam reads the :id path parameter. Ids start at 1, so an
// unparseable id maps to 0, which matches no campaign.
func campaignIDParam(c echo.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}

func firstFile(mf *multipart.Form, field string) *multipart.FileHeader {
	if mf == nil {
		return nil
	}
	if files := mf.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// savedUploads tracks files stored while handling one request so they can be
// removed when the record referencing them is never written.
type savedUploads struct {
	uploader upload.Uploader
	logger   *logger.Logger
	names    []string
}

func (s *savedUploads) save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name, err := s.uploader.Save(ctx, fh)
	if err != nil {
		return "", err
	}
	s.names = append(s.names, name)
	return name, nil
}

func (s *savedUploads) discard(ctx context.Context) {
	if len(s.names) == 0 {
		return
	}
	// The request may already be cancelled; cleanup still has to run
	upload.RemoveAll(context.WithoutCancel(ctx), s.uploader, s.names, s.logger)
	s.names = nil
}
