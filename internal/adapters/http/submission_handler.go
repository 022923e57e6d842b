package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/greenfund/core/internal/adapters/upload"
	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/ports"
)

// SubmissionHandler handles the KYC and contact forms
type SubmissionHandler struct {
	kycService     ports.KYCService
	contactService ports.ContactService
	uploader       upload.Uploader
	maxMemory      int64
	logger         *logger.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(kycService ports.KYCService, contactService ports.ContactService, uploader upload.Uploader, maxMemory int64, logger *logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		kycService:     kycService,
		contactService: contactService,
		uploader:       uploader,
		maxMemory:      maxMemory,
		logger:         logger,
	}
}

// SubmitKYC godoc
// @Summary Submit identity verification
// @Tags kyc
// @Accept mpfd
// @Produce json
// @Param aadhaarNumber formData string false "12 digit Aadhaar number"
// @Param fullName formData string false "Full name"
// @Param panNumber formData string false "10 character PAN"
// @Param aadhaarFront formData file false "Aadhaar front"
// @Param aadhaarBack formData file false "Aadhaar back"
// @Param panPhoto formData file false "PAN card photo"
// @Param selfie formData file false "Selfie"
// @Success 201 {object} ports.KYCResponse
// @Failure 400 {object} ports.MessageResponse
// @Router /kyc [post]
func (h *SubmissionHandler) SubmitKYC(c echo.Context) error {
	var req ports.KYCRequest
	mf, err := bindForm(c, &req, h.maxMemory)
	if err != nil {
		return err
	}
	if mf != nil {
		defer mf.RemoveAll()
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	saved := &savedUploads{uploader: h.uploader, logger: h.logger}
	req.Files = make(map[string]string)
	for _, field := range entities.KYCDocumentFields {
		fh := firstFile(mf, field)
		if fh == nil {
			continue
		}
		name, err := saved.save(ctx, fh)
		if err != nil {
			saved.discard(ctx)
			return err
		}
		req.Files[field] = name
	}

	record, err := h.kycService.Submit(ctx, req)
	if err != nil {
		saved.discard(ctx)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, ports.KYCResponse{Success: true, Status: record.Status})
}

// Contact godoc
// @Summary Leave a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ports.ContactRequest true "Message"
// @Success 201 {object} ports.SuccessResponse
// @Failure 400 {object} ports.MessageResponse
// @Router /contact [post]
func (h *SubmissionHandler) Contact(c echo.Context) error {
	var req ports.ContactRequest
	if _, err := bindForm(c, &req, h.maxMemory); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.contactService.Submit(c.Request().Context(), req); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, ports.SuccessResponse{Success: true})
}

// FileHandler serves stored uploads
type FileHandler struct {
	uploader upload.Uploader
	logger   *logger.Logger
}

// NewFileHandler creates a new upload file handler
func NewFileHandler(uploader upload.Uploader, logger *logger.Logger) *FileHandler {
	return &FileHandler{uploader: uploader, logger: logger}
}

func (h *FileHandler) Serve(c echo.Context) error {
	name := c.Param("file")

	rc, err := h.uploader.Open(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, upload.ErrNotFound) || errors.Is(err, upload.ErrInvalidName) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return err
	}
	defer rc.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = echo.MIMEOctetStream
	}

	c.Response().Header().Set(echo.HeaderContentType, ctype)
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response(), rc)
	return err
}
