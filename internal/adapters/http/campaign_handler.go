package http

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenfund/core/internal/adapters/upload"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/ports"
)

// Multipart fields carrying campaign images
const (
	campaignImageField    = "campaignImage"
	additionalImagesField = "additionalImages"
	maxAdditionalImages   = 5
)

// CampaignHandler handles public campaign and donation requests
type CampaignHandler struct {
	campaignService ports.CampaignService
	donationService ports.DonationService
	uploader        upload.Uploader
	maxMemory       int64
	logger          *logger.Logger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService ports.CampaignService, donationService ports.DonationService, uploader upload.Uploader, maxMemory int64, logger *logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		donationService: donationService,
		uploader:        uploader,
		maxMemory:       maxMemory,
		logger:          logger,
	}
}

// ListCampaigns godoc
// @Summary List campaigns
// @Description Without a status filter only approved campaigns are returned
// @Tags campaigns
// @Produce json
// @Param status query string false "Campaign status"
// @Success 200 {array} entities.Campaign
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c echo.Context) error {
	campaigns, err := h.campaignService.ListCampaigns(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, campaigns)
}

// GetCampaign godoc
// @Summary Get campaign by ID
// @Tags campaigns
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} entities.Campaign
// @Failure 404 {object} ports.MessageResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c echo.Context) error {
	campaign, err := h.campaignService.GetCampaign(c.Request().Context(), campaignIDParam(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, campaign)
}

// CreateCampaign godoc
// @Summary Submit a campaign for review
// @Description Multipart form; campaignImage and up to five additionalImages may be attached
// @Tags campaigns
// @Accept mpfd
// @Produce json
// @Param campaignTitle formData string false "Title"
// @Param fundingGoal formData string false "Funding goal"
// @Param campaignDuration formData string false "Duration in days"
// @Param campaignImage formData file false "Cover image"
// @Success 201 {object} entities.Campaign
// @Failure 400 {object} ports.MessageResponse
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c echo.Context) error {
	var req ports.CreateCampaignRequest
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

	var additional []*multipart.FileHeader
	if mf != nil {
		additional = mf.File[additionalImagesField]
	}
	if len(additional) > maxAdditionalImages {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("At most %d additional images are allowed", maxAdditionalImages))
	}

	ctx := c.Request().Context()
	saved := &savedUploads{uploader: h.uploader, logger: h.logger}

	if fh := firstFile(mf, campaignImageField); fh != nil {
		name, err := saved.save(ctx, fh)
		if err != nil {
			saved.discard(ctx)
			return err
		}
		req.UploadedImage = upload.URL(name)
	}

	for _, fh := range additional {
		name, err := saved.save(ctx, fh)
		if err != nil {
			saved.discard(ctx)
			return err
		}
		req.AdditionalImages = append(req.AdditionalImages, upload.URL(name))
	}

	campaign, err := h.campaignService.CreateCampaign(ctx, req)
	if err != nil {
		saved.discard(ctx)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, campaign)
}

// Donate godoc
// @Summary Donate to a campaign
// @Description Amount may be a number or a numeric string
// @Tags donations
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param request body ports.DonationRequest true "Donation"
// @Success 201 {object} ports.DonationResult
// @Failure 400 {object} ports.MessageResponse
// @Failure 404 {object} ports.MessageResponse
// @Router /campaigns/{id}/donations [post]
func (h *CampaignHandler) Donate(c echo.Context) error {
	var req ports.DonationRequest
	if _, err := bindForm(c, &req, h.maxMemory); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.donationService.Donate(c.Request().Context(), campaignIDParam(c), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, result)
}

// ListDonations godoc
// @Summary List a campaign's donations
// @Tags donations
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {array} entities.Donation
// @Failure 404 {object} ports.MessageResponse
// @Router /campaigns/{id}/donations [get]
func (h *CampaignHandler) ListDonations(c echo.Context) error {
	donations, err := h.donationService.ListCampaignDonations(c.Request().Context(), campaignIDParam(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, donations)
}
