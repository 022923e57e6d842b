package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/ports"
)

// AdminHandler handles the admin review and back-office requests
type AdminHandler struct {
	campaignService ports.CampaignService
	settingsService ports.SettingsService
	kycService      ports.KYCService
	contactService  ports.ContactService
	logger          *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(campaignService ports.CampaignService, settingsService ports.SettingsService, kycService ports.KYCService, contactService ports.ContactService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		campaignService: campaignService,
		settingsService: settingsService,
		kycService:      kycService,
		contactService:  contactService,
		logger:          logger,
	}
}

// ListCampaigns godoc
// @Summary List campaigns in every status
// @Tags admin
// @Produce json
// @Success 200 {array} entities.Campaign
// @Security BearerAuth
// @Router /admin/campaigns [get]
func (h *AdminHandler) ListCampaigns(c echo.Context) error {
	campaigns, err := h.campaignService.ListAllCampaigns(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, campaigns)
}

// ReviewCampaign godoc
// @Summary Approve or reject a campaign
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param request body ports.ReviewCampaignRequest true "Decision"
// @Success 200 {object} ports.ReviewCampaignResponse
// @Failure 400 {object} ports.MessageResponse
// @Failure 404 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /admin/campaigns/{id}/status [put]
func (h *AdminHandler) ReviewCampaign(c echo.Context) error {
	var req ports.ReviewCampaignRequest
	if _, err := bindForm(c, &req, 0); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.ReviewCampaign(c.Request().Context(), campaignIDParam(c), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.ReviewCampaignResponse{Success: true, Campaign: campaign})
}

// PendingCount godoc
// @Summary Number of campaigns awaiting review
// @Tags admin
// @Produce json
// @Success 200 {object} ports.PendingCountResponse
// @Security BearerAuth
// @Router /admin/pending-count [get]
func (h *AdminHandler) PendingCount(c echo.Context) error {
	n, err := h.campaignService.PendingCount(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.PendingCountResponse{PendingCount: n})
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update review settings
// @Description Fields left out keep their current value
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ports.UpdateSettingsRequest true "Settings"
// @Success 200 {object} entities.Settings
// @Security BearerAuth
// @Router /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req ports.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.settingsService.Update(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) ListKYC(c echo.Context) error {
	records, err := h.kycService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, records)
}

func (h *AdminHandler) ListMessages(c echo.Context) error {
	messages, err := h.contactService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, messages)
}
