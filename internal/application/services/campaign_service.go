package services

import (
	"context"
	"fmt"
	"time"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/infrastructure/metrics"
	"github.com/greenfund/core/internal/ports"
)

// CampaignService handles campaign-related operations
type CampaignService struct {
	campaignRepo ports.CampaignRepository
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

// NewCampaignService creates a new campaign service
func NewCampaignService(campaignRepo ports.CampaignRepository, m *metrics.Metrics, logger *logger.Logger) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		metrics:      m,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ListCampaigns returns campaigns with the given status, or only approved
// campaigns when status is empty.
func (s *CampaignService) ListCampaigns(ctx context.Context, status string) ([]*entities.Campaign, error) {
	var filter ports.CampaignFilter
	if status != "" {
		filterStatus := entities.CampaignStatus(status)
		filter.Status = &filterStatus
	}

	campaigns, err := s.campaignRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	if status != "" {
		return campaigns, nil
	}

	public := make([]*entities.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.IsPublic() {
			public = append(public, c)
		}
	}
	return public, nil
}

// ListAllCampaigns returns every campaign regardless of status
func (s *CampaignService) ListAllCampaigns(ctx context.Context) ([]*entities.Campaign, error) {
	campaigns, err := s.campaignRepo.List(ctx, ports.CampaignFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

// GetCampaign retrieves a campaign by ID
func (s *CampaignService) GetCampaign(ctx context.Context, id int64) (*entities.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

// CreateCampaign submits a new campaign for review. Whatever the request
// says, the campaign starts pending with nothing raised.
func (s *CampaignService) CreateCampaign(ctx context.Context, req ports.CreateCampaignRequest) (*entities.Campaign, error) {
	campaign := &entities.Campaign{
		Title:            req.CampaignTitle,
		Description:      req.CampaignDescription,
		Image:            req.Image,
		AdditionalImages: req.AdditionalImages,
		Goal:             ports.IntOrDefault(req.FundingGoal, 0),
		DaysLeft:         int(ports.IntOrDefault(req.CampaignDuration, entities.DefaultCampaignDays)),
		Badge:            entities.DefaultCampaignBadge,
		Status:           entities.CampaignStatusPending,
		CreatedAt:        s.now(),
		Location:         req.Location,
		Category:         req.Category,
	}

	if campaign.Title == "" {
		campaign.Title = entities.DefaultCampaignTitle
	}
	if campaign.Description == "" {
		campaign.Description = req.ShortDescription
	}
	if req.UploadedImage != "" {
		campaign.Image = req.UploadedImage
	}
	if campaign.Category == "" {
		campaign.Category = entities.DefaultCampaignCategory
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.metrics.CampaignCreated(campaign.Category)
	s.logger.Infow("Campaign submitted", "campaign_id", campaign.ID, "title", campaign.Title, "goal", campaign.Goal)

	return campaign, nil
}

// ReviewCampaign approves or rejects a campaign
func (s *CampaignService) ReviewCampaign(ctx context.Context, id int64, req ports.ReviewCampaignRequest) (*entities.Campaign, error) {
	status := entities.CampaignStatus(req.Status)
	if !status.IsDecision() {
		return nil, entities.ErrInvalidCampaignStatus
	}

	at := s.now()
	campaign, err := s.campaignRepo.Update(ctx, id, func(c *entities.Campaign) error {
		return c.Review(status, req.Reason, at)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CampaignReviewed(string(status))
	s.logger.LogUserAction("admin", "campaign_reviewed", map[string]interface{}{
		"campaign_id": id,
		"status":      status,
	})

	return campaign, nil
}

// PendingCount returns the number of campaigns awaiting review
func (s *CampaignService) PendingCount(ctx context.Context) (int, error) {
	pending := entities.CampaignStatusPending

	n, err := s.campaignRepo.Count(ctx, ports.CampaignFilter{Status: &pending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending campaigns: %w", err)
	}

	return n, nil
}
