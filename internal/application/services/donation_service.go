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

// DonationService handles donations to campaigns
type DonationService struct {
	donationRepo ports.DonationRepository
	campaignRepo ports.CampaignRepository
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo ports.DonationRepository, campaignRepo ports.CampaignRepository, m *metrics.Metrics, logger *logger.Logger) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		metrics:      m,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Donate records a completed donation and credits the campaign
func (s *DonationService) Donate(ctx context.Context, campaignID int64, req ports.DonationRequest) (*ports.DonationResult, error) {
	if !req.Amount.Valid || req.Amount.Value <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	donation := &entities.Donation{
		CampaignID: campaignID,
		Amount:     req.Amount.Value,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		CreatedAt:  s.now(),
		Status:     entities.DonationStatusCompleted,
	}
	if donation.DonorName == "" {
		donation.DonorName = entities.AnonymousDonor
	}

	campaign, err := s.donationRepo.Create(ctx, donation)
	if err != nil {
		return nil, err
	}

	s.metrics.DonationCompleted(donation.Amount)
	s.logger.Infow("Donation completed",
		"donation_id", donation.ID,
		"campaign_id", campaignID,
		"amount", donation.Amount,
		"raised", campaign.Raised,
	)

	return &ports.DonationResult{
		Success:  true,
		Donation: donation,
		Campaign: campaign,
	}, nil
}

// ListCampaignDonations returns a campaign's donations, newest first, without
// donor emails.
func (s *DonationService) ListCampaignDonations(ctx context.Context, campaignID int64) ([]*entities.Donation, error) {
	if _, err := s.campaignRepo.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	result := make([]*entities.Donation, 0, len(donations))
	for _, d := range donations {
		public := *d
		public.DonorEmail = ""
		result = append(result, &public)
	}

	return result, nil
}
