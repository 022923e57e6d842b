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

// KYCService records identity verification submissions
type KYCService struct {
	kycRepo ports.KYCRepository
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

// NewKYCService creates a new KYC service
func NewKYCService(kycRepo ports.KYCRepository, m *metrics.Metrics, logger *logger.Logger) *KYCService {
	return &KYCService{
		kycRepo: kycRepo,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a submission. Submissions stay pending; nothing reviews them.
func (s *KYCService) Submit(ctx context.Context, req ports.KYCRequest) (*entities.KYCRecord, error) {
	files := make(map[string]string, len(req.Files))
	for _, field := range entities.KYCDocumentFields {
		if name, ok := req.Files[field]; ok && name != "" {
			files[field] = name
		}
	}

	record := &entities.KYCRecord{
		AadhaarNumber: req.AadhaarNumber,
		FullName:      req.FullName,
		PANNumber:     req.PANNumber,
		Files:         files,
		Status:        entities.KYCStatusPending,
		CreatedAt:     s.now(),
	}

	if err := s.kycRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store kyc submission: %w", err)
	}

	s.metrics.FormSubmitted("kyc")
	s.logger.Infow("KYC submitted", "kyc_id", record.ID, "documents", len(files))

	return record, nil
}

// List returns every submission
func (s *KYCService) List(ctx context.Context) ([]*entities.KYCRecord, error) {
	return s.kycRepo.List(ctx)
}

// ContactService records contact form messages
type ContactService struct {
	messageRepo ports.MessageRepository
	metrics     *metrics.Metrics
	logger      *logger.Logger
	now         func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(messageRepo ports.MessageRepository, m *metrics.Metrics, logger *logger.Logger) *ContactService {
	return &ContactService{
		messageRepo: messageRepo,
		metrics:     m,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *ContactService) Submit(ctx context.Context, req ports.ContactRequest) (*entities.ContactMessage, error) {
	if req.Email == "" || req.Message == "" {
		return nil, entities.NewValidationError("Email and message required")
	}

	msg := &entities.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	s.metrics.FormSubmitted("contact")
	s.logger.Infow("Contact message received", "message_id", msg.ID)

	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]*entities.ContactMessage, error) {
	return s.messageRepo.List(ctx)
}

// SettingsService exposes the site settings to admins
type SettingsService struct {
	settingsRepo ports.SettingsRepository
	logger       *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo ports.SettingsRepository, logger *logger.Logger) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (*entities.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update changes only the fields present in the request
func (s *SettingsService) Update(ctx context.Context, req ports.UpdateSettingsRequest) (*entities.Settings, error) {
	settings, err := s.settingsRepo.Update(ctx, func(cur *entities.Settings) error {
		if req.AutoApprovalThreshold != nil {
			cur.AutoApprovalThreshold = *req.AutoApprovalThreshold
		}
		if req.ReviewTime != nil {
			cur.ReviewTime = *req.ReviewTime
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogUserAction("admin", "settings_updated", map[string]interface{}{
		"auto_approval_threshold": settings.AutoApprovalThreshold,
		"review_time":             settings.ReviewTime,
	})

	return settings, nil
}
