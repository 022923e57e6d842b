package ports

import (
	"context"

	"github.com/greenfund/core/internal/domain/entities"
)

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entities.Campaign) error
	GetByID(ctx context.Context, id int64) (*entities.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]*entities.Campaign, error)
	Count(ctx context.Context, filter CampaignFilter) (int, error)
	// Update applies fn to the stored campaign inside the campaigns document's
	// exclusive section and persists the result when fn returns nil.
	Update(ctx context.Context, id int64, fn func(*entities.Campaign) error) (*entities.Campaign, error)
}

// DonationRepository defines the interface for donation data operations
type DonationRepository interface {
	// Create appends the donation and applies it to its campaign atomically,
	// returning the updated campaign.
	Create(ctx context.Context, donation *entities.Donation) (*entities.Campaign, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]*entities.Donation, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create fails with entities.ErrEmailTaken when the email is registered
	Create(ctx context.Context, user *entities.User) error
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// AdminRepository defines the interface for admin credential lookups
type AdminRepository interface {
	List(ctx context.Context) ([]*entities.Admin, error)
}

// KYCRepository defines the interface for KYC submission data operations
type KYCRepository interface {
	Create(ctx context.Context, record *entities.KYCRecord) error
	List(ctx context.Context) ([]*entities.KYCRecord, error)
}

// MessageRepository defines the interface for contact message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *entities.ContactMessage) error
	List(ctx context.Context) ([]*entities.ContactMessage, error)
}

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	Get(ctx context.Context) (*entities.Settings, error)
	Update(ctx context.Context, fn func(*entities.Settings) error) (*entities.Settings, error)
}

// Filter types for repository queries
type CampaignFilter struct {
	Status *entities.CampaignStatus
}

// Matches reports whether a campaign satisfies the filter
func (f CampaignFilter) Matches(c *entities.Campaign) bool {
	return f.Status == nil || c.Status == *f.Status
}
