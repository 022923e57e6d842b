package ports

import (
	"context"

	"github.com/greenfund/core/internal/domain/entities"
)

// CampaignService interface for campaign operations
type CampaignService interface {
	ListCampaigns(ctx context.Context, status string) ([]*entities.Campaign, error)
	ListAllCampaigns(ctx context.Context) ([]*entities.Campaign, error)
	GetCampaign(ctx context.Context, id int64) (*entities.Campaign, error)
	CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*entities.Campaign, error)
	ReviewCampaign(ctx context.Context, id int64, req ReviewCampaignRequest) (*entities.Campaign, error)
	PendingCount(ctx context.Context) (int, error)
}

// DonationService interface for donation operations
type DonationService interface {
	Donate(ctx context.Context, campaignID int64, req DonationRequest) (*DonationResult, error)
	ListCampaignDonations(ctx context.Context, campaignID int64) ([]*entities.Donation, error)
}

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req AdminLoginRequest) (*LoginResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// KYCService interface for identity verification submissions
type KYCService interface {
	Submit(ctx context.Context, req KYCRequest) (*entities.KYCRecord, error)
	List(ctx context.Context) ([]*entities.KYCRecord, error)
}

// ContactService interface for contact form messages
type ContactService interface {
	Submit(ctx context.Context, req ContactRequest) (*entities.ContactMessage, error)
	List(ctx context.Context) ([]*entities.ContactMessage, error)
}

// SettingsService interface for site settings
type SettingsService interface {
	Get(ctx context.Context) (*entities.Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (*entities.Settings, error)
}

// Request/Response Types

// Campaign related types. Field names follow the campaign submission form.
type CreateCampaignRequest struct {
	CampaignTitle       string `form:"campaignTitle" json:"campaignTitle" validate:"max=200"`
	CampaignDescription string `form:"campaignDescription" json:"campaignDescription"`
	ShortDescription    string `form:"shortDescription" json:"shortDescription"`
	Image               string `form:"image" json:"image"`
	FundingGoal         string `form:"fundingGoal" json:"fundingGoal"`
	CampaignDuration    string `form:"campaignDuration" json:"campaignDuration"`
	Location            string `form:"location" json:"location"`
	Category            string `form:"category" json:"category"`

	// Set from uploaded files, not from form values
	UploadedImage    string   `form:"-" json:"-"`
	AdditionalImages []string `form:"-" json:"-"`
}

type ReviewCampaignRequest struct {
	Status string `json:"status" form:"status"`
	Reason string `json:"reason" form:"reason" validate:"max=1000"`
}

type PendingCountResponse struct {
	PendingCount int `json:"pendingCount"`
}

type ReviewCampaignResponse struct {
	Success  bool               `json:"success"`
	Campaign *entities.Campaign `json:"campaign"`
}

// Donation related types
type DonationRequest struct {
	Amount     FlexibleInt `json:"amount" form:"amount"`
	DonorName  string      `json:"donorName" form:"donorName" validate:"max=200"`
	DonorEmail string      `json:"donorEmail" form:"donorEmail" validate:"max=320"`
}

type DonationResult struct {
	Success  bool               `json:"success"`
	Donation *entities.Donation `json:"donation"`
	Campaign *entities.Campaign `json:"campaign"`
}

// Auth related types
type RegisterRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" form:"lastName" validate:"max=100"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" form:"phone" validate:"max=32"`
	Password  string `json:"password" form:"password" validate:"max=72"`
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Code     string `json:"code" form:"code"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
}

type Claims struct {
	Subject string            `json:"sub"`
	Role    entities.UserRole `json:"role"`
}

// KYC related types
type KYCRequest struct {
	AadhaarNumber string `form:"aadhaarNumber" json:"aadhaarNumber" validate:"omitempty,numeric,len=12"`
	FullName      string `form:"fullName" json:"fullName" validate:"max=200"`
	PANNumber     string `form:"panNumber" json:"panNumber" validate:"omitempty,alphanum,len=10"`

	// Upload field name to stored filename, filled by the handler
	Files map[string]string `form:"-" json:"-"`
}

type KYCResponse struct {
	Success bool               `json:"success"`
	Status  entities.KYCStatus `json:"status"`
}

// Contact related types
type ContactRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" form:"lastName" validate:"max=100"`
	Email     string `json:"email" form:"email" validate:"max=320"`
	Subject   string `json:"subject" form:"subject" validate:"max=300"`
	Message   string `json:"message" form:"message" validate:"max=5000"`
}

// Settings related types
type UpdateSettingsRequest struct {
	AutoApprovalThreshold *int64 `json:"autoApprovalThreshold" validate:"omitempty,min=0"`
	ReviewTime            *int   `json:"reviewTime" validate:"omitempty,min=1"`
}

// Response types for common structures
type SuccessResponse struct {
	Success bool `json:"success"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
