package entities

import (
	"math"
	"time"
)

// Enums and types
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type CampaignStatus string

const (
	CampaignStatusPending  CampaignStatus = "pending"
	CampaignStatusApproved CampaignStatus = "approved"
	CampaignStatusRejected CampaignStatus = "rejected"
)

type DonationStatus string

const (
	DonationStatusCompleted DonationStatus = "completed"
)

type KYCStatus string

const (
	KYCStatusPending KYCStatus = "pending"
)

// Defaults applied when a campaign submission leaves fields blank
const (
	DefaultCampaignTitle    = "Untitled Campaign"
	DefaultCampaignCategory = "General"
	DefaultCampaignBadge    = "New"
	DefaultCampaignDays     = 30
	AnonymousDonor          = "Anonymous"
)

// KYC upload fields accepted by a submission
var KYCDocumentFields = []string{"aadhaarFront", "aadhaarBack", "panPhoto", "selfie"}

// Campaign is a fundraising campaign. Raised and Backers only move through donations.
type Campaign struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Image            string         `json:"image"`
	AdditionalImages []string       `json:"additionalImages,omitempty"`
	Goal             int64          `json:"goal"`
	Raised           int64          `json:"raised"`
	Backers          int64          `json:"backers"`
	DaysLeft         int            `json:"daysLeft"`
	Badge            string         `json:"badge"`
	Status           CampaignStatus `json:"status"`
	CreatedAt        time.Time      `json:"createdAt"`
	ReviewedAt       *time.Time     `json:"reviewedAt,omitempty"`
	RejectionReason  string         `json:"rejectionReason,omitempty"`
	Location         string         `json:"location,omitempty"`
	Category         string         `json:"category,omitempty"`
}

// Donation is a completed contribution to a campaign
type Donation struct {
	ID         int64          `json:"id"`
	CampaignID int64          `json:"campaignId"`
	Amount     int64          `json:"amount"`
	DonorName  string         `json:"donorName"`
	DonorEmail string         `json:"donorEmail"`
	CreatedAt  time.Time      `json:"createdAt"`
	Status     DonationStatus `json:"status"`
}

// User is a registered site member. Password holds a bcrypt hash, or a
// plaintext value for records written before hashing was introduced.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Admin is a three-factor admin credential
type Admin struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// KYCRecord is an identity verification submission
type KYCRecord struct {
	ID            int64             `json:"id"`
	AadhaarNumber string            `json:"aadhaarNumber"`
	FullName      string            `json:"fullName"`
	PANNumber     string            `json:"panNumber"`
	Files         map[string]string `json:"files"`
	Status        KYCStatus         `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ContactMessage is a message left through the contact form
type ContactMessage struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds site-wide review settings
type Settings struct {
	AutoApprovalThreshold int64 `json:"autoApprovalThreshold"`
	ReviewTime            int   `json:"reviewTime"`
}

// DefaultSettings returns the settings written on first start
func DefaultSettings() Settings {
	return Settings{AutoApprovalThreshold: 5000, ReviewTime: 48}
}

// Business logic methods for Campaign
func (c *Campaign) IsPublic() bool {
	return c.Status == CampaignStatusApproved
}

// Review records an admin decision. Only approved and rejected are accepted.
func (c *Campaign) Review(status CampaignStatus, reason string, at time.Time) error {
	if !status.IsDecision() {
		return ErrInvalidCampaignStatus
	}

	c.Status = status
	c.ReviewedAt = &at
	if reason != "" {
		c.RejectionReason = reason
	}
	return nil
}

// ApplyDonation adds a donation's amount and one backer to the campaign.
// Totals never wrap: an amount that would overflow raised is rejected.
func (c *Campaign) ApplyDonation(amount int64) error {
	if amount <= 0 || amount > math.MaxInt64-c.Raised || c.Backers == math.MaxInt64 {
		return ErrInvalidAmount
	}

	c.Raised += amount
	c.Backers++
	return nil
}

// DisplayName joins the user's name parts
func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Utility methods
func (cs CampaignStatus) IsDecision() bool {
	return cs == CampaignStatusApproved || cs == CampaignStatusRejected
}

func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleUser:
		return true
	default:
		return false
	}
}
