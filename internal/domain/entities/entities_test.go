package entities

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaign_Review(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     CampaignStatus
		reason     string
		wantErr    error
		wantReason string
	}{
		{"approve", CampaignStatusApproved, "", nil, ""},
		{"reject with reason", CampaignStatusRejected, "Incomplete details", nil, "Incomplete details"},
		{"pending is not a decision", CampaignStatusPending, "", ErrInvalidCampaignStatus, ""},
		{"unknown status", CampaignStatus("archived"), "", ErrInvalidCampaignStatus, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Campaign{ID: 1, Status: CampaignStatusPending}
			err := c.Review(tt.status, tt.reason, at)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, CampaignStatusPending, c.Status)
				assert.Nil(t, c.ReviewedAt)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, c.Status)
			require.NotNil(t, c.ReviewedAt)
			assert.True(t, at.Equal(*c.ReviewedAt))
			assert.Equal(t, tt.wantReason, c.RejectionReason)
		})
	}
}

func TestCampaign_ReviewKeepsEarlierReason(t *testing.T) {
	c := &Campaign{Status: CampaignStatusRejected, RejectionReason: "Blurry photos"}
	require.NoError(t, c.Review(CampaignStatusApproved, "", time.Now()))
	assert.Equal(t, "Blurry photos", c.RejectionReason)
}

func TestCampaign_ApplyDonation(t *testing.T) {
	c := &Campaign{Raised: 100, Backers: 2}

	require.NoError(t, c.ApplyDonation(50))
	assert.Equal(t, int64(150), c.Raised)
	assert.Equal(t, int64(3), c.Backers)

	for _, amount := range []int64{0, -1} {
		assert.ErrorIs(t, c.ApplyDonation(amount), ErrInvalidAmount)
	}
	assert.Equal(t, int64(150), c.Raised)
	assert.Equal(t, int64(3), c.Backers)
}

func TestCampaign_ApplyDonationRejectsOverflow(t *testing.T) {
	c := &Campaign{Raised: 15000, Backers: 234}

	assert.ErrorIs(t, c.ApplyDonation(math.MaxInt64), ErrInvalidAmount)
	assert.ErrorIs(t, c.ApplyDonation(math.MaxInt64-14999), ErrInvalidAmount)
	assert.Equal(t, int64(15000), c.Raised)
	assert.Equal(t, int64(234), c.Backers)

	require.NoError(t, c.ApplyDonation(math.MaxInt64-15000))
	assert.Equal(t, int64(math.MaxInt64), c.Raised)
	assert.Equal(t, int64(235), c.Backers)

	full := &Campaign{Backers: math.MaxInt64}
	assert.ErrorIs(t, full.ApplyDonation(1), ErrInvalidAmount)
	assert.Equal(t, int64(0), full.Raised)
}

func TestCampaign_IsPublic(t *testing.T) {
	assert.True(t, (&Campaign{Status: CampaignStatusApproved}).IsPublic())
	assert.False(t, (&Campaign{Status: CampaignStatusPending}).IsPublic())
	assert.False(t, (&Campaign{Status: CampaignStatusRejected}).IsPublic())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Asha Rao", (&User{FirstName: "Asha", LastName: "Rao"}).DisplayName())
	assert.Equal(t, "Asha", (&User{FirstName: "Asha"}).DisplayName())
	assert.Equal(t, "Rao", (&User{LastName: "Rao"}).DisplayName())
	assert.Empty(t, (&User{}).DisplayName())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrCampaignNotFound))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("create user: %w", ErrEmailTaken)))
	assert.Equal(t, KindValidation, KindOf(NewValidationError("bad input")))
	assert.Equal(t, KindInternal, KindOf(errors.New("disk full")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, CampaignStatusRejected.IsDecision())
	assert.False(t, CampaignStatusPending.IsDecision())
	assert.True(t, UserRoleAdmin.IsValid())
	assert.False(t, UserRole("root").IsValid())
}
