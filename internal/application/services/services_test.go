package services

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfund/core/internal/adapters/repository"
	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/config"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/infrastructure/logger"
	"github.com/greenfund/core/internal/infrastructure/metrics"
	"github.com/greenfund/core/internal/ports"
)

var testJWT = config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "greenfund-test"}

type fixture struct {
	store     *jsonstore.Store
	campaigns *CampaignService
	donations *DonationService
	auth      *AuthService
	kyc       *KYCService
	contact   *ContactService
	settings  *SettingsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := jsonstore.New(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = repository.Seed(context.Background(), store, nil)
	require.NoError(t, err)

	log := logger.Nop()
	m := metrics.New()
	campaignRepo := repository.NewCampaignRepository(store)

	return &fixture{
		store:     store,
		campaigns: NewCampaignService(campaignRepo, m, log),
		donations: NewDonationService(repository.NewDonationRepository(store), campaignRepo, m, log),
		auth:      NewAuthService(repository.NewUserRepository(store), repository.NewAdminRepository(store), testJWT, m, log),
		kyc:       NewKYCService(repository.NewKYCRepository(store), m, log),
		contact:   NewContactService(repository.NewMessageRepository(store), m, log),
		settings:  NewSettingsService(repository.NewSettingsRepository(store), log),
	}
}

func amount(v int64) ports.FlexibleInt {
	return ports.FlexibleInt{Value: v, Valid: true}
}

func TestCampaignService_ListDefaultsToApproved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.campaigns.CreateCampaign(ctx, ports.CreateCampaignRequest{CampaignTitle: "Pending one"})
	require.NoError(t, err)

	public, err := f.campaigns.ListCampaigns(ctx, "")
	require.NoError(t, err)
	assert.Len(t, public, 3)
	for _, c := range public {
		assert.Equal(t, entities.CampaignStatusApproved, c.Status)
	}

	pending, err := f.campaigns.ListCampaigns(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Pending one", pending[0].Title)

	none, err := f.campaigns.ListCampaigns(ctx, "archived")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := f.campaigns.ListAllCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCampaignService_CreateAppliesDefaults(t *testing.T) {
	f := newFixture(t)

	c, err := f.campaigns.CreateCampaign(context.Background(), ports.CreateCampaignRequest{
		ShortDescription: "short",
		FundingGoal:      "2500abc",
		CampaignDuration: "0",
		Image:            "https://example.com/a.png",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), c.ID)
	assert.Equal(t, entities.DefaultCampaignTitle, c.Title)
	assert.Equal(t, "short", c.Description)
	assert.Equal(t, int64(2500), c.Goal)
	assert.Equal(t, entities.DefaultCampaignDays, c.DaysLeft)
	assert.Equal(t, int64(0), c.Raised)
	assert.Equal(t, int64(0), c.Backers)
	assert.Equal(t, "New", c.Badge)
	assert.Equal(t, entities.CampaignStatusPending, c.Status)
	assert.Equal(t, "General", c.Category)
	assert.Equal(t, "https://example.com/a.png", c.Image)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCampaignService_CreatePrefersUploadedImage(t *testing.T) {
	f := newFixture(t)

	c, err := f.campaigns.CreateCampaign(context.Background(), ports.CreateCampaignRequest{
		CampaignTitle:       "Trees",
		CampaignDescription: "long",
		ShortDescription:    "short",
		FundingGoal:         "x",
		CampaignDuration:    "45",
		Image:               "https://example.com/a.png",
		Category:            "Environment",
		Location:            "Pune",
		UploadedImage:       "/uploads/1-abc.png",
		AdditionalImages:    []string{"/uploads/2-def.png"},
	})
	require.NoError(t, err)

	assert.Equal(t, "long", c.Description)
	assert.Equal(t, int64(0), c.Goal)
	assert.Equal(t, 45, c.DaysLeft)
	assert.Equal(t, "/uploads/1-abc.png", c.Image)
	assert.Equal(t, []string{"/uploads/2-def.png"}, c.AdditionalImages)
	assert.Equal(t, "Environment", c.Category)
	assert.Equal(t, "Pune", c.Location)
}

func TestCampaignService_Review(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.campaigns.CreateCampaign(ctx, ports.CreateCampaignRequest{CampaignTitle: "x"})
	require.NoError(t, err)

	_, err = f.campaigns.ReviewCampaign(ctx, created.ID, ports.ReviewCampaignRequest{Status: "pending"})
	assert.ErrorIs(t, err, entities.ErrInvalidCampaignStatus)

	unchanged, err := f.campaigns.GetCampaign(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.CampaignStatusPending, unchanged.Status)
	assert.Nil(t, unchanged.ReviewedAt)

	rejected, err := f.campaigns.ReviewCampaign(ctx, created.ID, ports.ReviewCampaignRequest{Status: "rejected", Reason: "incomplete"})
	require.NoError(t, err)
	assert.Equal(t, entities.CampaignStatusRejected, rejected.Status)
	assert.Equal(t, "incomplete", rejected.RejectionReason)
	require.NotNil(t, rejected.ReviewedAt)

	approved, err := f.campaigns.ReviewCampaign(ctx, created.ID, ports.ReviewCampaignRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, entities.CampaignStatusApproved, approved.Status)
	assert.Equal(t, "incomplete", approved.RejectionReason, "an empty reason keeps the previous one")

	_, err = f.campaigns.ReviewCampaign(ctx, 404, ports.ReviewCampaignRequest{Status: "approved"})
	assert.ErrorIs(t, err, entities.ErrCampaignNotFound)

	n, err := f.campaigns.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCampaignService_ListHidesNonPublicRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Put(repository.CampaignsDocument, []*entities.Campaign{
		{ID: 1, Title: "Live", Status: entities.CampaignStatusApproved},
		{ID: 2, Title: "No status"},
		{ID: 3, Title: "Archived", Status: entities.CampaignStatus("archived")},
		{ID: 4, Title: "Rejected", Status: entities.CampaignStatusRejected},
	}))

	public, err := f.campaigns.ListCampaigns(ctx, "")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Live", public[0].Title)

	archived, err := f.campaigns.ListCampaigns(ctx, "archived")
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, int64(3), archived[0].ID)
}

func TestDonationService_Donate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.donations.Donate(ctx, 1, ports.DonationRequest{Amount: amount(250), DonorEmail: "d@example.com"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, entities.AnonymousDonor, result.Donation.DonorName)
	assert.Equal(t, entities.DonationStatusCompleted, result.Donation.Status)
	assert.Equal(t, int64(1), result.Donation.CampaignID)
	assert.Equal(t, int64(15250), result.Campaign.Raised)
	assert.Equal(t, int64(235), result.Campaign.Backers)
}

func TestDonationService_DonateRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, amt := range []ports.FlexibleInt{{}, amount(0), amount(-5)} {
		_, err := f.donations.Donate(ctx, 1, ports.DonationRequest{Amount: amt})
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	}

	_, err := f.donations.Donate(ctx, 99, ports.DonationRequest{Amount: amount(10)})
	assert.ErrorIs(t, err, entities.ErrCampaignNotFound)

	c, err := f.campaigns.GetCampaign(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), c.Raised)
	assert.Equal(t, int64(234), c.Backers)
}

func TestDonationService_DonateRejectsOverflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	readDoc := func(name string) []byte {
		data, err := os.ReadFile(filepath.Join(f.store.Dir(), name))
		require.NoError(t, err)
		return data
	}
	campaignsBefore := readDoc(repository.CampaignsDocument)
	donationsBefore := readDoc(repository.DonationsDocument)

	for _, amt := range []int64{math.MaxInt64, math.MaxInt64 - 14999} {
		_, err := f.donations.Donate(ctx, 1, ports.DonationRequest{Amount: amount(amt)})
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	}

	assert.Equal(t, campaignsBefore, readDoc(repository.CampaignsDocument))
	assert.Equal(t, donationsBefore, readDoc(repository.DonationsDocument))
	assert.False(t, f.store.Present(repository.SequencesDocument))

	// The largest amount that still fits is accepted
	result, err := f.donations.Donate(ctx, 1, ports.DonationRequest{Amount: amount(math.MaxInt64 - 15000)})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), result.Campaign.Raised)
}

func TestDonationService_ConcurrentDonations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			_, err := f.donations.Donate(ctx, 3, ports.DonationRequest{Amount: amount(n)})
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	c, err := f.campaigns.GetCampaign(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(180000+210), c.Raised)
	assert.Equal(t, int64(1234+20), c.Backers)
}

func TestDonationService_ListHidesEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.donations.Donate(ctx, 2, ports.DonationRequest{Amount: amount(5), DonorName: "Mira", DonorEmail: "m@example.com"})
	require.NoError(t, err)

	list, err := f.donations.ListCampaignDonations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mira", list[0].DonorName)
	assert.Empty(t, list[0].DonorEmail)

	_, err = f.donations.ListCampaignDonations(ctx, 42)
	assert.ErrorIs(t, err, entities.ErrCampaignNotFound)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Register(ctx, ports.RegisterRequest{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "asha@example.com", resp.Email)

	users := jsonstore.Get(f.store, repository.UsersDocument, []*entities.User{})
	require.Len(t, users, 1)
	assert.NotEqual(t, "s3cret", users[0].Password, "passwords are stored hashed")

	_, err = f.auth.Register(ctx, ports.RegisterRequest{Email: "ASHA@example.com", Password: "other"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)

	_, err = f.auth.Register(ctx, ports.RegisterRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, entities.ErrCredentialsRequired)

	login, err := f.auth.Login(ctx, ports.LoginRequest{Email: "asha@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", login.Name)

	claims, err := f.auth.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, entities.UserRoleUser, claims.Role)
	assert.Equal(t, strconv.FormatInt(resp.ID, 10), claims.Subject)

	_, err = f.auth.Login(ctx, ports.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, ports.LoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestAuthService_LegacyPlaintextPassword(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Put(repository.UsersDocument, []*entities.User{
		{ID: 7, FirstName: "Old", Email: "old@example.com", Password: "plain"},
	}))

	login, err := f.auth.Login(context.Background(), ports.LoginRequest{Email: "old@example.com", Password: "plain"})
	require.NoError(t, err)
	assert.Equal(t, "Old", login.Name)
}

func TestAuthService_AdminLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.AdminLogin(ctx, ports.AdminLoginRequest{
		Username: repository.DefaultAdminUsername,
		Password: repository.DefaultAdminPassword,
		Code:     repository.DefaultAdminCode,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Name)

	claims, err := f.auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, entities.UserRoleAdmin, claims.Role)

	_, err = f.auth.AdminLogin(ctx, ports.AdminLoginRequest{
		Username: repository.DefaultAdminUsername,
		Password: repository.DefaultAdminPassword,
		Code:     "WRONG",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
}

func TestAuthService_ValidateTokenRejects(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.ValidateToken("admin_1700000000000")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)

	other := NewAuthService(nil, nil, config.JWTConfig{Secret: "other", ExpiresIn: time.Hour}, nil, logger.Nop())
	forged, err := other.generateToken("admin", entities.UserRoleAdmin)
	require.NoError(t, err)
	_, err = f.auth.ValidateToken(forged)
	assert.ErrorIs(t, err, entities.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: entities.UserRoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte(testJWT.Secret))
	require.NoError(t, err)
	_, err = f.auth.ValidateToken(signed)
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "pw"))
	assert.False(t, VerifyPassword(hash, "PW"))
	assert.True(t, VerifyPassword("legacy", "legacy"))
	assert.False(t, VerifyPassword("", ""))
}

func TestKYCService_Submit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.kyc.Submit(ctx, ports.KYCRequest{
		AadhaarNumber: "123412341234",
		FullName:      "Asha Rao",
		Files: map[string]string{
			"selfie":   "1-a.jpg",
			"panPhoto": "2-b.jpg",
			"resume":   "3-c.pdf",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.KYCStatusPending, record.Status)
	assert.Equal(t, map[string]string{"selfie": "1-a.jpg", "panPhoto": "2-b.jpg"}, record.Files)

	list, err := f.kyc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestContactService_Submit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.contact.Submit(ctx, ports.ContactRequest{Message: "hi"})
	assert.Equal(t, entities.KindValidation, entities.KindOf(err))

	msg, err := f.contact.Submit(ctx, ports.ContactRequest{Email: "a@b.c", Message: "hi", Subject: "Q"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)

	list, err := f.contact.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Q", list[0].Subject)
}

func TestSettingsService_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	threshold := int64(10000)
	updated, err := f.settings.Update(ctx, ports.UpdateSettingsRequest{AutoApprovalThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, entities.Settings{AutoApprovalThreshold: 10000, ReviewTime: 48}, *updated)

	got, err := f.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}
