package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/infrastructure/logger"
)

// Default admin credential written on first start
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminCode     = "GREENFUND2024"
)

const unsplashImage = "https://images.unsplash.com/%s?w=800&h=400&fit=crop"

// SeedCampaigns returns the example campaigns shown on a fresh install
func SeedCampaigns(now time.Time) []*entities.Campaign {
	return []*entities.Campaign{
		{
			ID:          1,
			Title:       "Eco-Friendly Community Garden",
			Description: "Creating a sustainable green space for urban farming and education.",
			Image:       fmt.Sprintf(unsplashImage, "photo-1506905925346-21bda4d32df4"),
			Goal:        20000,
			Raised:      15000,
			Backers:     234,
			DaysLeft:    12,
			Badge:       "Trending",
			Status:      entities.CampaignStatusApproved,
			CreatedAt:   now,
		},
		{
			ID:          2,
			Title:       "Portable Solar Power Bank",
			Description: "Revolutionary solar-powered charging solution for outdoor enthusiasts.",
			Image:       fmt.Sprintf(unsplashImage, "photo-1497435334941-8c899ee9e8e9"),
			Goal:        100000,
			Raised:      45000,
			Backers:     567,
			DaysLeft:    28,
			Badge:       "New",
			Status:      entities.CampaignStatusApproved,
			CreatedAt:   now,
		},
		{
			ID:          3,
			Title:       "Smart Home Garden System",
			Description: "AI-powered indoor garden that grows fresh herbs and vegetables automatically.",
			Image:       fmt.Sprintf(unsplashImage, "photo-1441986300917-64674bd600d8"),
			Goal:        200000,
			Raised:      180000,
			Backers:     1234,
			DaysLeft:    5,
			Badge:       "Popular",
			Status:      entities.CampaignStatusApproved,
			CreatedAt:   now,
		},
	}
}

// Seed writes default content for every seedable document that is absent,
// null or unparseable. Documents with content are never touched. It returns
// the names of the documents it wrote.
func Seed(ctx context.Context, store *jsonstore.Store, log *logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Nop()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	defaults := []struct {
		name  string
		value any
	}{
		{CampaignsDocument, SeedCampaigns(now)},
		{DonationsDocument, []*entities.Donation{}},
		{UsersDocument, []*entities.User{}},
		{AdminsDocument, []*entities.Admin{{
			Username: DefaultAdminUsername,
			Password: string(hash),
			Code:     DefaultAdminCode,
		}}},
		{SettingsDocument, entities.DefaultSettings()},
	}

	var seeded []string
	for _, d := range defaults {
		wrote := false
		err := store.Update(ctx, []string{d.name}, func(tx *jsonstore.Tx) error {
			if jsonstore.Get[json.RawMessage](tx, d.name, nil) != nil {
				return nil
			}
			wrote = true
			return tx.Put(d.name, d.value)
		})
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", d.name, err)
		}
		if wrote {
			seeded = append(seeded, d.name)
		}
	}

	if len(seeded) > 0 {
		log.Infow("Seeded data directory", "dir", store.Dir(), "documents", seeded)
	}

	return seeded, nil
}
