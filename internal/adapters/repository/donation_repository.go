package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/ports"
)

// DonationRepositoryImpl implements the DonationRepository interface
type DonationRepositoryImpl struct {
	store *jsonstore.Store
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(store *jsonstore.Store) ports.DonationRepository {
	return &DonationRepositoryImpl{store: store}
}

// Create records the donation and credits its campaign in one section over
// both documents. Nothing is written if the campaign is missing or the
// amount is rejected.
func (r *DonationRepositoryImpl) Create(ctx context.Context, donation *entities.Donation) (*entities.Campaign, error) {
	var credited *entities.Campaign

	names := []string{CampaignsDocument, DonationsDocument, SequencesDocument}
	err := r.store.Update(ctx, names, func(tx *jsonstore.Tx) error {
		campaigns := jsonstore.Get(tx, CampaignsDocument, []*entities.Campaign{})

		idx := indexOfCampaign(campaigns, donation.CampaignID)
		if idx < 0 {
			return entities.ErrCampaignNotFound
		}

		c := *campaigns[idx]
		if err := c.ApplyDonation(donation.Amount); err != nil {
			return err
		}
		campaigns[idx] = &c

		donations := jsonstore.Get(tx, DonationsDocument, []*entities.Donation{})
		id, err := nextID(tx, "donations", maxID(donations, func(d *entities.Donation) int64 {
			if d == nil {
				return 0
			}
			return d.ID
		}))
		if err != nil {
			return err
		}
		donation.ID = id

		if err := tx.Put(DonationsDocument, append(donations, donation)); err != nil {
			return err
		}
		credited = &c
		return tx.Put(CampaignsDocument, campaigns)
	})
	if err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}

	return credited, nil
}

// ListByCampaign returns a campaign's donations, newest first
func (r *DonationRepositoryImpl) ListByCampaign(ctx context.Context, campaignID int64) ([]*entities.Donation, error) {
	donations := jsonstore.Get(r.store, DonationsDocument, []*entities.Donation{})

	result := make([]*entities.Donation, 0)
	for _, d := range donations {
		if d != nil && d.CampaignID == campaignID {
			result = append(result, d)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}
