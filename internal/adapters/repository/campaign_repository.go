package repository

import (
	"context"
	"fmt"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/ports"
)

// CampaignRepositoryImpl implements the CampaignRepository interface
type CampaignRepositoryImpl struct {
	store *jsonstore.Store
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(store *jsonstore.Store) ports.CampaignRepository {
	return &CampaignRepositoryImpl{store: store}
}

func campaignID(c *entities.Campaign) int64 {
	if c == nil {
		return 0
	}
	return c.ID
}

func (r *CampaignRepositoryImpl) Create(ctx context.Context, campaign *entities.Campaign) error {
	err := r.store.Update(ctx, []string{CampaignsDocument, SequencesDocument}, func(tx *jsonstore.Tx) error {
		campaigns := jsonstore.Get(tx, CampaignsDocument, []*entities.Campaign{})

		id, err := nextID(tx, "campaigns", maxID(campaigns, campaignID))
		if err != nil {
			return err
		}
		campaign.ID = id

		return tx.Put(CampaignsDocument, append(campaigns, campaign))
	})
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}

	return nil
}

func (r *CampaignRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Campaign, error) {
	for _, c := range jsonstore.Get(r.store, CampaignsDocument, []*entities.Campaign{}) {
		if c != nil && c.ID == id {
			return c, nil
		}
	}

	return nil, entities.ErrCampaignNotFound
}

func (r *CampaignRepositoryImpl) List(ctx context.Context, filter ports.CampaignFilter) ([]*entities.Campaign, error) {
	campaigns := jsonstore.Get(r.store, CampaignsDocument, []*entities.Campaign{})

	result := make([]*entities.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c != nil && filter.Matches(c) {
			result = append(result, c)
		}
	}

	return result, nil
}

func (r *CampaignRepositoryImpl) Count(ctx context.Context, filter ports.CampaignFilter) (int, error) {
	campaigns, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	return len(campaigns), nil
}

func (r *CampaignRepositoryImpl) Update(ctx context.Context, id int64, fn func(*entities.Campaign) error) (*entities.Campaign, error) {
	var updated *entities.Campaign

	err := r.store.Update(ctx, []string{CampaignsDocument}, func(tx *jsonstore.Tx) error {
		campaigns := jsonstore.Get(tx, CampaignsDocument, []*entities.Campaign{})

		idx := indexOfCampaign(campaigns, id)
		if idx < 0 {
			return entities.ErrCampaignNotFound
		}

		c := *campaigns[idx]
		if err := fn(&c); err != nil {
			return err
		}
		campaigns[idx] = &c
		updated = &c

		return tx.Put(CampaignsDocument, campaigns)
	})
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}

	return updated, nil
}

func indexOfCampaign(campaigns []*entities.Campaign, id int64) int {
	for i, c := range campaigns {
		if c != nil && c.ID == id {
			return i
		}
	}
	return -1
}
