package repository

import (
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
)

// Document names inside the data directory
const (
	CampaignsDocument = "campaigns.json"
	DonationsDocument = "donations.json"
	UsersDocument     = "users.json"
	AdminsDocument    = "admins.json"
	SettingsDocument  = "settings.json"
	KYCDocument       = "kyc.json"
	MessagesDocument  = "messages.json"
	SequencesDocument = "sequences.json"
)

// nextID allocates the next id for a collection as one more than both the
// persisted counter and the highest id already stored. The caller's section
// must hold SequencesDocument.
func nextID(tx *jsonstore.Tx, collection string, maxExisting int64) (int64, error) {
	seqs := jsonstore.Get(tx, SequencesDocument, map[string]int64{})
	if seqs == nil {
		seqs = map[string]int64{}
	}

	id := seqs[collection]
	if maxExisting > id {
		id = maxExisting
	}
	id++

	seqs[collection] = id
	if err := tx.Put(SequencesDocument, seqs); err != nil {
		return 0, err
	}
	return id, nil
}

func maxID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, item := range items {
		if v := id(item); v > max {
			max = v
		}
	}
	return max
}
