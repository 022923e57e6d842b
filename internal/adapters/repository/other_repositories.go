package repository

import (
	"context"
	"fmt"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/ports"
)

// AdminRepositoryImpl implements the AdminRepository interface
type AdminRepositoryImpl struct {
	store *jsonstore.Store
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(store *jsonstore.Store) ports.AdminRepository {
	return &AdminRepositoryImpl{store: store}
}

func (r *AdminRepositoryImpl) List(ctx context.Context) ([]*entities.Admin, error) {
	admins := jsonstore.Get(r.store, AdminsDocument, []*entities.Admin{})

	result := make([]*entities.Admin, 0, len(admins))
	for _, a := range admins {
		if a != nil {
			result = append(result, a)
		}
	}
	return result, nil
}

// KYCRepositoryImpl implements the KYCRepository interface
type KYCRepositoryImpl struct {
	store *jsonstore.Store
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(store *jsonstore.Store) ports.KYCRepository {
	return &KYCRepositoryImpl{store: store}
}

func (r *KYCRepositoryImpl) Create(ctx context.Context, record *entities.KYCRecord) error {
	err := r.store.Update(ctx, []string{KYCDocument, SequencesDocument}, func(tx *jsonstore.Tx) error {
		records := jsonstore.Get(tx, KYCDocument, []*entities.KYCRecord{})

		id, err := nextID(tx, "kyc", maxID(records, func(k *entities.KYCRecord) int64 {
			if k == nil {
				return 0
			}
			return k.ID
		}))
		if err != nil {
			return err
		}
		record.ID = id

		return tx.Put(KYCDocument, append(records, record))
	})
	if err != nil {
		return fmt.Errorf("create kyc record: %w", err)
	}

	return nil
}

func (r *KYCRepositoryImpl) List(ctx context.Context) ([]*entities.KYCRecord, error) {
	return compact(jsonstore.Get(r.store, KYCDocument, []*entities.KYCRecord{})), nil
}

// MessageRepositoryImpl implements the MessageRepository interface
type MessageRepositoryImpl struct {
	store *jsonstore.Store
}

// NewMessageRepository creates a new contact message repository
func NewMessageRepository(store *jsonstore.Store) ports.MessageRepository {
	return &MessageRepositoryImpl{store: store}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entities.ContactMessage) error {
	err := r.store.Update(ctx, []string{MessagesDocument, SequencesDocument}, func(tx *jsonstore.Tx) error {
		messages := jsonstore.Get(tx, MessagesDocument, []*entities.ContactMessage{})

		id, err := nextID(tx, "messages", maxID(messages, func(m *entities.ContactMessage) int64 {
			if m == nil {
				return 0
			}
			return m.ID
		}))
		if err != nil {
			return err
		}
		message.ID = id

		return tx.Put(MessagesDocument, append(messages, message))
	})
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}

	return nil
}

func (r *MessageRepositoryImpl) List(ctx context.Context) ([]*entities.ContactMessage, error) {
	return compact(jsonstore.Get(r.store, MessagesDocument, []*entities.ContactMessage{})), nil
}

// SettingsRepositoryImpl implements the SettingsRepository interface
type SettingsRepositoryImpl struct {
	store *jsonstore.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(store *jsonstore.Store) ports.SettingsRepository {
	return &SettingsRepositoryImpl{store: store}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*entities.Settings, error) {
	settings := jsonstore.Get(r.store, SettingsDocument, entities.DefaultSettings())
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Update(ctx context.Context, fn func(*entities.Settings) error) (*entities.Settings, error) {
	var settings entities.Settings

	err := r.store.Update(ctx, []string{SettingsDocument}, func(tx *jsonstore.Tx) error {
		settings = jsonstore.Get(tx, SettingsDocument, entities.DefaultSettings())
		if err := fn(&settings); err != nil {
			return err
		}
		return tx.Put(SettingsDocument, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	return &settings, nil
}

func compact[T any](items []*T) []*T {
	result := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			result = append(result, item)
		}
	}
	return result
}
