package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/greenfund/core/internal/domain/entities"
	"github.com/greenfund/core/internal/infrastructure/jsonstore"
	"github.com/greenfund/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	store *jsonstore.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *jsonstore.Store) ports.UserRepository {
	return &UserRepositoryImpl{store: store}
}

// Create appends the user. The uniqueness check and the append happen in the
// same section, so two registrations for one email cannot both succeed.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	err := r.store.Update(ctx, []string{UsersDocument, SequencesDocument}, func(tx *jsonstore.Tx) error {
		users := jsonstore.Get(tx, UsersDocument, []*entities.User{})

		if findUser(users, user.Email) != nil {
			return entities.ErrEmailTaken
		}

		id, err := nextID(tx, "users", maxID(users, func(u *entities.User) int64 {
			if u == nil {
				return 0
			}
			return u.ID
		}))
		if err != nil {
			return err
		}
		user.ID = id

		return tx.Put(UsersDocument, append(users, user))
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user := findUser(jsonstore.Get(r.store, UsersDocument, []*entities.User{}), email)
	if user == nil {
		return nil, entities.ErrUserNotFound
	}

	return user, nil
}

// Emails compare case-insensitively
func findUser(users []*entities.User, email string) *entities.User {
	email = strings.TrimSpace(email)
	for _, u := range users {
		if u != nil && strings.EqualFold(strings.TrimSpace(u.Email), email) {
			return u
		}
	}
	return nil
}
