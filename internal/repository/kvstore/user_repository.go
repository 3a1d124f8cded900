package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

type UserRepository struct {
	store kv.Store
}

func NewUserRepository(store kv.Store) repository.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Init(ctx context.Context) error { return nil }

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.store.Get(ctx, usernameKeyPrefix+user.Username); err == nil {
		return fmt.Errorf("username %s: %w", user.Username, repository.ErrDuplicate)
	} else if !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	if _, err := r.store.Get(ctx, emailKeyPrefix+user.Email); err == nil {
		return fmt.Errorf("email %s: %w", user.Email, repository.ErrDuplicate)
	} else if !errors.Is(err, kv.ErrNotFound) {
		return err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	// primary record first, indices after
	if err := putJSON(ctx, r.store, userKeyPrefix+user.ID, user); err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	if err := r.store.Put(ctx, usernameKeyPrefix+user.Username, []byte(user.ID)); err != nil {
		return fmt.Errorf("put username index: %w", err)
	}
	if err := r.store.Put(ctx, emailKeyPrefix+user.Email, []byte(user.ID)); err != nil {
		return fmt.Errorf("put email index: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := getJSON(ctx, r.store, userKeyPrefix+id, &user); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getByIndex(ctx, usernameKeyPrefix+username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByIndex(ctx, emailKeyPrefix+email)
}

// getByIndex resolves alternate key -> id -> record. A miss on either hop
// is reported as not found, which absorbs a dangling index entry.
func (r *UserRepository) getByIndex(ctx context.Context, indexKey string) (*domain.User, error) {
	id, err := r.store.Get(ctx, indexKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, string(id))
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	if err := putJSON(ctx, r.store, userKeyPrefix+id, user); err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}
