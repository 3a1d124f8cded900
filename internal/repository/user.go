package repository

import (
	"context"

	"github.com/Oohevt/Eco-Learn/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Create assigns the id and returns ErrDuplicate when username or email is
// already taken; it never overwrites an existing user.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
