// Package seed loads the built-in lesson catalog and the bootstrap admin
// account. Both operations are idempotent: records that already exist are
// left untouched, so running the seed on every startup is safe.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Oohevt/Eco-Learn/internal/auth"
	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

// EnsureChapters inserts every built-in chapter that is not already present.
// Insert-if-absent keeps duplicate seeding a no-op without any process-wide
// flag or marker record.
func EnsureChapters(ctx context.Context, chapters repository.ChapterRepository, logger *logrus.Logger) error {
	for i := range sampleChapters {
		chapter := sampleChapters[i]
		err := chapters.Create(ctx, &chapter)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed chapter %s: %w", chapter.ChapterID, err)
		}
		if logger != nil {
			logger.Infof("seeded chapter %s", chapter.ChapterID)
		}
	}
	return nil
}

// EnsureAdmin creates the configured admin account if the username is free.
// An existing user with that name is left as is, admin or not.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, hasher auth.PasswordHasher, username, password string, logger *logrus.Logger) error {
	if username == "" || password == "" {
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	err = users.Create(ctx, admin)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if logger != nil {
		logger.Infof("created admin user %s", username)
	}
	return nil
}
