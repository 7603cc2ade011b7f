package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

const userColumns = `id, username, email, full_name, avatar_url, cover_image_url, password_hash, refresh_token, created_at, updated_at`

// GetUserByID returns NotFound when no such user exists.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user := &models.User{}
	err := s.db.GetContext(ctx, user, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if isNoRows(err) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("Error getting user")
		return nil, apperr.Store(err, "get user")
	}
	return user, nil
}
