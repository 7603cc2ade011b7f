package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

// ListUserTweets returns every tweet of ownerID, newest first. A user with
// no tweets gets an empty list.
func (s *Store) ListUserTweets(ctx context.Context, ownerID uuid.UUID) ([]models.Tweet, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, owner_id, content, created_at
		FROM tweets
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	tweets := []models.Tweet{}
	if err := s.db.SelectContext(ctx, &tweets, query, ownerID); err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("Error listing tweets")
		return nil, apperr.Store(err, "list tweets")
	}
	return tweets, nil
}
