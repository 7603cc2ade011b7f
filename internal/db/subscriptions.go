package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

// ToggleSubscription removes the subscriber -> channel edge if it exists and
// creates it otherwise. The returned subscription is nil after a removal.
func (s *Store) ToggleSubscription(ctx context.Context, channelID, subscriberID uuid.UUID) (*models.Subscription, error) {
	if channelID == subscriberID {
		return nil, apperr.New(apperr.InvalidInput, "You cannot subscribe to your own channel")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleteQuery := `
		DELETE FROM subscriptions
		WHERE channel_id = $1 AND subscriber_id = $2
		RETURNING id
	`
	var removed uuid.UUID
	err := s.db.GetContext(ctx, &removed, deleteQuery, channelID, subscriberID)
	if err == nil {
		return nil, nil
	}
	if !isNoRows(err) {
		logrus.WithError(err).WithField("channel_id", channelID).Error("Error removing subscription")
		return nil, apperr.Store(err, "remove subscription")
	}

	insertQuery := `
		INSERT INTO subscriptions (channel_id, subscriber_id)
		VALUES ($1, $2)
		RETURNING id, channel_id, subscriber_id, created_at
	`
	sub := &models.Subscription{}
	err = s.db.GetContext(ctx, sub, insertQuery, channelID, subscriberID)
	switch {
	case err == nil:
		return sub, nil
	case pqCode(err) == codeForeignKeyViolation:
		return nil, apperr.New(apperr.NotFound, "Channel not found")
	case pqCode(err) == codeUniqueViolation:
		return nil, apperr.New(apperr.Conflict, "Subscription changed concurrently, try again")
	}
	logrus.WithError(err).WithField("channel_id", channelID).Error("Error adding subscription")
	return nil, apperr.Store(err, "add subscription")
}

// ListSubscribers returns the public profiles of everyone subscribed to
// channelID, most recent first. No subscribers is an empty list.
func (s *Store) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.SubscriptionEntry, error) {
	return s.listSubscriptionEntries(ctx, `
		SELECT s.id AS subscription_id, s.created_at AS subscribed_at,
			u.id AS "user.id", u.full_name AS "user.full_name",
			u.username AS "user.username", u.avatar_url AS "user.avatar_url"
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`, channelID, "list subscribers")
}

// ListSubscribedChannels returns the public profiles of every channel
// subscriberID follows, most recent first.
func (s *Store) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscriptionEntry, error) {
	return s.listSubscriptionEntries(ctx, `
		SELECT s.id AS subscription_id, s.created_at AS subscribed_at,
			u.id AS "user.id", u.full_name AS "user.full_name",
			u.username AS "user.username", u.avatar_url AS "user.avatar_url"
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`, subscriberID, "list subscribed channels")
}

func (s *Store) listSubscriptionEntries(ctx context.Context, query string, id uuid.UUID, op string) ([]models.SubscriptionEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries := []models.SubscriptionEntry{}
	if err := s.db.SelectContext(ctx, &entries, query, id); err != nil {
		logrus.WithError(err).WithField("user_id", id).Errorf("Error in %s", op)
		return nil, apperr.Store(err, op)
	}
	return entries, nil
}
