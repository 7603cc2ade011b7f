package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

const videoColumns = `id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at`

// GetVideoByID returns NotFound when no such video exists.
func (s *Store) GetVideoByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	video := &models.Video{}
	err := s.db.GetContext(ctx, video, "SELECT "+videoColumns+" FROM videos WHERE id = $1", id)
	if isNoRows(err) {
		return nil, apperr.New(apperr.NotFound, "Video not found")
	}
	if err != nil {
		logrus.WithError(err).WithField("video_id", id).Error("Error getting video")
		return nil, apperr.Store(err, "get video")
	}
	return video, nil
}

// GetVideosByOwner lists every video of a channel, newest first.
func (s *Store) GetVideosByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	videos := []models.Video{}
	if err := s.db.SelectContext(ctx, &videos, query, ownerID); err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("Error getting channel videos")
		return nil, apperr.Store(err, "get channel videos")
	}
	return videos, nil
}

// GetPublishedVideosByOwner lists at most limit published videos of a
// channel, newest first.
func (s *Store) GetPublishedVideosByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.Video, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_id = $1 AND is_published
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	videos := []models.Video{}
	if err := s.db.SelectContext(ctx, &videos, query, ownerID, limit); err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("Error getting published videos")
		return nil, apperr.Store(err, "get published videos")
	}
	return videos, nil
}

// TogglePublishStatus flips is_published on a video owned by ownerID and
// returns the updated row. A video owned by someone else is Forbidden.
func (s *Store) TogglePublishStatus(ctx context.Context, videoID, ownerID uuid.UUID) (*models.Video, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + videoColumns
	video := &models.Video{}
	err := s.db.GetContext(ctx, video, query, videoID, ownerID)
	if err == nil {
		return video, nil
	}
	if !isNoRows(err) {
		logrus.WithError(err).WithField("video_id", videoID).Error("Error toggling publish status")
		return nil, apperr.Store(err, "toggle publish status")
	}

	// Nothing updated: either the video is missing or it is not ours.
	if _, err := s.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	return nil, apperr.New(apperr.Forbidden, "Only the owner can change the publish status")
}

// IncrementViews adds one view. A missing video is NotFound.
func (s *Store) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "UPDATE videos SET views = views + 1 WHERE id = $1", videoID)
	if err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("Error incrementing views")
		return apperr.Store(err, "increment views")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store(err, "increment views")
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "Video not found")
	}
	return nil
}
