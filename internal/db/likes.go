package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

var likeTargetTables = map[models.LikeKind]string{
	models.VideoLike:   "videos",
	models.CommentLike: "comments",
	models.TweetLike:   "tweets",
}

// ToggleLike removes userID's like on target if present and adds it
// otherwise. The returned like is nil after a removal. A target that does
// not exist is NotFound.
func (s *Store) ToggleLike(ctx context.Context, userID uuid.UUID, target models.LikeTarget) (*models.Like, error) {
	table, ok := likeTargetTables[target.Kind]
	if !ok {
		return nil, apperr.New(apperr.InvalidInput, "Unknown like target")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleteQuery := `
		DELETE FROM likes
		WHERE liked_by = $1 AND target_kind = $2 AND target_id = $3
		RETURNING id
	`
	var removed uuid.UUID
	err := s.db.GetContext(ctx, &removed, deleteQuery, userID, target.Kind, target.ID)
	if err == nil {
		return nil, nil
	}
	if !isNoRows(err) {
		logrus.WithError(err).WithField("target_id", target.ID).Error("Error removing like")
		return nil, apperr.Store(err, "remove like")
	}

	// The insert only happens when the target row exists.
	insertQuery := fmt.Sprintf(`
		INSERT INTO likes (liked_by, target_kind, target_id)
		SELECT $1::uuid, $2::like_target, $3::uuid
		WHERE EXISTS (SELECT 1 FROM %s WHERE id = $3)
		RETURNING id, liked_by, target_kind AS "target.target_kind", target_id AS "target.target_id", created_at
	`, table)
	like := &models.Like{}
	err = s.db.GetContext(ctx, like, insertQuery, userID, target.Kind, target.ID)
	switch {
	case err == nil:
		return like, nil
	case isNoRows(err):
		return nil, apperr.New(apperr.NotFound, fmt.Sprintf("%s not found", target.Kind))
	case pqCode(err) == codeUniqueViolation:
		return nil, apperr.New(apperr.Conflict, "Like changed concurrently, try again")
	}
	logrus.WithError(err).WithField("target_id", target.ID).Error("Error adding like")
	return nil, apperr.Store(err, "add like")
}

// LikedVideos returns the videos userID liked, most recent like first.
// Likes on comments and tweets are not included.
func (s *Store) LikedVideos(ctx context.Context, userID uuid.UUID) ([]models.Video, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
			v.duration, v.views, v.is_published, v.created_at, v.updated_at
		FROM likes l
		JOIN videos v ON l.target_kind = 'video' AND l.target_id = v.id
		WHERE l.liked_by = $1
		ORDER BY l.created_at DESC, l.id DESC
	`
	videos := []models.Video{}
	if err := s.db.SelectContext(ctx, &videos, query, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Error getting liked videos")
		return nil, apperr.Store(err, "liked videos")
	}
	return videos, nil
}
