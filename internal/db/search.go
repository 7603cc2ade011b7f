package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/query"
)

// searchVideosQuery returns one row even when nothing matches: the total
// comes from the outer side and the page columns are NULL. The ORDER BY
// column and direction come from query.Search's whitelist.
const searchVideosQuery = `
	WITH matched AS (
		SELECT v.*
		FROM videos v
		WHERE (v.title ILIKE $1 OR v.description ILIKE $1)
		  AND ($2::uuid IS NULL OR v.owner_id = $2::uuid)
	)
	SELECT t.total, p.*
	FROM (SELECT COUNT(*) AS total FROM matched) t
	LEFT JOIN LATERAL (
		SELECT
			ROW_NUMBER() OVER (ORDER BY m.%[1]s %[2]s, m.id %[2]s) AS position,
			m.id, m.title, m.description, m.thumbnail_url, m.duration,
			m.views, m.is_published, m.created_at,
			u.id AS owner_id,
			u.full_name AS owner_full_name,
			u.username AS owner_username,
			u.avatar_url AS owner_avatar_url
		FROM matched m
		JOIN users u ON u.id = m.owner_id
		ORDER BY position
		LIMIT $3 OFFSET $4
	) p ON TRUE
	ORDER BY p.position
`

type searchRow struct {
	Total          int64           `db:"total"`
	Position       sql.NullInt64   `db:"position"`
	ID             uuid.NullUUID   `db:"id"`
	Title          sql.NullString  `db:"title"`
	Description    sql.NullString  `db:"description"`
	ThumbnailURL   sql.NullString  `db:"thumbnail_url"`
	Duration       sql.NullFloat64 `db:"duration"`
	Views          sql.NullInt64   `db:"views"`
	IsPublished    sql.NullBool    `db:"is_published"`
	CreatedAt      sql.NullTime    `db:"created_at"`
	OwnerID        uuid.NullUUID   `db:"owner_id"`
	OwnerFullName  sql.NullString  `db:"owner_full_name"`
	OwnerUsername  sql.NullString  `db:"owner_username"`
	OwnerAvatarURL sql.NullString  `db:"owner_avatar_url"`
}

func (r searchRow) summary() models.VideoSummary {
	return models.VideoSummary{
		ID:           r.ID.UUID,
		Title:        r.Title.String,
		Description:  r.Description.String,
		ThumbnailURL: r.ThumbnailURL.String,
		Duration:     r.Duration.Float64,
		Views:        r.Views.Int64,
		IsPublished:  r.IsPublished.Bool,
		CreatedAt:    r.CreatedAt.Time,
		Owner: models.OwnerProfile{
			ID:        r.OwnerID.UUID,
			FullName:  r.OwnerFullName.String,
			Username:  r.OwnerUsername.String,
			AvatarURL: r.OwnerAvatarURL.String,
		},
	}
}

// SearchVideos returns one page of videos whose title or description
// contains q.Text (case-insensitive), optionally restricted to one owner.
// No matches is an empty page, not an error.
func (s *Store) SearchVideos(ctx context.Context, q query.Search) (*models.Page[models.VideoSummary], error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	owner := uuid.NullUUID{}
	if q.OwnerID != nil {
		owner = uuid.NullUUID{UUID: *q.OwnerID, Valid: true}
	}

	stmt := fmt.Sprintf(searchVideosQuery, q.SortColumn(), q.Direction.SQL())
	var rows []searchRow
	err := s.db.SelectContext(ctx, &rows, stmt, ContainsPattern(q.Text), owner, q.Limit, q.Offset())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"query": q.Text,
			"page":  q.Page,
			"limit": q.Limit,
		}).Error("Error searching videos")
		return nil, apperr.Store(err, "search videos")
	}

	var total int64
	items := make([]models.VideoSummary, 0, len(rows))
	for _, row := range rows {
		total = row.Total
		if !row.ID.Valid {
			continue
		}
		items = append(items, row.summary())
	}

	return models.NewPage(items, total, q.Page, q.Limit), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns free text into an ILIKE pattern that matches it as
// a literal substring. Empty text matches everything.
func ContainsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
