package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is a stored video's metadata.
type Video struct {
	ID           uuid.UUID `db:"id" json:"_id"`
	OwnerID      uuid.UUID `db:"owner_id" json:"owner"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	VideoURL     string    `db:"video_url" json:"videoFile"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail"`
	Duration     float64   `db:"duration" json:"duration"`
	Views        int64     `db:"views" json:"views"`
	IsPublished  bool      `db:"is_published" json:"isPublished"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// VideoSummary is a discovery result: the video plus its owner's public
// profile.
type VideoSummary struct {
	ID           uuid.UUID    `db:"id" json:"_id"`
	Title        string       `db:"title" json:"title"`
	Description  string       `db:"description" json:"description"`
	ThumbnailURL string       `db:"thumbnail_url" json:"thumbnail"`
	Duration     float64      `db:"duration" json:"duration"`
	Views        int64        `db:"views" json:"views"`
	IsPublished  bool         `db:"is_published" json:"isPublished"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	Owner        OwnerProfile `db:"owner" json:"owner"`
}
