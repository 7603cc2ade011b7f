package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a comment on a video with its author's public profile.
type Comment struct {
	ID        uuid.UUID    `db:"id" json:"_id"`
	VideoID   uuid.UUID    `db:"video_id" json:"video"`
	Content   string       `db:"content" json:"content"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	Owner     OwnerProfile `db:"owner" json:"owner"`
}

type Tweet struct {
	ID        uuid.UUID `db:"id" json:"_id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
