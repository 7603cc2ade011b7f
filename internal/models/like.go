package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LikeKind tags what a like points at. A like has exactly one target.
type LikeKind string

const (
	VideoLike   LikeKind = "video"
	CommentLike LikeKind = "comment"
	TweetLike   LikeKind = "tweet"
)

// ParseLikeKind accepts the full names and the one-letter route forms
// (v, c, t).
func ParseLikeKind(s string) (LikeKind, error) {
	switch s {
	case "video", "v":
		return VideoLike, nil
	case "comment", "c":
		return CommentLike, nil
	case "tweet", "t":
		return TweetLike, nil
	}
	return "", fmt.Errorf("unknown like target %q", s)
}

// LikeTarget is the single reference a like holds.
type LikeTarget struct {
	Kind LikeKind  `db:"target_kind" json:"kind"`
	ID   uuid.UUID `db:"target_id" json:"id"`
}

type Like struct {
	ID        uuid.UUID  `db:"id" json:"_id"`
	LikedBy   uuid.UUID  `db:"liked_by" json:"likedBy"`
	Target    LikeTarget `db:"target" json:"target"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}
