package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. A user acting as the owner of videos and
// tweets is also called a channel.
type User struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Email         string    `db:"email" json:"email"`
	FullName      string    `db:"full_name" json:"fullName"`
	AvatarURL     string    `db:"avatar_url" json:"avatar"`
	CoverImageURL string    `db:"cover_image_url" json:"coverImage"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	RefreshToken  *string   `db:"refresh_token" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// OwnerProfile is the public projection of a user attached to listings. It
// has no email, password or token fields.
type OwnerProfile struct {
	ID        uuid.UUID `db:"id" json:"_id"`
	FullName  string    `db:"full_name" json:"fullName"`
	Username  string    `db:"username" json:"username"`
	AvatarURL string    `db:"avatar_url" json:"avatar"`
}

// Public returns the public projection of u.
func (u *User) Public() OwnerProfile {
	return OwnerProfile{ID: u.ID, FullName: u.FullName, Username: u.Username, AvatarURL: u.AvatarURL}
}
