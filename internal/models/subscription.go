package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a directed edge: Subscriber follows Channel.
type Subscription struct {
	ID           uuid.UUID `db:"id" json:"_id"`
	ChannelID    uuid.UUID `db:"channel_id" json:"channel"`
	SubscriberID uuid.UUID `db:"subscriber_id" json:"subscriber"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// SubscriptionEntry is one row of a subscriber or subscribed-channel list:
// the edge plus the public profile of the user on the other end.
type SubscriptionEntry struct {
	SubscriptionID uuid.UUID    `db:"subscription_id" json:"_id"`
	SubscribedAt   time.Time    `db:"subscribed_at" json:"subscribedAt"`
	User           OwnerProfile `db:"user" json:"user"`
}
