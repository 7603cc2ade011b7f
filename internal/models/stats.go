package models

// ChannelStats is the dashboard roll-up for one channel. A channel with no
// activity reports zeros.
type ChannelStats struct {
	TotalVideos   int64 `db:"total_videos" json:"totalVideos"`
	TotalViews    int64 `db:"total_views" json:"totalViews"`
	Subscribers   int64 `db:"subscribers" json:"subscribers"`
	SubscribedTo  int64 `db:"subscribed_to" json:"subscribedTo"`
	TotalLikes    int64 `db:"total_likes" json:"totalLikes"`
	TotalComments int64 `db:"total_comments" json:"totalComments"`
	TotalTweets   int64 `db:"total_tweets" json:"totalTweets"`
}
