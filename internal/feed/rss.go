package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/eduncan911/podcast"

	"vidtube/internal/models"
)

// untitledVideo stands in for a blank title, which RSS items may not have.
const untitledVideo = "Untitled video"

// ChannelFeed renders a channel's videos as RSS. Each item links to the
// video's API resource and encloses the media file.
func ChannelFeed(baseURL string, channel *models.User, videos []models.Video) (string, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	var lastBuild *time.Time
	if len(videos) > 0 {
		lastBuild = &videos[0].CreatedAt
	} else {
		lastBuild = &channel.CreatedAt
	}

	title := channel.FullName
	if title == "" {
		title = channel.Username
	}

	p := podcast.New(
		fmt.Sprintf("%s on vidtube", title),
		fmt.Sprintf("%s/api/v1/channels/%s/feed.rss", baseURL, channel.ID),
		fmt.Sprintf("Videos published by @%s.", channel.Username),
		&channel.CreatedAt, lastBuild,
	)
	if channel.AvatarURL != "" {
		p.AddImage(channel.AvatarURL)
	}

	for _, video := range videos {
		itemTitle := video.Title
		if strings.TrimSpace(itemTitle) == "" {
			itemTitle = untitledVideo
		}
		description := video.Description
		if strings.TrimSpace(description) == "" {
			description = itemTitle
		}
		item := podcast.Item{
			GUID:        video.ID.String(),
			Title:       itemTitle,
			Description: description,
			Link:        fmt.Sprintf("%s/api/v1/videos/%s", baseURL, video.ID),
			PubDate:     &video.CreatedAt,
		}
		if video.ThumbnailURL != "" {
			item.AddImage(video.ThumbnailURL)
		}
		item.AddDuration(int64(video.Duration))
		if video.VideoURL != "" {
			item.AddEnclosure(video.VideoURL, podcast.MP4, 0)
		}
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("add item %s: %w", video.ID, err)
		}
	}

	return p.String(), nil
}
