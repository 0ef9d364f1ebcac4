package entity

import "time"

type Video struct {
	ID           string    `json:"id"`
	CreatorID    string    `json:"creator_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VideoSummary is a feed card: the video plus the creator's username and
// engagement counts resolved in bulk for the whole page.
type VideoSummary struct {
	Video
	CreatorUsername string `json:"creator_username"`
	LikeCount       int64  `json:"like_count"`
	CommentCount    int64  `json:"comment_count"`
}

// VideoDetail extends the summary with the comment thread and
// viewer-specific state.
type VideoDetail struct {
	VideoSummary
	Comments   []*Comment `json:"comments"`
	Liked      bool       `json:"liked"`
	Subscribed bool       `json:"subscribed"`
}
