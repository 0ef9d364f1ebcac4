package entity

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsCreator bool      `json:"is_creator"`
	IsStudent bool      `json:"is_student"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountStats aggregates a user's activity across the platform.
type AccountStats struct {
	UploadedVideos int64 `json:"uploaded_videos_count"`
	TotalViews     int64 `json:"total_views"`
	Subscriptions  int64 `json:"subscriptions_count"`
	Comments       int64 `json:"comments_count"`
	Subscribers    int64 `json:"subscribers_count"`
}
