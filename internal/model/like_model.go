package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Likes are hard-deleted on toggle-off so the composite unique index stays
// authoritative under concurrent toggles.
type LikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_video" json:"user_id"`
	VideoID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_video;index" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
