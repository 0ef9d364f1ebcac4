package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID    string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	VideoURL     string         `gorm:"type:varchar(500);not null" json:"video_url"`
	ThumbnailURL string         `gorm:"type:varchar(500)" json:"thumbnail_url"`
	Views        int64          `gorm:"default:0" json:"views"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
