package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Username  string         `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	IsCreator bool           `gorm:"default:false" json:"is_creator"`
	IsStudent bool           `gorm:"default:true" json:"is_student"`
	Bio       string         `gorm:"type:text" json:"bio"`
	AvatarURL string         `gorm:"type:varchar(500)" json:"avatar_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
