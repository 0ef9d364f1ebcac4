package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscriptions are hard-deleted on toggle-off. The composite unique index
// plus a CHECK (subscriber_id <> creator_id) in the migration enforce the
// one-row-per-pair and no-self-subscribe rules at the database level.
type SubscriptionModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	SubscriberID string    `gorm:"type:uuid;not null;uniqueIndex:idx_subs_subscriber_creator" json:"subscriber_id"`
	CreatorID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_subs_subscriber_creator;index" json:"creator_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
