package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillstream/internal/repo/persistent"
	"skillstream/pkg/logger"
	"skillstream/pkg/queue"

	"github.com/redis/go-redis/v9"
)

const (
	notificationListPrefix = "notifications:"
	notificationListMax    = 100
	notificationTTL        = 7 * 24 * time.Hour
)

type NotificationUseCase interface {
	Start() error
	ListForUser(ctx context.Context, userID string, limit int) ([]map[string]interface{}, error)
}

type notificationUseCase struct {
	queueClient    *queue.Client
	redisClient    *redis.Client
	engagementRepo persistent.EngagementRepository
	logger         *logger.Logger
}

func NewNotificationUseCase(
	queueClient *queue.Client,
	redisClient *redis.Client,
	engagementRepo persistent.EngagementRepository,
	logger *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		queueClient:    queueClient,
		redisClient:    redisClient,
		engagementRepo: engagementRepo,
		logger:         logger,
	}
}

// Start consumes notification tasks from the queue and materializes them into
// capped per-recipient lists in Redis. Tasks without a direct recipient are
// fanned out to the creator's subscribers.
func (uc *notificationUseCase) Start() error {
	return uc.queueClient.ConsumeNotificationTasks(func(task map[string]interface{}) error {
		recipients, err := uc.resolveRecipients(task)
		if err != nil {
			return err
		}
		if len(recipients) == 0 {
			uc.logger.Info("Notification task without recipients: %+v", task)
			return nil
		}

		task["delivered_at"] = time.Now().UTC().Format(time.RFC3339)
		payload, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to marshal notification: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pipe := uc.redisClient.Pipeline()
		for _, recipientID := range recipients {
			key := notificationListPrefix + recipientID
			pipe.LPush(ctx, key, payload)
			pipe.LTrim(ctx, key, 0, notificationListMax-1)
			pipe.Expire(ctx, key, notificationTTL)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to store notification: %w", err)
		}
		return nil
	})
}

func (uc *notificationUseCase) resolveRecipients(task map[string]interface{}) ([]string, error) {
	if recipientID, _ := task["recipient_id"].(string); recipientID != "" {
		return []string{recipientID}, nil
	}

	// A new_video task targets the creator's whole audience.
	taskType, _ := task["type"].(string)
	creatorID, _ := task["creator_id"].(string)
	if taskType == "new_video" && creatorID != "" {
		ids, err := uc.engagementRepo.SubscriberIDs(creatorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve subscribers: %w", err)
		}
		return ids, nil
	}

	return nil, nil
}

func (uc *notificationUseCase) ListForUser(ctx context.Context, userID string, limit int) ([]map[string]interface{}, error) {
	if limit < 1 || limit > notificationListMax {
		limit = notificationListMax
	}

	raw, err := uc.redisClient.LRange(ctx, notificationListPrefix+userID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	notifications := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		var notification map[string]interface{}
		if err := json.Unmarshal([]byte(item), &notification); err != nil {
			continue
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}
