package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"skillstream/internal/entity"
	"skillstream/internal/repo/persistent"
	"skillstream/pkg/logger"
	"skillstream/pkg/queue"

	"github.com/redis/go-redis/v9"
)

const maxCommentLength = 1000

type EngagementUseCase interface {
	RecordView(ctx context.Context, videoID, viewerID string) (int64, error)
	ToggleLike(videoID, userID string) (bool, int64, error)
	AddComment(videoID, userID, text string) (*entity.Comment, error)
	ListComments(videoID string, page, pageSize int) ([]*entity.Comment, int64, error)
	DeleteComment(commentID, userID string) error
	ToggleSubscription(subscriberID, creatorID string) (bool, int64, error)
}

type engagementUseCase struct {
	engagementRepo persistent.EngagementRepository
	videoRepo      persistent.VideoRepository
	userRepo       persistent.UserRepository
	redisClient    *redis.Client
	queueClient    *queue.Client
	logger         *logger.Logger

	viewDedupWindow time.Duration
}

func NewEngagementUseCase(
	engagementRepo persistent.EngagementRepository,
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
	viewDedupSeconds int,
) EngagementUseCase {
	return &engagementUseCase{
		engagementRepo:  engagementRepo,
		videoRepo:       videoRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
		queueClient:     queueClient,
		logger:          logger,
		viewDedupWindow: time.Duration(viewDedupSeconds) * time.Second,
	}
}

// RecordView bumps the view counter. With a dedup window configured, repeat
// views from the same viewer inside the window return the current count
// without incrementing.
func (uc *engagementUseCase) RecordView(ctx context.Context, videoID, viewerID string) (int64, error) {
	if uc.viewDedupWindow > 0 && uc.redisClient != nil && viewerID != "" {
		// The video must exist before the dedup key is written; an unknown
		// ID must not leave a stray key or consume the viewer's window.
		video, err := uc.videoRepo.GetByID(videoID)
		if err != nil {
			return 0, err
		}

		key := fmt.Sprintf("view_dedup:%s:%s", videoID, viewerID)
		fresh, err := uc.redisClient.SetNX(ctx, key, 1, uc.viewDedupWindow).Result()
		if err != nil {
			// Redis being down must not lose views; fall through and count.
			uc.logger.Warn("View dedup check failed: %v", err)
		} else if !fresh {
			return video.Views, nil
		}
	}

	return uc.videoRepo.IncrementViews(videoID)
}

// ToggleLike flips the caller's like on a video and returns the new state
// with the resulting count. Concurrent duplicate requests settle on the
// current state instead of failing.
func (uc *engagementUseCase) ToggleLike(videoID, userID string) (bool, int64, error) {
	if _, err := uc.videoRepo.GetByID(videoID); err != nil {
		return false, 0, err
	}

	liked := true
	inserted, err := uc.engagementRepo.CreateLike(userID, videoID)
	if err != nil {
		return false, 0, err
	}
	if !inserted {
		// Already liked, so this request is a toggle-off.
		if _, err := uc.engagementRepo.DeleteLike(userID, videoID); err != nil {
			return false, 0, err
		}
		liked = false
	}

	invalidateDetailCache(uc.redisClient, uc.logger, videoID)

	count, err := uc.engagementRepo.LikeCount(videoID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (uc *engagementUseCase) AddComment(videoID, userID, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", entity.ErrValidation)
	}
	// Counts characters, not bytes.
	if utf8.RuneCountInString(text) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", entity.ErrValidation, maxCommentLength)
	}

	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		VideoID:  videoID,
		UserID:   userID,
		Username: user.Username,
		Text:     text,
	}
	if err := uc.engagementRepo.CreateComment(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, fmt.Errorf("failed to create comment")
	}

	invalidateDetailCache(uc.redisClient, uc.logger, videoID)

	if uc.queueClient != nil && video.CreatorID != userID {
		task := map[string]interface{}{
			"type":         "new_comment",
			"video_id":     videoID,
			"recipient_id": video.CreatorID,
			"user_id":      userID,
			"priority":     3,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Warn("Failed to publish comment notification: %v", err)
		}
	}

	return comment, nil
}

func (uc *engagementUseCase) ListComments(videoID string, page, pageSize int) ([]*entity.Comment, int64, error) {
	if _, err := uc.videoRepo.GetByID(videoID); err != nil {
		return nil, 0, err
	}

	page, pageSize = ClampPage(page, pageSize)
	return uc.engagementRepo.ListComments(videoID, pageSize, (page-1)*pageSize)
}

// DeleteComment allows the comment author and the video's creator to remove
// a comment.
func (uc *engagementUseCase) DeleteComment(commentID, userID string) error {
	comment, err := uc.engagementRepo.GetCommentByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		video, err := uc.videoRepo.GetByID(comment.VideoID)
		if err != nil {
			return err
		}
		if video.CreatorID != userID {
			return fmt.Errorf("%w: not allowed to delete this comment", entity.ErrPermission)
		}
	}

	if err := uc.engagementRepo.DeleteComment(commentID); err != nil {
		return err
	}

	invalidateDetailCache(uc.redisClient, uc.logger, comment.VideoID)
	return nil
}

// ToggleSubscription flips the caller's subscription to a creator and returns
// the new state with the creator's subscriber count.
func (uc *engagementUseCase) ToggleSubscription(subscriberID, creatorID string) (bool, int64, error) {
	if subscriberID == creatorID {
		return false, 0, fmt.Errorf("%w: cannot subscribe to yourself", entity.ErrValidation)
	}

	if _, err := uc.userRepo.GetByID(creatorID); err != nil {
		return false, 0, err
	}

	subscribed := true
	inserted, err := uc.engagementRepo.CreateSubscription(subscriberID, creatorID)
	if err != nil {
		return false, 0, err
	}
	if !inserted {
		if _, err := uc.engagementRepo.DeleteSubscription(subscriberID, creatorID); err != nil {
			return false, 0, err
		}
		subscribed = false
	}

	if subscribed && uc.queueClient != nil {
		task := map[string]interface{}{
			"type":          "new_subscriber",
			"recipient_id":  creatorID,
			"subscriber_id": subscriberID,
			"priority":      2,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Warn("Failed to publish subscription notification: %v", err)
		}
	}

	count, err := uc.engagementRepo.SubscriberCount(creatorID)
	if err != nil {
		return false, 0, err
	}
	return subscribed, count, nil
}
