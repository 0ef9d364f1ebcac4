package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"skillstream/internal/entity"
	"skillstream/internal/repo/persistent"
	"skillstream/pkg/logger"
	"skillstream/pkg/queue"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	minTitleLength       = 3
	maxTitleLength       = 255
	minDescriptionLength = 10

	// Detail embeds this many comments; deeper pages come from the
	// comments endpoint.
	maxDetailComments = 100

	videoDetailCacheTTL = 30 * time.Second
)

// allowedVideoExtensions is the upload whitelist, keyed by lowercased
// filename extension.
var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
}

func videoDetailCacheKey(videoID string) string {
	return "video_detail:" + videoID
}

type VideoUseCase interface {
	Upload(userID, title, description string, videoFile, thumbnailFile *multipart.FileHeader) (*entity.Video, error)
	List(search string, page, pageSize int) ([]*entity.VideoSummary, int64, error)
	ListByCreator(creatorID string, page, pageSize int) ([]*entity.VideoSummary, int64, error)
	SubscribedFeed(userID string, page, pageSize int) ([]*entity.VideoSummary, int64, error)
	Detail(videoID, viewerID string) (*entity.VideoDetail, error)
	Delete(videoID, userID string) error
}

type videoUseCase struct {
	videoRepo      persistent.VideoRepository
	engagementRepo persistent.EngagementRepository
	userRepo       persistent.UserRepository
	storage        MediaStorage
	queueClient    *queue.Client
	redisClient    *redis.Client
	logger         *logger.Logger

	detailGroup singleflight.Group
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	engagementRepo persistent.EngagementRepository,
	userRepo persistent.UserRepository,
	storage MediaStorage,
	queueClient *queue.Client,
	redisClient *redis.Client,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:      videoRepo,
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		storage:        storage,
		queueClient:    queueClient,
		redisClient:    redisClient,
		logger:         logger,
	}
}

// ClampPage normalizes pagination input: non-positive pages become the first
// page and the page size is bounded to keep queries cheap.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (uc *videoUseCase) Upload(userID, title, description string, videoFile, thumbnailFile *multipart.FileHeader) (*entity.Video, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	// Limits count characters, not bytes, so multibyte titles are not
	// penalized.
	if utf8.RuneCountInString(title) < minTitleLength {
		return nil, fmt.Errorf("%w: title must be at least %d characters", entity.ErrValidation, minTitleLength)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", entity.ErrValidation, maxTitleLength)
	}
	if description != "" && utf8.RuneCountInString(description) < minDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at least %d characters", entity.ErrValidation, minDescriptionLength)
	}
	if videoFile == nil {
		return nil, fmt.Errorf("%w: video file is required", entity.ErrValidation)
	}
	ext := strings.ToLower(fileExtension(videoFile.Filename))
	if !allowedVideoExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported video format %q", entity.ErrValidation, ext)
	}

	src, err := videoFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	fileKey := fmt.Sprintf("videos/%s/%s%s", userID, uuid.New().String(), ext)
	contentType := videoFile.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	videoURL, err := uc.storage.UploadFile(fileKey, src, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload video to S3: %v", err)
		return nil, fmt.Errorf("failed to upload video")
	}

	var thumbnailURL string
	if thumbnailFile != nil {
		thumbSrc, err := thumbnailFile.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open thumbnail: %w", err)
		}
		defer thumbSrc.Close()

		thumbKey := fmt.Sprintf("thumbnails/%s/%s%s", userID, uuid.New().String(), fileExtension(thumbnailFile.Filename))
		thumbType := thumbnailFile.Header.Get("Content-Type")
		if thumbType == "" {
			thumbType = "image/jpeg"
		}

		thumbnailURL, err = uc.storage.UploadFile(thumbKey, thumbSrc, thumbType)
		if err != nil {
			uc.logger.Error("Failed to upload thumbnail to S3: %v", err)
			return nil, fmt.Errorf("failed to upload thumbnail")
		}
	}

	video := &entity.Video{
		CreatorID:    userID,
		Title:        title,
		Description:  description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
	}

	// Create also promotes a first-time uploader to creator in the same
	// transaction.
	if err := uc.videoRepo.Create(video); err != nil {
		uc.logger.Error("Failed to create video: %v", err)
		return nil, fmt.Errorf("failed to create video")
	}

	if uc.queueClient != nil {
		task := map[string]interface{}{
			"type":       "new_video",
			"video_id":   video.ID,
			"creator_id": userID,
			"title":      video.Title,
			"priority":   5,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Warn("Failed to publish new video notification: %v", err)
		}
	}

	return video, nil
}

func (uc *videoUseCase) List(search string, page, pageSize int) ([]*entity.VideoSummary, int64, error) {
	page, pageSize = ClampPage(page, pageSize)
	summaries, total, err := uc.videoRepo.List(search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.attachCounts(summaries); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// ListByCreator returns a creator's videos. An unknown creator simply has no
// videos, so the result is an empty page rather than an error.
func (uc *videoUseCase) ListByCreator(creatorID string, page, pageSize int) ([]*entity.VideoSummary, int64, error) {
	page, pageSize = ClampPage(page, pageSize)
	summaries, total, err := uc.videoRepo.ListByCreator(creatorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.attachCounts(summaries); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (uc *videoUseCase) SubscribedFeed(userID string, page, pageSize int) ([]*entity.VideoSummary, int64, error) {
	page, pageSize = ClampPage(page, pageSize)
	summaries, total, err := uc.videoRepo.ListSubscribed(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.attachCounts(summaries); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// attachCounts fills like and comment counts for a page of summaries with two
// grouped queries regardless of page size.
func (uc *videoUseCase) attachCounts(summaries []*entity.VideoSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	ids := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}

	likeCounts, err := uc.engagementRepo.LikeCounts(ids)
	if err != nil {
		return err
	}
	commentCounts, err := uc.engagementRepo.CommentCounts(ids)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		s.LikeCount = likeCounts[s.ID]
		s.CommentCount = commentCounts[s.ID]
	}
	return nil
}

// videoDetailShared is the viewer-independent part of a detail response. It
// is what gets cached in Redis and deduplicated via singleflight.
type videoDetailShared struct {
	Summary  entity.VideoSummary `json:"summary"`
	Comments []*entity.Comment   `json:"comments"`
}

// Detail returns the video with counts, the comment thread oldest-first and
// viewer-specific flags. The viewer-independent part is cached briefly in
// Redis, and concurrent cache misses for the same video share one database
// round trip via singleflight.
func (uc *videoUseCase) Detail(videoID, viewerID string) (*entity.VideoDetail, error) {
	shared, err := uc.detailShared(videoID)
	if err != nil {
		return nil, err
	}

	detail := &entity.VideoDetail{
		VideoSummary: shared.Summary,
		Comments:     shared.Comments,
	}

	if viewerID != "" {
		liked, err := uc.engagementRepo.IsLiked(viewerID, videoID)
		if err != nil {
			return nil, err
		}
		subscribed, err := uc.engagementRepo.IsSubscribed(viewerID, shared.Summary.CreatorID)
		if err != nil {
			return nil, err
		}
		detail.Liked = liked
		detail.Subscribed = subscribed
	}

	return detail, nil
}

func (uc *videoUseCase) detailShared(videoID string) (*videoDetailShared, error) {
	key := videoDetailCacheKey(videoID)

	if uc.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		cached, err := uc.redisClient.Get(ctx, key).Result()
		cancel()
		if err == nil {
			var shared videoDetailShared
			if err := json.Unmarshal([]byte(cached), &shared); err == nil {
				return &shared, nil
			}
		}
	}

	result, err, _ := uc.detailGroup.Do(videoID, func() (interface{}, error) {
		video, err := uc.videoRepo.GetByID(videoID)
		if err != nil {
			return nil, err
		}

		usernames, err := uc.userRepo.UsernamesByIDs([]string{video.CreatorID})
		if err != nil {
			return nil, err
		}

		likeCount, err := uc.engagementRepo.LikeCount(videoID)
		if err != nil {
			return nil, err
		}

		comments, commentCount, err := uc.engagementRepo.ListComments(videoID, maxDetailComments, 0)
		if err != nil {
			return nil, err
		}

		shared := &videoDetailShared{
			Summary: entity.VideoSummary{
				Video:           *video,
				CreatorUsername: usernames[video.CreatorID],
				LikeCount:       likeCount,
				CommentCount:    commentCount,
			},
			Comments: comments,
		}

		if uc.redisClient != nil {
			if payload, err := json.Marshal(shared); err == nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				if err := uc.redisClient.Set(ctx, key, payload, videoDetailCacheTTL).Err(); err != nil {
					uc.logger.Warn("Failed to cache video detail: %v", err)
				}
				cancel()
			}
		}

		return shared, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*videoDetailShared), nil
}

// invalidateDetailCache drops the cached detail for a video after an
// engagement write, so the next read sees the new counts.
func invalidateDetailCache(redisClient *redis.Client, log *logger.Logger, videoID string) {
	if redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := redisClient.Del(ctx, videoDetailCacheKey(videoID)).Err(); err != nil {
		log.Warn("Failed to invalidate video detail cache: %v", err)
	}
}

func (uc *videoUseCase) Delete(videoID, userID string) error {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return err
	}

	if video.CreatorID != userID {
		return fmt.Errorf("%w: only the uploader can delete a video", entity.ErrPermission)
	}

	if err := uc.videoRepo.Delete(videoID); err != nil {
		return err
	}

	invalidateDetailCache(uc.redisClient, uc.logger, videoID)

	// Best-effort media cleanup; the database row is already gone.
	if key := objectKeyFromURL(video.VideoURL); key != "" {
		if err := uc.storage.DeleteFile(key); err != nil {
			uc.logger.Warn("Failed to delete video file from S3: %v", err)
		}
	}
	if key := objectKeyFromURL(video.ThumbnailURL); key != "" {
		if err := uc.storage.DeleteFile(key); err != nil {
			uc.logger.Warn("Failed to delete thumbnail from S3: %v", err)
		}
	}

	return nil
}

// objectKeyFromURL recovers the S3 object key from a stored media URL. It
// handles both the AWS virtual-hosted style and the MinIO path style used in
// development.
func objectKeyFromURL(mediaURL string) string {
	if mediaURL == "" {
		return ""
	}

	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return ""
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	if strings.Contains(parsed.Host, "amazonaws.com") {
		return path
	}

	// MinIO path style: /<bucket>/<key>
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return ""
}
