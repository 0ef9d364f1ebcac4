package persistent

import (
	"errors"

	"skillstream/internal/entity"
	"skillstream/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository interface {
	CreateLike(userID, videoID string) (bool, error)
	DeleteLike(userID, videoID string) (bool, error)
	IsLiked(userID, videoID string) (bool, error)
	LikeCount(videoID string) (int64, error)
	LikeCounts(videoIDs []string) (map[string]int64, error)

	CreateComment(comment *entity.Comment) error
	GetCommentByID(id string) (*entity.Comment, error)
	ListComments(videoID string, limit, offset int) ([]*entity.Comment, int64, error)
	DeleteComment(id string) error
	CommentCounts(videoIDs []string) (map[string]int64, error)

	CreateSubscription(subscriberID, creatorID string) (bool, error)
	DeleteSubscription(subscriberID, creatorID string) (bool, error)
	IsSubscribed(subscriberID, creatorID string) (bool, error)
	SubscriberCount(creatorID string) (int64, error)
	SubscriberIDs(creatorID string) ([]string, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// CreateLike inserts the like if absent. ON CONFLICT DO NOTHING makes the
// toggle idempotent under concurrent requests; the return value reports
// whether this call inserted the row.
func (r *engagementRepository) CreateLike(userID, videoID string) (bool, error) {
	likeModel := &model.LikeModel{UserID: userID, VideoID: videoID}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(likeModel)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) DeleteLike(userID, videoID string) (bool, error) {
	result := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&model.LikeModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) IsLiked(userID, videoID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) LikeCount(videoID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// LikeCounts returns the like count per video in one grouped query.
func (r *engagementRepository) LikeCounts(videoIDs []string) (map[string]int64, error) {
	return r.groupedCounts(&model.LikeModel{}, videoIDs)
}

func (r *engagementRepository) CreateComment(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		ID:      comment.ID,
		VideoID: comment.VideoID,
		UserID:  comment.UserID,
		Text:    comment.Text,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

func (r *engagementRepository) GetCommentByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToCommentEntity(&commentModel, ""), nil
}

// ListComments returns a page of comments oldest-first with usernames joined
// in, so rendering a thread needs no per-comment lookups.
func (r *engagementRepository) ListComments(videoID string, limit, offset int) ([]*entity.Comment, int64, error) {
	query := r.db.Table("comments").
		Select("comments.*, users.username AS username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.deleted_at IS NULL AND comments.video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		model.CommentModel
		Username string
	}
	if err := query.Order("comments.created_at ASC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comments[i] = ToCommentEntity(&rows[i].CommentModel, rows[i].Username)
	}
	return comments, total, nil
}

func (r *engagementRepository) DeleteComment(id string) error {
	result := r.db.Delete(&model.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *engagementRepository) CommentCounts(videoIDs []string) (map[string]int64, error) {
	return r.groupedCounts(&model.CommentModel{}, videoIDs)
}

func (r *engagementRepository) CreateSubscription(subscriberID, creatorID string) (bool, error) {
	subModel := &model.SubscriptionModel{SubscriberID: subscriberID, CreatorID: creatorID}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "creator_id"}},
		DoNothing: true,
	}).Create(subModel)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) DeleteSubscription(subscriberID, creatorID string) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND creator_id = ?", subscriberID, creatorID).Delete(&model.SubscriptionModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) IsSubscribed(subscriberID, creatorID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).Where("subscriber_id = ? AND creator_id = ?", subscriberID, creatorID).Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) SubscriberCount(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

// SubscriberIDs returns the IDs of everyone subscribed to a creator, used
// for notification fan-out.
func (r *engagementRepository) SubscriberIDs(creatorID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("creator_id = ?", creatorID).
		Pluck("subscriber_id", &ids).Error
	return ids, err
}

func (r *engagementRepository) groupedCounts(m interface{}, videoIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		VideoID string
		Count   int64
	}
	err := r.db.Model(m).
		Select("video_id, COUNT(*) AS count").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.VideoID] = row.Count
	}
	return counts, nil
}
