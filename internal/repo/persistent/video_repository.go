package persistent

import (
	"errors"
	"strings"

	"skillstream/internal/entity"
	"skillstream/internal/model"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	List(search string, limit, offset int) ([]*entity.VideoSummary, int64, error)
	ListByCreator(creatorID string, limit, offset int) ([]*entity.VideoSummary, int64, error)
	ListSubscribed(subscriberID string, limit, offset int) ([]*entity.VideoSummary, int64, error)
	Delete(id string) error
	IncrementViews(id string) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// Create inserts the video and promotes the uploader to creator in the same
// transaction, so a concurrent reader never sees a video whose owner is not
// yet a creator.
func (r *videoRepository) Create(video *entity.Video) error {
	videoModel := ToVideoModel(video)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(videoModel).Error; err != nil {
			return err
		}

		return tx.Model(&model.UserModel{}).
			Where("id = ? AND is_creator = ?", videoModel.CreatorID, false).
			Update("is_creator", true).Error
	})
	if err != nil {
		return err
	}

	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Where("id = ?", id).First(&videoModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}

// videoSummaryRow is the flat scan target for video+creator joins.
type videoSummaryRow struct {
	model.VideoModel
	CreatorUsername string
}

func toSummaries(rows []videoSummaryRow) []*entity.VideoSummary {
	summaries := make([]*entity.VideoSummary, len(rows))
	for i := range rows {
		summaries[i] = &entity.VideoSummary{
			Video:           *ToVideoEntity(&rows[i].VideoModel),
			CreatorUsername: rows[i].CreatorUsername,
		}
	}
	return summaries
}

func (r *videoRepository) List(search string, limit, offset int) ([]*entity.VideoSummary, int64, error) {
	query := r.db.Table("videos").
		Select("videos.*, users.username AS creator_username").
		Joins("JOIN users ON users.id = videos.creator_id").
		Where("videos.deleted_at IS NULL")

	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			"videos.title ILIKE ? OR videos.description ILIKE ? OR users.username ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []videoSummaryRow
	if err := query.Order("videos.created_at DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toSummaries(rows), total, nil
}

func (r *videoRepository) ListByCreator(creatorID string, limit, offset int) ([]*entity.VideoSummary, int64, error) {
	query := r.db.Table("videos").
		Select("videos.*, users.username AS creator_username").
		Joins("JOIN users ON users.id = videos.creator_id").
		Where("videos.deleted_at IS NULL AND videos.creator_id = ?", creatorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []videoSummaryRow
	if err := query.Order("videos.created_at DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toSummaries(rows), total, nil
}

func (r *videoRepository) ListSubscribed(subscriberID string, limit, offset int) ([]*entity.VideoSummary, int64, error) {
	query := r.db.Table("videos").
		Select("videos.*, users.username AS creator_username").
		Joins("JOIN users ON users.id = videos.creator_id").
		Joins("JOIN subscriptions ON subscriptions.creator_id = videos.creator_id").
		Where("videos.deleted_at IS NULL AND subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []videoSummaryRow
	if err := query.Order("videos.created_at DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toSummaries(rows), total, nil
}

// Delete removes the video together with its likes and comments.
func (r *videoRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("video_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.VideoModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}

// IncrementViews bumps the counter in a single statement and returns the new
// value, so concurrent views never lose updates.
func (r *videoRepository) IncrementViews(id string) (int64, error) {
	var views int64
	result := r.db.Raw(
		"UPDATE videos SET views = views + 1 WHERE id = ? AND deleted_at IS NULL RETURNING views",
		id,
	).Scan(&views)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, entity.ErrNotFound
	}
	return views, nil
}

// escapeLike neutralizes LIKE metacharacters so search terms match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
