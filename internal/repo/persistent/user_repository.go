package persistent

import (
	"errors"
	"fmt"

	"skillstream/internal/entity"
	"skillstream/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UsernamesByIDs(ids []string) (map[string]string, error)
	Stats(userID string) (*entity.AccountStats, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email or username already taken", entity.ErrConflict)
		}
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Save(userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email or username already taken", entity.ErrConflict)
		}
		return err
	}
	return nil
}

// UsernamesByIDs resolves usernames for a set of user IDs in one query.
func (r *userRepository) UsernamesByIDs(ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []struct {
		ID       string
		Username string
	}
	if err := r.db.Model(&model.UserModel{}).Select("id, username").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row.Username
	}
	return result, nil
}

func (r *userRepository) Stats(userID string) (*entity.AccountStats, error) {
	stats := &entity.AccountStats{}

	if err := r.db.Model(&model.VideoModel{}).Where("creator_id = ?", userID).Count(&stats.UploadedVideos).Error; err != nil {
		return nil, err
	}

	var totalViews struct {
		Total int64
	}
	if err := r.db.Model(&model.VideoModel{}).Select("COALESCE(SUM(views), 0) AS total").Where("creator_id = ?", userID).Scan(&totalViews).Error; err != nil {
		return nil, err
	}
	stats.TotalViews = totalViews.Total

	if err := r.db.Model(&model.SubscriptionModel{}).Where("subscriber_id = ?", userID).Count(&stats.Subscriptions).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.SubscriptionModel{}).Where("creator_id = ?", userID).Count(&stats.Subscribers).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.CommentModel{}).Where("user_id = ?", userID).Count(&stats.Comments).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
