package persistent

import (
	"skillstream/internal/entity"
	"skillstream/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		IsCreator: m.IsCreator,
		IsStudent: m.IsStudent,
		Bio:       m.Bio,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Username:  e.Username,
		Password:  e.Password,
		IsCreator: e.IsCreator,
		IsStudent: e.IsStudent,
		Bio:       e.Bio,
		AvatarURL: e.AvatarURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:           m.ID,
		CreatorID:    m.CreatorID,
		Title:        m.Title,
		Description:  m.Description,
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		Views:        m.Views,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToVideoModel(e *entity.Video) *model.VideoModel {
	if e == nil {
		return nil
	}

	return &model.VideoModel{
		ID:           e.ID,
		CreatorID:    e.CreatorID,
		Title:        e.Title,
		Description:  e.Description,
		VideoURL:     e.VideoURL,
		ThumbnailURL: e.ThumbnailURL,
		Views:        e.Views,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel, username string) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		UserID:    m.UserID,
		Username:  username,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func ToLikeEntity(m *model.LikeModel) *entity.Like {
	if m == nil {
		return nil
	}

	return &entity.Like{
		ID:        m.ID,
		UserID:    m.UserID,
		VideoID:   m.VideoID,
		CreatedAt: m.CreatedAt,
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		CreatorID:    m.CreatorID,
		CreatedAt:    m.CreatedAt,
	}
}
