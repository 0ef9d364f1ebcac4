package usecase

import (
	"io"

	"skillstream/internal/entity"
	"skillstream/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

// MockMediaStorage is a mock implementation of MediaStorage
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStorage) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

var _ MediaStorage = (*MockMediaStorage)(nil)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UsernamesByIDs(ids []string) (map[string]string, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockUserRepository) Stats(userID string) (*entity.AccountStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AccountStats), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// MockVideoRepository is a mock implementation of persistent.VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(video *entity.Video) error {
	args := m.Called(video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetByID(id string) (*entity.Video, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoRepository) List(search string, limit, offset int) ([]*entity.VideoSummary, int64, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.VideoSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) ListByCreator(creatorID string, limit, offset int) ([]*entity.VideoSummary, int64, error) {
	args := m.Called(creatorID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.VideoSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) ListSubscribed(subscriberID string, limit, offset int) ([]*entity.VideoSummary, int64, error) {
	args := m.Called(subscriberID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.VideoSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVideoRepository) IncrementViews(id string) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

var _ persistent.VideoRepository = (*MockVideoRepository)(nil)

// MockEngagementRepository is a mock implementation of persistent.EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) CreateLike(userID, videoID string) (bool, error) {
	args := m.Called(userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) DeleteLike(userID, videoID string) (bool, error) {
	args := m.Called(userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) IsLiked(userID, videoID string) (bool, error) {
	args := m.Called(userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) LikeCount(videoID string) (int64, error) {
	args := m.Called(videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) LikeCounts(videoIDs []string) (map[string]int64, error) {
	args := m.Called(videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockEngagementRepository) CreateComment(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockEngagementRepository) GetCommentByID(id string) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockEngagementRepository) ListComments(videoID string, limit, offset int) ([]*entity.Comment, int64, error) {
	args := m.Called(videoID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEngagementRepository) DeleteComment(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockEngagementRepository) CommentCounts(videoIDs []string) (map[string]int64, error) {
	args := m.Called(videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockEngagementRepository) CreateSubscription(subscriberID, creatorID string) (bool, error) {
	args := m.Called(subscriberID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) DeleteSubscription(subscriberID, creatorID string) (bool, error) {
	args := m.Called(subscriberID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) IsSubscribed(subscriberID, creatorID string) (bool, error) {
	args := m.Called(subscriberID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) SubscriberCount(creatorID string) (int64, error) {
	args := m.Called(creatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) SubscriberIDs(creatorID string) ([]string, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ persistent.EngagementRepository = (*MockEngagementRepository)(nil)
