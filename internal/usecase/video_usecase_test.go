package usecase

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"skillstream/internal/entity"
	"skillstream/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newVideoUseCase(
	videoRepo *MockVideoRepository,
	engagementRepo *MockEngagementRepository,
	userRepo *MockUserRepository,
) VideoUseCase {
	return NewVideoUseCase(videoRepo, engagementRepo, userRepo, nil, nil, nil, logger.New())
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 2, 500, 2, MaxPageSize},
		{"within bounds", 3, 50, 3, 50},
		{"negative page size", 1, -1, 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := ClampPage(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestList_AttachesCountsInBulk(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	summaries := []*entity.VideoSummary{
		{Video: entity.Video{ID: "v1"}, CreatorUsername: "alice"},
		{Video: entity.Video{ID: "v2"}, CreatorUsername: "bob"},
	}
	videoRepo.On("List", "go", 20, 0).Return(summaries, int64(2), nil)
	// One grouped query per counter for the whole page.
	engagementRepo.On("LikeCounts", []string{"v1", "v2"}).Return(map[string]int64{"v1": 3}, nil)
	engagementRepo.On("CommentCounts", []string{"v1", "v2"}).Return(map[string]int64{"v2": 7}, nil)

	result, total, err := uc.List("go", 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(3), result[0].LikeCount)
	assert.Equal(t, int64(0), result[0].CommentCount)
	assert.Equal(t, int64(0), result[1].LikeCount)
	assert.Equal(t, int64(7), result[1].CommentCount)
	engagementRepo.AssertExpectations(t)
}

func TestList_ClampsPagination(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	videoRepo.On("List", "", MaxPageSize, MaxPageSize).Return([]*entity.VideoSummary{}, int64(0), nil)

	_, _, err := uc.List("", 2, 9999)

	assert.NoError(t, err)
	videoRepo.AssertExpectations(t)
}

func TestListByCreator_UnknownCreatorIsEmpty(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	// An unknown creator has no videos; that is an empty page, not an error.
	videoRepo.On("ListByCreator", "ghost", 20, 0).Return([]*entity.VideoSummary{}, int64(0), nil)

	videos, total, err := uc.ListByCreator("ghost", 1, 20)

	assert.NoError(t, err)
	assert.Empty(t, videos)
	assert.Equal(t, int64(0), total)
}

func TestDetail_WithViewerState(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	videoRepo.On("GetByID", "v1").Return(&entity.Video{ID: "v1", CreatorID: "creator-1", Views: 100}, nil)
	userRepo.On("UsernamesByIDs", []string{"creator-1"}).Return(map[string]string{"creator-1": "alice"}, nil)
	engagementRepo.On("LikeCount", "v1").Return(int64(12), nil)
	engagementRepo.On("ListComments", "v1", 100, 0).Return([]*entity.Comment{
		{ID: "c1", VideoID: "v1", Username: "bob", Text: "first"},
		{ID: "c2", VideoID: "v1", Username: "eve", Text: "second"},
	}, int64(4), nil)
	engagementRepo.On("IsLiked", "viewer-1", "v1").Return(true, nil)
	engagementRepo.On("IsSubscribed", "viewer-1", "creator-1").Return(false, nil)

	detail, err := uc.Detail("v1", "viewer-1")

	assert.NoError(t, err)
	assert.Equal(t, "alice", detail.CreatorUsername)
	assert.Equal(t, int64(12), detail.LikeCount)
	assert.Equal(t, int64(4), detail.CommentCount)
	assert.Len(t, detail.Comments, 2)
	assert.Equal(t, "first", detail.Comments[0].Text)
	assert.True(t, detail.Liked)
	assert.False(t, detail.Subscribed)
}

func TestDetail_NotFound(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	videoRepo.On("GetByID", "ghost").Return(nil, entity.ErrNotFound)

	_, err := uc.Detail("ghost", "viewer-1")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

// makeFileHeader builds a real multipart file header, the same shape gin
// hands to the upload handler.
func makeFileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	return form.File[field][0]
}

func TestUpload_Success(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	storage := new(MockMediaStorage)
	uc := NewVideoUseCase(videoRepo, engagementRepo, userRepo, storage, nil, nil, logger.New())

	file := makeFileHeader(t, "video", "generics.mp4", "not a real codec")
	videoURL := "https://skillstream-media.s3.us-east-1.amazonaws.com/videos/user-1/abc.mp4"

	storage.On("UploadFile", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "videos/user-1/") && strings.HasSuffix(key, ".mp4")
	}), mock.Anything, mock.Anything).Return(videoURL, nil)
	// Create is the call that inserts the video and flips is_creator for a
	// first-time uploader in one transaction.
	videoRepo.On("Create", mock.AnythingOfType("*entity.Video")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Video).ID = "video-1"
	}).Return(nil)

	video, err := uc.Upload("user-1", "Intro to Generics", "a full walkthrough", file, nil)

	assert.NoError(t, err)
	assert.Equal(t, "video-1", video.ID)
	assert.Equal(t, "user-1", video.CreatorID)
	assert.Equal(t, "Intro to Generics", video.Title)
	assert.Equal(t, videoURL, video.VideoURL)
	storage.AssertExpectations(t)
	videoRepo.AssertExpectations(t)
}

func TestUpload_StorageFailureSkipsCreate(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	storage := new(MockMediaStorage)
	uc := NewVideoUseCase(videoRepo, engagementRepo, userRepo, storage, nil, nil, logger.New())

	file := makeFileHeader(t, "video", "generics.mp4", "not a real codec")
	storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	_, err := uc.Upload("user-1", "Intro to Generics", "a full walkthrough", file, nil)

	assert.Error(t, err)
	videoRepo.AssertNotCalled(t, "Create")
}

func TestUpload_MissingTitle(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	_, err := uc.Upload("user-1", "   ", "desc", nil, nil)

	assert.ErrorIs(t, err, entity.ErrValidation)
	videoRepo.AssertNotCalled(t, "Create")
}

func TestUpload_MissingFile(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	_, err := uc.Upload("user-1", "My Video", "a full walkthrough", nil, nil)

	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpload_ShortTitle(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	_, err := uc.Upload("user-1", "Go", "a full walkthrough", nil, nil)

	assert.ErrorIs(t, err, entity.ErrValidation)
	videoRepo.AssertNotCalled(t, "Create")
}

func TestUpload_ShortDescription(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	_, err := uc.Upload("user-1", "My Video", "short", nil, nil)

	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpload_TitleLengthCountsCharacters(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	// Three characters in nine bytes clear the minimum; the upload then
	// fails only on the missing file.
	_, err := uc.Upload("user-1", "日本語", "a full walkthrough", nil, nil)
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.ErrorContains(t, err, "video file is required")

	// Two characters are still too short.
	_, err = uc.Upload("user-1", "日本", "a full walkthrough", nil, nil)
	assert.ErrorContains(t, err, "title must be at least")

	// A maximum-length multibyte title passes the upper bound too.
	_, err = uc.Upload("user-1", strings.Repeat("ü", maxTitleLength), "a full walkthrough", nil, nil)
	assert.ErrorContains(t, err, "video file is required")
}

func TestUpload_DescriptionLengthCountsCharacters(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	_, err := uc.Upload("user-1", "My Video", strings.Repeat("ü", minDescriptionLength), nil, nil)
	assert.ErrorContains(t, err, "video file is required")

	_, err = uc.Upload("user-1", "My Video", strings.Repeat("ü", minDescriptionLength-1), nil, nil)
	assert.ErrorContains(t, err, "description must be at least")
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	file := &multipart.FileHeader{Filename: "clip.exe"}
	_, err := uc.Upload("user-1", "My Video", "a full walkthrough", file, nil)

	assert.ErrorIs(t, err, entity.ErrValidation)
	videoRepo.AssertNotCalled(t, "Create")
}

func TestDelete_OnlyUploader(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	videoRepo.On("GetByID", "v1").Return(&entity.Video{ID: "v1", CreatorID: "creator-1"}, nil)

	err := uc.Delete("v1", "stranger")

	assert.ErrorIs(t, err, entity.ErrPermission)
	videoRepo.AssertNotCalled(t, "Delete")
}

func TestDelete_NotFound(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	engagementRepo := new(MockEngagementRepository)
	userRepo := new(MockUserRepository)
	uc := newVideoUseCase(videoRepo, engagementRepo, userRepo)

	videoRepo.On("GetByID", "ghost").Return(nil, entity.ErrNotFound)

	err := uc.Delete("ghost", "user-1")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestObjectKeyFromURL(t *testing.T) {
	assert.Equal(t,
		"videos/user-1/abc.mp4",
		objectKeyFromURL("https://skillstream-media.s3.us-east-1.amazonaws.com/videos/user-1/abc.mp4"),
	)
	assert.Equal(t,
		"videos/user-1/abc.mp4",
		objectKeyFromURL("http://localhost:9000/skillstream-media/videos/user-1/abc.mp4"),
	)
	assert.Equal(t, "", objectKeyFromURL(""))
}
