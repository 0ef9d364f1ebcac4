package persistent

import (
	"testing"
	"time"

	"skillstream/internal/entity"
	"skillstream/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestUserMapper_RoundTrip(t *testing.T) {
	now := time.Now()
	e := &entity.User{
		ID:        "user-1",
		Email:     "alice@test.com",
		Username:  "alice",
		Password:  "hashed",
		IsCreator: true,
		IsStudent: true,
		Bio:       "Go instructor",
		AvatarURL: "https://example.com/a.png",
		CreatedAt: now,
		UpdatedAt: now,
	}

	assert.Equal(t, e, ToUserEntity(ToUserModel(e)))
}

func TestVideoMapper_RoundTrip(t *testing.T) {
	now := time.Now()
	e := &entity.Video{
		ID:           "video-1",
		CreatorID:    "user-1",
		Title:        "Intro to Go Generics",
		Description:  "Type parameters from zero to production.",
		VideoURL:     "https://example.com/v.mp4",
		ThumbnailURL: "https://example.com/t.jpg",
		Views:        42,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	assert.Equal(t, e, ToVideoEntity(ToVideoModel(e)))
}

func TestMapper_NilSafety(t *testing.T) {
	assert.Nil(t, ToUserEntity(nil))
	assert.Nil(t, ToUserModel(nil))
	assert.Nil(t, ToVideoEntity(nil))
	assert.Nil(t, ToVideoModel(nil))
	assert.Nil(t, ToCommentEntity(nil, "alice"))
	assert.Nil(t, ToLikeEntity(nil))
	assert.Nil(t, ToSubscriptionEntity(nil))
}

func TestCommentMapper_AttachesUsername(t *testing.T) {
	m := &model.CommentModel{
		ID:      "comment-1",
		VideoID: "video-1",
		UserID:  "user-1",
		Text:    "Great video",
	}

	e := ToCommentEntity(m, "alice")
	assert.Equal(t, "alice", e.Username)
	assert.Equal(t, "Great video", e.Text)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `under\_score`, escapeLike("under_score"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
