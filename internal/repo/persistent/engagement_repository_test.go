package persistent

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEngagementRepository_CreateLikeInserts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEngagementRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "likes" .* ON CONFLICT \("user_id","video_id"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := repo.CreateLike("user-1", "video-1")

	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_CreateLikeExistingIsNoOp(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEngagementRepository(db)

	// The conflict swallows the duplicate; zero rows affected tells the
	// caller this request did not insert.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "likes" .* ON CONFLICT \("user_id","video_id"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	inserted, err := repo.CreateLike("user-1", "video-1")

	assert.NoError(t, err)
	assert.False(t, inserted)
}

func TestEngagementRepository_DeleteLikeReportsRemoval(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEngagementRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.DeleteLike("user-1", "video-1")

	assert.NoError(t, err)
	assert.True(t, removed)
}

func TestEngagementRepository_CreateSubscriptionExistingIsNoOp(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEngagementRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "subscriptions" .* ON CONFLICT \("subscriber_id","creator_id"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	inserted, err := repo.CreateSubscription("user-1", "creator-1")

	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEngagementRepository_ListCommentsOrdersOldestFirst(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEngagementRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`ORDER BY comments\.created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "username"}).
			AddRow("c1", "first", "alice").
			AddRow("c2", "second", "bob"))

	comments, total, err := repo.ListComments("video-1", 100, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
