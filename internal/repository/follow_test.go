package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestFollowRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	t.Run("New edge inserts", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO follows (follower_id, following_id, created_at)`)).
			WithArgs("user_1", "user_2").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, "user_1", "user_2")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate edge is absorbed", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO follows (follower_id, following_id, created_at)`)).
			WithArgs("user_1", "user_2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Create(ctx, "user_1", "user_2")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFollowRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
		WithArgs("user_1", "user_2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, "user_1", "user_2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_IsFollowing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
		WithArgs("user_1", "user_2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	following, err := repo.IsFollowing(ctx, "user_1", "user_2")
	assert.NoError(t, err)
	assert.False(t, following)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_GetFollowingIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"following_id"}).
		AddRow("user_2").
		AddRow("user_3")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "following_id" FROM "follows" WHERE follower_id = $1`)).
		WithArgs("user_1").
		WillReturnRows(rows)

	ids, err := repo.GetFollowingIDs(ctx, "user_1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"user_2", "user_3"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE following_id = $1`)).
		WithArgs("user_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE follower_id = $1`)).
		WithArgs("user_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	followers, following, err := repo.Counts(ctx, "user_1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), followers)
	assert.Equal(t, int64(3), following)
	assert.NoError(t, mock.ExpectationsWereMet())
}
