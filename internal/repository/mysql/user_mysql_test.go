package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydemo/internal/database"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	"querydemo/internal/schema"
)

const selectUsers = "SELECT `users`.`id`, `users`.`name`, `users`.`hair_color`, `users`.`created_at`, `users`.`updated_at` FROM `users`"

var userColumns = []string{"id", "name", "hair_color", "created_at", "updated_at"}

func newRunner(t *testing.T) (*database.Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return database.NewRunner(database.NewTransactor(db), zerolog.Nop(), nil), mock
}

func TestUserMySQL_Inserts(t *testing.T) {
	ctx := context.Background()
	run, mock := newRunner(t)
	repo := NewUserMySQL(run)

	mock.ExpectExec("INSERT INTO `users` () VALUES ()").
		WillReturnResult(sqlmock.NewResult(1, 1))
	n, err := repo.InsertDefault(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?), (?, DEFAULT)").
		WithArgs("Sean", "Black", "Ruby").
		WillReturnResult(sqlmock.NewResult(2, 2))
	n, err = repo.Insert(ctx,
		query.R(schema.UserName.Eq("Sean"), schema.UserHairColor.Eq("Black")),
		query.R(schema.UserName.Eq("Ruby"), schema.UserHairColor.Default()),
	)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mock.ExpectExec("REPLACE INTO `users` (`id`, `name`) VALUES (?, ?)").
		WithArgs(1, "Jim").
		WillReturnResult(sqlmock.NewResult(1, 2))
	n, err = repo.Replace(ctx, query.R(schema.UserID.Eq(1), schema.UserName.Eq("Jim")))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mock.ExpectExec("INSERT IGNORE INTO `users` (`id`, `name`) VALUES (?, ?)").
		WithArgs(1, "Jim").
		WillReturnResult(sqlmock.NewResult(0, 0))
	n, err = repo.InsertIgnore(ctx, query.R(schema.UserID.Eq(1), schema.UserName.Eq("Jim")))
	assert.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserMySQL_InsertEmptyBatch(t *testing.T) {
	run, mock := newRunner(t)
	repo := NewUserMySQL(run)

	_, err := repo.Insert(context.Background())
	assert.ErrorIs(t, err, query.ErrEmptyBatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserMySQL_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	run, mock := newRunner(t)
	repo := NewUserMySQL(run)

	mock.ExpectExec("UPDATE `users` SET `name` = ? WHERE `users`.`id` = ?").
		WithArgs("James", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	n, err := repo.Update(ctx, schema.UserID.Eq(1), schema.UserName.Eq("James"))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectExec("DELETE FROM `users`").
		WillReturnResult(sqlmock.NewResult(0, 7))
	n, err = repo.Delete(ctx, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserMySQL_Find(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("filters orders and limits", func(t *testing.T) {
		run, mock := newRunner(t)
		repo := NewUserMySQL(run)

		mock.ExpectQuery(selectUsers+" WHERE `users`.`name` = ? ORDER BY `users`.`created_at` DESC, `users`.`id` DESC LIMIT ?").
			WithArgs("Ruby", int64(5)).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(4, "Ruby", nil, now, now).
				AddRow(3, "Ruby", "red", now, now))

		seq := repo.Find(ctx, repository.UserQuery{
			Where:   schema.UserName.Eq("Ruby"),
			OrderBy: []query.Order{schema.UserCreatedAt.Desc(), schema.UserID.Desc()},
			Limit:   5,
		})

		var got []model.User
		for u, err := range seq {
			require.NoError(t, err)
			got = append(got, u)
		}
		require.Len(t, got, 2)
		assert.Equal(t, int32(4), got[0].ID)
		assert.Nil(t, got[0].HairColor)
		require.NotNil(t, got[1].HairColor)
		assert.Equal(t, "red", *got[1].HairColor)

		for _, err := range seq {
			assert.ErrorIs(t, err, repository.ErrCursorConsumed)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("early break closes the cursor", func(t *testing.T) {
		run, mock := newRunner(t)
		repo := NewUserMySQL(run)

		mock.ExpectQuery(selectUsers).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(1, "Sean", nil, now, now).
				AddRow(2, "Tess", nil, now, now)).
			RowsWillBeClosed()

		for u, err := range repo.Find(ctx, repository.UserQuery{}) {
			require.NoError(t, err)
			assert.Equal(t, "Sean", u.Name)
			break
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserMySQL_Latest(t *testing.T) {
	ctx := context.Background()
	run, mock := newRunner(t)
	repo := NewUserMySQL(run)
	now := time.Now().UTC()

	mock.ExpectQuery(selectUsers + " ORDER BY `users`.`id` DESC LIMIT ?").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "Tess", nil, now, now).
			AddRow(1, "Sean", nil, now, now))

	users, err := repo.Latest(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 1}, []int32{users[0].ID, users[1].ID})

	mock.ExpectQuery("SELECT `users`.`id` FROM `users` ORDER BY `users`.`id` DESC LIMIT ?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	id, err := repo.LatestID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserMySQL_NamesCountAll(t *testing.T) {
	ctx := context.Background()
	run, mock := newRunner(t)
	repo := NewUserMySQL(run)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT DISTINCT `users`.`name` FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Sean").AddRow("Tess"))
	names, err := repo.Names(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sean", "Tess"}, names)

	mock.ExpectQuery("SELECT `users`.`name` FROM `users` ORDER BY `users`.`id`").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	names, err = repo.Names(ctx, false, schema.UserID.Asc())
	require.NoError(t, err)
	assert.Empty(t, names)

	mock.ExpectQuery("SELECT COUNT(*) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mock.ExpectQuery("SELECT * FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Sean", "Black", now, now))
	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Black", *all[0].HairColor)

	assert.NoError(t, mock.ExpectationsWereMet())
}
