package database

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydemo/internal/errs"
	"querydemo/internal/query"
	"querydemo/internal/schema"
)

type observation struct {
	kind query.Kind
	err  error
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveStatement(kind query.Kind, _ time.Duration, err error) {
	o.seen = append(o.seen, observation{kind: kind, err: err})
}

func newRunner(t *testing.T) (*Runner, sqlmock.Sqlmock, *recordingObserver) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	obs := &recordingObserver{}
	return NewRunner(NewTransactor(db), zerolog.Nop(), obs), mock, obs
}

func TestRunner_Exec(t *testing.T) {
	ctx := context.Background()

	t.Run("returns affected rows", func(t *testing.T) {
		r, mock, obs := newRunner(t)
		mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?)").
			WithArgs("Sean").
			WillReturnResult(sqlmock.NewResult(1, 1))

		n, err := r.Exec(ctx, query.InsertInto(schema.Users).Values(query.R(schema.UserName.Eq("Sean"))))
		assert.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, []observation{{kind: query.KindInsert}}, obs.seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps driver errors", func(t *testing.T) {
		r, mock, obs := newRunner(t)
		mock.ExpectExec("INSERT INTO `users` () VALUES ()").
			WillReturnError(&mysql.MySQLError{Number: 1364, Message: "Field 'name' doesn't have a default value"})

		_, err := r.Exec(ctx, query.InsertInto(schema.Users).DefaultValues())

		var dbErr *errs.DatabaseError
		require.ErrorAs(t, err, &dbErr)
		assert.Equal(t, errs.CodeNoDefault, dbErr.Code)
		assert.Equal(t, "INSERT INTO `users` () VALUES () -- binds: []", dbErr.Statement)
		assert.Len(t, obs.seen, 1)
		assert.Error(t, obs.seen[0].err)
	})

	t.Run("build errors never reach the database", func(t *testing.T) {
		r, mock, obs := newRunner(t)

		_, err := r.Exec(ctx, query.InsertInto(schema.Users).Values(nil, nil))
		assert.ErrorIs(t, err, query.ErrEmptyBatch)
		assert.Empty(t, obs.seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunner_QueryRow(t *testing.T) {
	ctx := context.Background()
	r, mock, _ := newRunner(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var n int64
	require.NoError(t, r.QueryRow(ctx, query.Count(schema.Users), &n))
	assert.Equal(t, int64(3), n)

	mock.ExpectQuery("SELECT `users`.`id` FROM `users` ORDER BY `users`.`id` DESC LIMIT ?").
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)

	var id int32
	err := r.QueryRow(ctx, query.Select(schema.UserID).From(schema.Users).OrderBy(schema.UserID.Desc()).Limit(1), &id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_NoRowsLoggedAtDebug(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	r := NewRunner(NewTransactor(db), zerolog.New(&buf).Level(zerolog.DebugLevel), nil)

	mock.ExpectQuery("SELECT `users`.`id` FROM `users` ORDER BY `users`.`id` DESC LIMIT ?").
		WithArgs(int64(1)).
		WillReturnError(sql.ErrNoRows)

	var id int32
	err = r.QueryRow(context.Background(), query.Select(schema.UserID).From(schema.Users).OrderBy(schema.UserID.Desc()).Limit(1), &id)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.NotContains(t, buf.String(), `"level":"error"`)
}

func TestRunner_QueryUsesTransactionFromContext(t *testing.T) {
	ctx := context.Background()
	r, mock, _ := newRunner(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `posts`.`title` FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("hello"))
	mock.ExpectCommit()

	err := r.Transactor().WithinTx(ctx, func(ctx context.Context) error {
		rows, err := r.Query(ctx, query.Select(schema.PostTitle).From(schema.Posts))
		if err != nil {
			return err
		}
		defer rows.Close()
		var titles []string
		for rows.Next() {
			var s string
			if err := rows.Scan(&s); err != nil {
				return err
			}
			titles = append(titles, s)
		}
		assert.Equal(t, []string{"hello"}, titles)
		return rows.Err()
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Code
	}{
		{"duplicate", &mysql.MySQLError{Number: 1062}, errs.CodeDuplicate},
		{"not null", &mysql.MySQLError{Number: 1048}, errs.CodeNotNull},
		{"no default", &mysql.MySQLError{Number: 1364}, errs.CodeNoDefault},
		{"foreign key", &mysql.MySQLError{Number: 1452}, errs.CodeForeignKey},
		{"syntax", &mysql.MySQLError{Number: 1064}, errs.CodeSyntax},
		{"unknown number", &mysql.MySQLError{Number: 9999}, errs.CodeOther},
		{"non driver", errors.New("broken pipe"), errs.CodeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errs.HasCode(mapError(tt.err, "stmt"), tt.want))
		})
	}

	assert.ErrorIs(t, mapError(sql.ErrNoRows, ""), sql.ErrNoRows)
	assert.False(t, errs.HasCode(mapError(context.Canceled, ""), errs.CodeOther))
	assert.NoError(t, mapError(nil, ""))
}
