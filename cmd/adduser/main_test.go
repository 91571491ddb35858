package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydemo/internal/config"
	"querydemo/internal/server"
)

func newServer(t *testing.T) (*server.Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := server.NewWithDB(&config.AppConfig{}, zerolog.Nop(), db)
	require.NoError(t, err)
	return s, mock
}

func TestRun(t *testing.T) {
	s, mock := newServer(t)

	mock.ExpectExec("INSERT INTO `users` () VALUES ()").
		WillReturnError(&mysql.MySQLError{Number: 1364, Message: "Field 'name' doesn't have a default value"})
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?)").
		WithArgs("Sean").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?)").
		WithArgs("Tess", "Brown").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?)").
		WithArgs("Sean", "Black").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, DEFAULT)").
		WithArgs("Ruby").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?), (?)").
		WithArgs("Sean", "Tess").WillReturnResult(sqlmock.NewResult(6, 2))
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?), (DEFAULT)").
		WithArgs("Sean").
		WillReturnError(&mysql.MySQLError{Number: 1364, Message: "Field 'name' doesn't have a default value"})
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?), (?, ?)").
		WithArgs("Sean", "Black", "Tess", "Brown").WillReturnResult(sqlmock.NewResult(8, 2))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?), (?, DEFAULT)").
		WithArgs("Sean", "Black", "Ruby").WillReturnResult(sqlmock.NewResult(10, 2))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?), (?, ?)").
		WithArgs("Sean", "Black", "Tess", "Brown").WillReturnResult(sqlmock.NewResult(12, 2))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?)").
		WithArgs("Ruby").WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectQuery("SELECT `users`.`id` FROM `users` ORDER BY `users`.`id` DESC LIMIT ?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
	mock.ExpectCommit()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), s, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "some error : database error 1364 (NO_DEFAULT)")
	assert.Equal(t,
		"insert_single_column affected_row = 1\n"+
			"insert_multiple_columns affected_row = 1\n"+
			"insert_single_column_batch_with_default  database error 1364 (NO_DEFAULT): Field 'name' doesn't have a default value\n"+
			"return id = 13\n",
		stdout.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_TupleBatchCountMismatch(t *testing.T) {
	s, mock := newServer(t)

	mock.ExpectExec("INSERT INTO `users` () VALUES ()").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?)").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?)").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?)").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, DEFAULT)").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?), (?)").WillReturnResult(sqlmock.NewResult(7, 2))
	mock.ExpectExec("INSERT INTO `users` (`name`) VALUES (?), (DEFAULT)").
		WillReturnError(&mysql.MySQLError{Number: 1364, Message: "no default"})
	mock.ExpectExec("INSERT INTO `users` (`name`, `hair_color`) VALUES (?, ?), (?, ?)").
		WillReturnResult(sqlmock.NewResult(8, 1))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), s, &stdout, &stderr)
	assert.EqualError(t, err, "insert tuple batch: affected 1 rows, want 2")
	assert.Empty(t, stderr.String())
}
