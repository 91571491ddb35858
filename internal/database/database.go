package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/go-sql-driver/mysql"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"querydemo/internal/config"
	"querydemo/internal/errs"
)

var sqlOpen = sql.Open

// ParseDSN validates the connection string and forces the options the
// application relies on. parseTime makes DATETIME/TIMESTAMP scan into
// time.Time; clientFoundRows makes an UPDATE report matched rather than
// changed rows, so re-publishing a post still counts as one row.
func ParseDSN(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty connection string", errs.ErrConnection)
	}
	dsn, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	return dsn.FormatDSN(), nil
}

// Open opens a database/sql handle using the MySQL driver wrapped by otelsql
// and applies pooling settings. Every failure wraps errs.ErrConnection.
func Open(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := ParseDSN(c.URL)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("mysql",
		otelsql.WithAttributes(semconv.DBSystemMySQL),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: register otelsql: %v", errs.ErrConnection, err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: sql open: %v", errs.ErrConnection, err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: db ping: %v", errs.ErrConnection, err)
	}

	return db, nil
}
