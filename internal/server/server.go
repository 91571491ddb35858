// Package server composes the dependencies shared by every entry point:
// configuration, logger, tracing, the MySQL handle, the metrics registry
// and the user and post services.
//
// Commands build a Server once at startup and call Close on exit, which
// pushes the collected metrics, flushes traces and closes the pool.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"querydemo/internal/config"
	"querydemo/internal/database"
	"querydemo/internal/database/migration"
	"querydemo/internal/logger"
	"querydemo/internal/metrics"
	"querydemo/internal/otel"
	"querydemo/internal/repository/mysql"
	"querydemo/internal/service"
)

// Server holds shared resources. It is not an HTTP server.
type Server struct {
	Config   *config.AppConfig
	Logger   zerolog.Logger
	DB       *sql.DB
	Tx       *database.Transactor
	Registry *prometheus.Registry

	Users service.UserService
	Posts service.PostService

	name            string
	shutdownTracing func(context.Context) error
}

// New loads configuration and opens every dependency. name is used as the
// tracing service name and the Pushgateway job.
func New(ctx context.Context, name string) (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log).With().Str("service", name).Logger()

	shutdown, err := otel.Init(ctx, name, log)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			_ = db.Close()
			_ = shutdown(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	s, err := NewWithDB(cfg, log, db)
	if err != nil {
		_ = db.Close()
		_ = shutdown(ctx)
		return nil, err
	}
	s.name = name
	s.shutdownTracing = shutdown
	return s, nil
}

// NewWithDB wires the services on an already open handle.
func NewWithDB(cfg *config.AppConfig, log zerolog.Logger, db *sql.DB) (*Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewDBStatsCollector(db, "querydemo"),
	)

	stmts, err := metrics.NewStatements(reg)
	if err != nil {
		return nil, fmt.Errorf("register statement metrics: %w", err)
	}

	tx := database.NewTransactor(db)
	run := database.NewRunner(tx, log, stmts)

	return &Server{
		Config:          cfg,
		Logger:          log,
		DB:              db,
		Tx:              tx,
		Registry:        reg,
		Users:           service.NewUserService(tx, mysql.NewUserMySQL(run)),
		Posts:           service.NewPostService(tx, mysql.NewPostMySQL(run)),
		shutdownTracing: func(context.Context) error { return nil },
	}, nil
}

// Close pushes metrics, flushes traces and closes the database. Every step
// runs even when an earlier one fails.
func (s *Server) Close(ctx context.Context) error {
	var errList []error

	if err := metrics.Push(ctx, s.Config.PushgatewayURL, s.name, s.Registry); err != nil {
		errList = append(errList, fmt.Errorf("push metrics: %w", err))
	}
	if err := s.shutdownTracing(ctx); err != nil {
		errList = append(errList, fmt.Errorf("shutdown tracing: %w", err))
	}
	if err := s.DB.Close(); err != nil {
		errList = append(errList, fmt.Errorf("close database: %w", err))
	}

	return errors.Join(errList...)
}
