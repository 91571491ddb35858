package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"

	handlers "querydemo/internal/http/handler"
	"querydemo/internal/http/middleware"
	"querydemo/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := server.New(ctx, "querydemo-api")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	app := newApp(s)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + s.Config.Port
		s.Logger.Info().Str("addr", addr).Msg("server_starting")
		errCh <- app.Listen(addr)
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		s.Logger.Info().Msg("server_stopping")
		err = app.ShutdownWithTimeout(10 * time.Second)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if cerr := s.Close(closeCtx); cerr != nil {
		s.Logger.Error().Err(cerr).Msg("shutdown_failed")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.Logger.Fatal().Err(err).Msg("server_failed")
	}
}

func newApp(s *server.Server) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	prom, err := middleware.NewPrometheusMiddleware(s.Registry)
	if err != nil {
		s.Logger.Fatal().Err(err).Msg("metrics_init_failed")
	}

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(s.Logger))
	app.Use(prom.Handler())

	handlers.RegisterRoutes(app, s.DB, s.Users, s.Posts, s.Registry)
	return app
}
