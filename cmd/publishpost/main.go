// Command publishpost marks the post with the given id as published.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"

	"querydemo/internal/server"
)

var errMissingID = errors.New("publishpost requires a post id")

func main() {
	id, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	s, err := server.New(ctx, "publishpost")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	err = run(ctx, s, id, os.Stdout)
	if cerr := s.Close(ctx); cerr != nil {
		s.Logger.Error().Err(cerr).Msg("shutdown_failed")
	}
	if err != nil {
		s.Logger.Fatal().Err(err).Msg("publishpost_failed")
	}
}

func parseArgs(args []string) (int32, error) {
	if len(args) == 0 {
		return 0, errMissingID
	}
	id, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", args[0], err)
	}
	return int32(id), nil
}

func run(ctx context.Context, s *server.Server, id int32, stdout io.Writer) error {
	n, err := s.Posts.Publish(ctx, id)
	if err != nil {
		return fmt.Errorf("unable to find post %d: %w", id, err)
	}
	fmt.Fprintf(stdout, "update_row : %d\n", n)
	return nil
}
