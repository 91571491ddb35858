// Command showposts lists up to five published posts.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"querydemo/internal/server"
)

const limit = 5

func main() {
	ctx := context.Background()
	s, err := server.New(ctx, "showposts")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	err = run(ctx, s, os.Stdout)
	if cerr := s.Close(ctx); cerr != nil {
		s.Logger.Error().Err(cerr).Msg("shutdown_failed")
	}
	if err != nil {
		s.Logger.Fatal().Err(err).Msg("showposts_failed")
	}
}

func run(ctx context.Context, s *server.Server, stdout io.Writer) error {
	posts, err := s.Posts.ListPublished(ctx, limit)
	if err != nil {
		return fmt.Errorf("error loading posts: %w", err)
	}

	fmt.Fprintf(stdout, "Displaying %d posts\n", len(posts))
	for _, p := range posts {
		fmt.Fprintf(stdout, "%s,%s\n", p.Title, p.Body)
	}
	return nil
}
