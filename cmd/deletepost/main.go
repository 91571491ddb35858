// Command deletepost deletes every post whose title contains the argument,
// then the post with id 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"querydemo/internal/server"
)

var errMissingTarget = errors.New("expected a target to match against")

func main() {
	if len(os.Args) < 2 {
		log.Fatal(errMissingTarget)
	}

	ctx := context.Background()
	s, err := server.New(ctx, "deletepost")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	err = run(ctx, s, os.Args[1:], os.Stdout)
	if cerr := s.Close(ctx); cerr != nil {
		s.Logger.Error().Err(cerr).Msg("shutdown_failed")
	}
	if err != nil {
		s.Logger.Fatal().Err(err).Msg("deletepost_failed")
	}
}

func run(ctx context.Context, s *server.Server, args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "" {
		return errMissingTarget
	}

	n, err := s.Posts.DeleteByTitle(ctx, args[0])
	if err != nil {
		return fmt.Errorf("error deleting posts: %w", err)
	}
	fmt.Fprintf(stdout, "Deleted %d posts\n", n)

	n, err = s.Posts.DeleteByID(ctx, 1)
	if err != nil {
		return fmt.Errorf("error deleting post[id=1]: %w", err)
	}
	fmt.Fprintf(stdout, "Deleted post which id = 1 , is Ok : %t\n", n == 1)
	return nil
}
