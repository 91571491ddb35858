// Command adduser inserts users through every insert shape and prints the
// affected-row counts.
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

func main() {
	ctx := context.Background()
	s, err := server.New(ctx, "adduser")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	err = run(ctx, s, os.Stdout, os.Stderr)
	if cerr := s.Close(ctx); cerr != nil {
		s.Logger.Error().Err(cerr).Msg("shutdown_failed")
	}
	if err != nil {
		s.Logger.Fatal().Err(err).Msg("adduser_failed")
	}
}

func run(ctx context.Context, s *server.Server, stdout, stderr io.Writer) error {
	users := s.Users

	if n, err := users.InsertDefaultValues(ctx); err != nil {
		fmt.Fprintf(stderr, "some error : %v\n", err)
	} else {
		fmt.Fprintf(stdout, "affected row : %d\n", n)
	}

	n, err := users.InsertSingleColumn(ctx)
	if err != nil {
		return fmt.Errorf("insert single column: %w", err)
	}
	fmt.Fprintf(stdout, "insert_single_column affected_row = %d\n", n)

	n, err = users.InsertMultipleColumns(ctx)
	if err != nil {
		return fmt.Errorf("insert multiple columns: %w", err)
	}
	fmt.Fprintf(stdout, "insert_multiple_columns affected_row = %d\n", n)

	if _, err := users.InsertInsertableStruct(ctx); err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	if _, err := users.InsertInsertableStructOption(ctx); err != nil {
		return fmt.Errorf("insert form with null hair color: %w", err)
	}
	if _, err := users.InsertSingleColumnBatch(ctx); err != nil {
		return fmt.Errorf("insert single column batch: %w", err)
	}

	_, err = users.InsertSingleColumnBatchWithDefault(ctx)
	if err == nil {
		return errors.New("insert single column batch with default: expected the database to reject DEFAULT for name")
	}
	fmt.Fprintf(stdout, "insert_single_column_batch_with_default  %v\n", err)

	if n, err = users.InsertTupleBatch(ctx); err != nil {
		return fmt.Errorf("insert tuple batch: %w", err)
	}
	if n != 2 {
		return fmt.Errorf("insert tuple batch: affected %d rows, want 2", n)
	}

	if n, err = users.InsertTupleBatchWithDefault(ctx); err != nil {
		return fmt.Errorf("insert tuple batch with default: %w", err)
	}
	if n != 2 {
		return fmt.Errorf("insert tuple batch with default: affected %d rows, want 2", n)
	}

	if _, err := users.InsertInsertableStructBatch(ctx); err != nil {
		return fmt.Errorf("insert form batch: %w", err)
	}

	id, err := users.ExplicitReturning(ctx, "Ruby")
	if err != nil {
		return fmt.Errorf("explicit returning: %w", err)
	}
	fmt.Fprintf(stdout, "return id = %d\n", id)
	return nil
}
