package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: "CREATE TABLE IF NOT EXISTS `users` (\n" +
			"  `id`         INT          NOT NULL AUTO_INCREMENT PRIMARY KEY,\n" +
			"  `name`       TEXT         NOT NULL,\n" +
			"  `hair_color` TEXT,\n" +
			"  `created_at` TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
			"  `updated_at` TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP\n" +
			")",
	},
	{
		Name: "create_table_posts",
		SQL: "CREATE TABLE IF NOT EXISTS `posts` (\n" +
			"  `id`        INT          NOT NULL AUTO_INCREMENT PRIMARY KEY,\n" +
			"  `title`     VARCHAR(255) NOT NULL,\n" +
			"  `body`      TEXT         NOT NULL,\n" +
			"  `published` BOOLEAN      NOT NULL DEFAULT FALSE\n" +
			")",
	},
}

const sentinelQuery = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name IN ('users', 'posts')"

// EnsureMigrated creates the `users` and `posts` tables when they are missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "migration").Logger()

	log.Info().Str("status", "starting").Msg("db_migration_check")

	var existing int
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&existing); err != nil {
		log.Error().Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("db_migration_failed")
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if existing == len(steps) {
		log.Info().Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("db_migration_failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("db_migration_step")
	}

	log.Info().Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("db_migration_success")
	return nil
}
