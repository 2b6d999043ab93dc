package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"gopkg.in/yaml.v3"

	"onetime-quiz-service/internal/config"
)

// seedQuestion is the YAML shape of one catalog entry in a seed file.
type seedQuestion struct {
	ID           string   `yaml:"id"`
	Text         string   `yaml:"text"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correct_index"`
	Order        int      `yaml:"order"`
}

// NewSeedCmd loads a question catalog file into Postgres. This is the
// administrative side of the catalog; the quiz flow itself never writes
// questions.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load a YAML question catalog into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, args[0])
		},
	}
}

func runSeed(ctx context.Context, configPath, seedPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return err
	}
	var questions []seedQuestion
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("seed file %s contains no questions", seedPath)
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	for _, q := range questions {
		_, err := db.ExecContext(ctx, `
			INSERT INTO question (id, text, options, correct_index, "order")
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				text = EXCLUDED.text,
				options = EXCLUDED.options,
				correct_index = EXCLUDED.correct_index,
				"order" = EXCLUDED."order",
				updated_at = now()`,
			q.ID, q.Text, pgdialect.Array(q.Options), q.CorrectIndex, q.Order)
		if err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}

	log.Printf("seeded %d questions", len(questions))
	return nil
}
