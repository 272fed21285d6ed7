package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"totem-quiz-bot/internal/content"
	pgstore "totem-quiz-bot/internal/infra/postgres"
)

// NewSeedCmd copies the file catalog into postgres so the bot can serve it from there.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the quiz catalog in postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog YAML to store (defaults to quiz.catalog_path, then the built-in catalog)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	d, err := openDeps(ctx, configPath)
	if err != nil {
		return err
	}
	defer d.close()
	if d.pool == nil {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, d.cfg, d.log); err != nil {
		return err
	}

	if file == "" {
		file = d.cfg.Quiz.CatalogPath
	}
	catalog, err := content.NewFileLoader(file).LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if err := pgstore.NewCatalogStore(d.pool, d.cfg.Quiz.CatalogName).SaveCatalog(ctx, catalog); err != nil {
		return err
	}
	d.log.Info("catalog stored", "name", d.cfg.Quiz.CatalogName, "questions", catalog.QuestionCount())
	return nil
}
