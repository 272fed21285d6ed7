package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewValidateCmd loads the configured catalog and reports problems without starting the bot.
func NewValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the quiz catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), *configPath, cmd.OutOrStdout())
		},
	}
}

func runValidate(ctx context.Context, configPath string, out io.Writer) error {
	d, err := openDeps(ctx, configPath)
	if err != nil {
		return err
	}
	defer d.close()

	catalog, err := d.loadCatalog(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "catalog %q: %d questions, %d outcomes\n", d.cfg.Quiz.CatalogName, catalog.QuestionCount(), len(catalog.Outcomes()))
	for _, key := range catalog.UnreachableOutcomes() {
		fmt.Fprintf(out, "warning: outcome %q is never awarded\n", key)
	}
	return nil
}
