package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/render"
)

// NewRenderCmd draws a result or share card for one outcome, handy for checking fonts and layout.
func NewRenderCmd(configPath *string) *cobra.Command {
	var (
		name  string
		share bool
	)
	cmd := &cobra.Command{
		Use:   "render <outcome>",
		Short: "Render a result card to the output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), *configPath, args[0], name, share, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name printed on the card")
	cmd.Flags().BoolVar(&share, "share", false, "render the square share card instead of the detail card")
	return cmd
}

func runRender(ctx context.Context, configPath, outcome, name string, share bool, out io.Writer) error {
	d, err := openDeps(ctx, configPath)
	if err != nil {
		return err
	}
	defer d.close()

	catalog, err := d.loadCatalog(ctx)
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(catalog, d.cfg.Render.FontPath, d.log)
	if err != nil {
		return err
	}

	var artifact domain.Artifact
	if share {
		artifact, err = renderer.RenderShareCard(outcome, name)
	} else {
		artifact, err = renderer.RenderDetailCard(outcome, name)
	}
	if err != nil {
		return err
	}
	path, err := render.NewFileStore(d.cfg.Render.OutputDir).Save(artifact)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}
