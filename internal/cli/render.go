package cli

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/pkg/plugins"
)

// renderCommand writes the HTML fragment of a rendering-host plugin.
func (c *CLI) renderCommand() *cobra.Command {
	var output string
	registry := plugins.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "render <plugin>",
		Short: "Render a plugin as an HTML fragment",
		Long: `Render a rendering-host plugin as an HTML fragment.

Available plugins:
  cms_packages      Official CMS packages
  django_packages   Official Django packages`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, p := range registry.List() {
				names = append(names, p.Name+"\t"+p.Label)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			docs, backend, err := c.newDocuments(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			renderer, err := plugins.NewRenderer(registry, docs)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := renderer.Render(ctx, &buf, args[0]); err != nil {
				return err
			}
			return writeOutput(output, func(w io.Writer) error {
				_, err := buf.WriteTo(w)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the fragment to a file")
	return cmd
}
