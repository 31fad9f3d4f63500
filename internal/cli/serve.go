package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/internal/server"
	"github.com/matzehuels/cmsecosystem/pkg/plugins"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports and plugin fragments over HTTP",
		Long: `Serve the ecosystem document, its reports and the rendering-host plugins
over HTTP.

Routes:
  GET /health
  GET /api/chapters
  GET /api/chapters/{title}
  GET /api/versions
  GET /reports/compatibility
  GET /reports/lts?past=true
  GET /reports/plugins?chapter=...&deprecated=true
  GET /plugins
  GET /plugins/{name}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("listen") {
				c.cfg.Listen = listen
			}

			docs, backend, err := c.newDocuments(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			srv, err := server.New(docs, plugins.DefaultRegistry(), c.Logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, c.cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default \":8080\")")
	return cmd
}
