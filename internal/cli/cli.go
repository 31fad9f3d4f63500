// Package cli implements the cmsecosystem command-line interface.
//
// Commands read the djangocms-ecosystem document through a parsed-document
// cache backed by a persistent raw-text cache (a directory under
// ~/.cache/cmsecosystem by default, Redis when redis_url is configured).
//
// # Commands
//
//   - chapters, versions: inspect the parsed document
//   - compat, lts, plugins: the text reports
//   - render: HTML fragments of the rendering-host plugins
//   - releases: latest PyPI release of each package in a chapter
//   - browse: interactive chapter browser
//   - serve: HTTP API
//   - cache: manage the raw document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports document refreshes, cache hits and upstream requests.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cmsecosystem/internal/config"
	"github.com/matzehuels/cmsecosystem/pkg/buildinfo"
	"github.com/matzehuels/cmsecosystem/pkg/cache"
	"github.com/matzehuels/cmsecosystem/pkg/ecosystem"
	"github.com/matzehuels/cmsecosystem/pkg/integrations/github"
	"github.com/matzehuels/cmsecosystem/pkg/integrations/pypi"
	"github.com/matzehuels/cmsecosystem/pkg/observability"
)

const (
	// appName is the application name used for directories and display.
	appName = "cmsecosystem"

	// redisPrefix namespaces keys in a shared Redis.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// flags
	configPath string
	sourceURL  string
	noCache    bool
	refresh    bool

	cfg config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Reports on the django CMS ecosystem",
		Long:         `cmsecosystem reads the djangocms-ecosystem document and turns it into compatibility, long-term-support and package reports, HTML fragments and a small HTTP API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cmsecosystem/config.toml)")
	flags.StringVar(&c.sourceURL, "url", "", "URL of the ecosystem document")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the persistent document cache")
	flags.BoolVar(&c.refresh, "refresh", false, "bypass cached responses and fetch again")

	root.AddCommand(c.chaptersCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.compatCommand())
	root.AddCommand(c.ltsCommand())
	root.AddCommand(c.pluginsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.releasesCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, then applies the
// global flags that were set explicitly.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.SourceURL = c.sourceURL
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = c.noCache
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "url", cfg.SourceURL, "cache", cfg.CacheDir, "no_cache", cfg.NoCache)
	return nil
}

func (c *CLI) installHooks() {
	observability.SetDocumentHooks(documentLogHooks{c.Logger})
	observability.SetCacheHooks(cacheLogHooks{c.Logger})
	observability.SetHTTPHooks(httpLogHooks{c.Logger})
}

// =============================================================================
// Factories
// =============================================================================

// newBackend opens the persistent raw-response cache.
func (c *CLI) newBackend(ctx context.Context) (cache.Cache, error) {
	switch {
	case c.cfg.NoCache:
		return cache.NewNullCache(), nil
	case c.cfg.RedisURL != "":
		return cache.NewRedisCache(ctx, c.cfg.RedisURL, redisPrefix)
	case c.cfg.CacheDir == "":
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(c.cfg.CacheDir)
}

// newDocuments builds the parsed-document cache. The returned backend must
// be closed by the caller.
func (c *CLI) newDocuments(ctx context.Context) (*ecosystem.Cache, cache.Cache, error) {
	backend, err := c.newBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	raw := github.NewRawClient(backend, c.cfg.CacheTTL, buildinfo.UserAgent())
	raw.SetTimeout(c.cfg.Timeout)

	url, force := c.cfg.SourceURL, c.refresh
	fetch := func(ctx context.Context, refresh bool) (ecosystem.Source, error) {
		var (
			d   github.Download
			err error
		)
		if url == github.DefaultDocumentURL {
			d, err = raw.FetchDocument(ctx, refresh || force)
		} else {
			d, err = raw.FetchURL(ctx, url, refresh || force)
		}
		return ecosystem.Source{Text: d.Text, FetchedAt: d.FetchedAt}, err
	}
	docs := ecosystem.NewCache(fetch,
		ecosystem.WithMaxAge(c.cfg.MaxAge),
		ecosystem.WithLogger(c.Logger),
	)
	return docs, backend, nil
}

// readDocument fetches and parses the document once.
func (c *CLI) readDocument(ctx context.Context) (*ecosystem.Document, error) {
	docs, backend, err := c.newDocuments(ctx)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	prog := newProgress(loggerFromContext(ctx))
	doc, err := docs.Read(ctx)
	if err != nil {
		return nil, err
	}
	prog.debug("document ready")
	return doc, nil
}

func (c *CLI) newPyPIClient(backend cache.Cache) *pypi.Client {
	client := pypi.NewClient(backend, c.cfg.CacheTTL, buildinfo.UserAgent())
	client.SetTimeout(c.cfg.Timeout)
	return client
}

// =============================================================================
// Output
// =============================================================================

// writeOutput sends a report to path, or to stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printSuccess("Report written")
	printFile(path)
	return nil
}
