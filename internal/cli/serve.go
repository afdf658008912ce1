package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapewordle/pkg/cache"
	"github.com/matzehuels/shapewordle/pkg/pipeline"
	"github.com/matzehuels/shapewordle/pkg/server"
	"github.com/matzehuels/shapewordle/pkg/store"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr        string
	redisURL    string
	cachePrefix string
	mongoURI    string
	mongoDB     string
	retention   time.Duration
	noCache     bool
	maxBody     int64
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		so serveOpts
		of optionFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts are cached in Redis when --redis is given and in the local file cache
otherwise. Computed layouts are stored in MongoDB when --mongo is given and in
memory otherwise. Options from --config apply to every request before the
request's own options.`,
		Example: `  shapewordle serve --addr :8080
  shapewordle serve --redis redis://localhost:6379/0 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := of.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), so, defaults)
		},
	}

	cmd.Flags().StringVar(&so.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&so.redisURL, "redis", "", "Redis URL for a shared layout cache")
	cmd.Flags().StringVar(&so.cachePrefix, "cache-prefix", appName+":", "key prefix in Redis")
	cmd.Flags().StringVar(&so.mongoURI, "mongo", "", "MongoDB URI for stored layouts")
	cmd.Flags().StringVar(&so.mongoDB, "mongo-db", store.DefaultDatabase, "MongoDB database")
	cmd.Flags().DurationVar(&so.retention, "retention", 0, "expire stored layouts after this long (0 keeps them)")
	cmd.Flags().BoolVar(&so.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&so.maxBody, "max-body", server.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	cmd.Flags().StringVarP(&of.config, "config", "c", "", "TOML options file with request defaults")
	cmd.Flags().StringVar(&of.opts.Glyphs, "glyphs", "", "glyph metrics: opentype (default), mono")
	cmd.Flags().StringToStringVar(&of.opts.FontFiles, "font-file", nil, "register a font file as family=path.ttf")

	return cmd
}

// runServe wires the cache, store and server and blocks until ctx ends.
func (c *CLI) runServe(ctx context.Context, so serveOpts, defaults pipeline.Options) error {
	prog := newProgress(c.Logger)
	installLogHooks(c.Logger)

	layoutCache, err := c.serveCache(ctx, so)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(layoutCache, cache.NewScopedKeyer(nil, "v1:"), c.Logger)
	defer runner.Close()

	// One provider for every request keeps glyph measurements memoized.
	glyphs, err := pipeline.NewGlyphProvider(defaults)
	if err != nil {
		return err
	}
	runner.Glyphs = glyphs

	docs, err := c.serveStore(ctx, so)
	if err != nil {
		return err
	}
	defer docs.Close()

	srv := server.New(server.Config{
		Runner:       runner,
		Store:        docs,
		Logger:       c.Logger,
		Defaults:     defaults,
		MaxBodyBytes: so.maxBody,
	})

	printInfo("Listening on %s", StyleHighlight.Render(so.addr))
	if err := srv.ListenAndServe(ctx, so.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	prog.done("Server stopped")
	return nil
}

func (c *CLI) serveCache(ctx context.Context, so serveOpts) (cache.Cache, error) {
	switch {
	case so.noCache:
		return cache.NewNullCache(), nil
	case so.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: so.redisURL, Prefix: so.cachePrefix})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "prefix", so.cachePrefix)
		return rc, nil
	default:
		return newCache(false)
	}
}

func (c *CLI) serveStore(ctx context.Context, so serveOpts) (store.Store, error) {
	if so.mongoURI == "" {
		c.Logger.Warn("no --mongo given, layouts are kept in memory only")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:      so.mongoURI,
		Database: so.mongoDB,
		TTL:      so.retention,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("using mongo store", "database", so.mongoDB)
	return ms, nil
}
