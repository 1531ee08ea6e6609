package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scorepager/internal/server"
	"github.com/matzehuels/scorepager/pkg/session"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Sessions are kept in memory unless a Redis address is configured, in which
case several instances can share them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				cfg.Redis = redisAddr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for shared sessions (default: in-memory)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg ServerConfig) error {
	store, err := c.newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(c.newRunner(), store, c.Logger)
	return srv.ListenAndServe(ctx, cfg.Addr)
}

func (c *CLI) newSessionStore(ctx context.Context, cfg ServerConfig) (session.Store, error) {
	if cfg.Redis == "" {
		c.Logger.Info("using in-memory sessions")
		return session.NewMemoryStore(), nil
	}
	c.Logger.Info("using redis sessions", "addr", cfg.Redis, "db", cfg.RedisDB)
	store, err := session.NewRedisStore(ctx, session.RedisConfig{
		Addr:     cfg.Redis,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
