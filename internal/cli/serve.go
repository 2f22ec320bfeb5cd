package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/internal/server"
)

// defaultAddr is the preview server listen address.
const defaultAddr = "127.0.0.1:8080"

// serveCommand creates the serve command running the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		static    bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve [gallery.toml]",
		Short: "Serve a gallery with live relayout and lightbox pages",
		Long: `Serve a gallery manifest over HTTP.

The page repacks its rows through /api/layout whenever the window is resized,
and /view/{index} serves each item as a standalone lightbox page. Only media
files the manifest references are served from its directory.

With --redis-addr (or ` + envRedisAddr + `), layouts and pages are cached in
Redis and shared by every instance serving the same gallery.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisAddr == "" {
				redisAddr = os.Getenv(envRedisAddr)
			}
			return c.runServe(cmd.Context(), sourceArg(args), addr, redisAddr, static, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address or redis:// URL for a shared cache")
	cmd.Flags().BoolVar(&static, "static", false, "serve the fixed-width page without browser relayout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, source, addr, redisAddr string, static, noCache bool) error {
	runner, err := c.newSharedRunner(ctx, redisAddr, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv, err := server.New(ctx, server.Config{
		Addr:     addr,
		Manifest: source,
		Runner:   runner,
		Logger:   c.Logger.WithPrefix("http"),
		Static:   static,
	})
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}

	return srv.ListenAndServe(ctx, func(bound string) {
		c.printSuccess("Serving %s", source)
		c.printKeyValue("URL", StyleLink.Render("http://"+bound+"/"))
		c.printKeyValue("Items", fmt.Sprint(srv.Gallery().Len()))
		if redisAddr != "" && !noCache {
			c.printKeyValue("Cache", "redis "+redisAddr)
		}
		c.printDetail("Press Ctrl+C to stop")
	})
}
