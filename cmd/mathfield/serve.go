package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathfield/pkg/assets"
	"github.com/vango-dev/mathfield/pkg/server"
)

type serveOptions struct {
	config      string
	host        string
	port        int
	manifest    string
	assetPrefix string
	fields      []string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page and field sessions",
		Long: `Serve a page of math fields and the WebSocket endpoint that
drives them.

The runtime is served from the binary unless --manifest points at a
published manifest, in which case the page loads it from --asset-prefix.

Examples:
  mathfield serve
  mathfield serve --port=9000 --field=a --field=b
  mathfield serve --manifest=dist/manifest.json --asset-prefix=https://cdn.example.com/mathfield/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "Config file or directory")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "Published manifest.json to resolve the runtime from")
	cmd.Flags().StringVar(&opts.assetPrefix, "asset-prefix", "", "URL prefix of published assets")
	cmd.Flags().StringSliceVar(&opts.fields, "field", nil, "Field ids to render (default f1)")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	srvOpts := []server.Option{
		server.WithLogger(logger),
		server.WithFields(opts.fields...),
	}
	if opts.manifest != "" {
		m, err := assets.Load(opts.manifest)
		if err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}
		srvOpts = append(srvOpts, server.WithResolver(assets.NewResolver(m, opts.assetPrefix)))
	}

	out := cmd.OutOrStdout()
	success(out, "Serving on http://%s", cfg.Address())
	if p := cfg.Path(); p != "" {
		info(out, "config: %s", p)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(server.FromConfig(cfg), srvOpts...).ListenAndServe(ctx)
}
