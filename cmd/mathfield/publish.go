package main

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	clientdist "github.com/vango-dev/mathfield/client/dist"
	"github.com/vango-dev/mathfield/internal/config"
	"github.com/vango-dev/mathfield/pkg/assets"
	"github.com/vango-dev/mathfield/pkg/server"
)

// newObjectStore builds the upload client. Tests replace it.
var newObjectStore = func(cfg config.PublishConfig) assets.PutObjectAPI {
	return assets.NewS3Client(cfg)
}

func publishCmd() *cobra.Command {
	var (
		configPath string
		bucket     string
		prefix     string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the browser runtime to an object store",
		Long: `Upload the browser runtime under a content-hashed name, then a
manifest.json mapping mathfield.js to it. Serve with --manifest to load
the published runtime.

Credentials are read from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  mathfield publish --bucket=assets --prefix=mathfield
  mathfield publish --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				cfg.Publish.Prefix = prefix
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())
			return runPublish(ctx, cmd.OutOrStdout(), logger, cfg, dryRun)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file or directory")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the keys without uploading")
	return cmd
}

func runPublish(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config, dryRun bool) error {
	files := map[string][]byte{
		server.RuntimeName: clientdist.MathfieldJS,
	}

	if dryRun {
		for name, data := range files {
			info(w, "%s -> %s", name, assets.Fingerprint(name, data))
		}
		return nil
	}

	pub, err := assets.NewPublisher(newObjectStore(cfg.Publish), cfg.Publish, logger)
	if err != nil {
		return err
	}
	m, err := pub.Publish(ctx, files)
	if err != nil {
		return err
	}

	entries := m.All()
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	success(w, "Published %d asset(s) to %s", len(names), cfg.Publish.Bucket)
	for _, name := range names {
		info(w, "%s -> %s", name, entries[name])
	}
	return nil
}
