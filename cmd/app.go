package cmd

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/craftpkg/craftpkg/internal/engine"
	"github.com/craftpkg/craftpkg/internal/render"
	"github.com/craftpkg/craftpkg/internal/transfer"
	"github.com/craftpkg/craftpkg/pkg/buildinfo"
	"github.com/craftpkg/craftpkg/pkg/config"
	"github.com/craftpkg/craftpkg/pkg/registry"
)

// Downloads get a generous budget; API calls use the configured timeout.
const downloadTimeout = 5 * time.Minute

// app bundles the collaborators one command invocation needs.
type app struct {
	cfg       *config.Config
	client    registry.Client
	transfers *transfer.Manager
	planner   *engine.Planner
	bar       *render.Bar
}

// newAppFn is swapped in command tests to inject fakes.
var newAppFn = newApp

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	opts := registry.Options{
		BaseURL:   cfg.Registry.BaseURL,
		UserAgent: buildinfo.UserAgent(),
		Timeout:   cfg.Registry.Timeout,
	}
	client := registry.NewModrinthClient(opts)

	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	bar := render.NewBar(cmd.OutOrStdout(), !jsonLogs && !noColor)

	downloadFetcher := registry.NewRealHTTPFetcher(&http.Client{
		Timeout: downloadTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	})

	return &app{
		cfg:       cfg,
		client:    client,
		transfers: transfer.NewManager(downloadFetcher, opts.UserAgent, bar.Update),
		planner:   engine.NewPlanner(client, cfg.Plugins.Loaders, cfg.Registry.Concurrency),
		bar:       bar,
	}, nil
}
