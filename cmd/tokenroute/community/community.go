// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package community implements the "tokenroute community" commands,
// which route HTTP-style requests to an in-memory conference store.
package community

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tokenroute/cmd/tokenroute/cli"
	"github.com/bureau-foundation/tokenroute/lib/community"
	"github.com/bureau-foundation/tokenroute/lib/config"
	"github.com/bureau-foundation/tokenroute/lib/httpserver"
	"github.com/bureau-foundation/tokenroute/lib/routemetrics"
	"github.com/bureau-foundation/tokenroute/lib/router"
)

// Command returns the community command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "community",
		Summary: "Route conference requests by method and path",
		Description: `Serve or dispatch requests against an in-memory conference store seeded
from the community.conferences config section. A request's path segments
and its method form the token stream, method last:

  GET    /conferences/<conference>/speakers/<speaker>
  DELETE /conferences/<conference>/talks/<talk>
  POST   /conferences/<conference>/rooms
  GET    /conferences/<conference>/rooms/<room>/talks
  GET    /conferences/<conference>/rooms/<room>/speakers`,
		Subcommands: []*cli.Command{
			dispatchCommand(),
			serveCommand(),
		},
	}
}

type dispatchParams struct {
	cli.ConfigFlag
}

func dispatchCommand() *cli.Command {
	var p dispatchParams
	return &cli.Command{
		Name:    "dispatch",
		Summary: "Route one request and print the JSON response",
		Usage:   "tokenroute community dispatch [flags] <METHOD> <path>",
		Examples: []cli.Example{
			{Description: "Look up a speaker", Command: "tokenroute community dispatch GET /conferences/cppnow2020/speakers/326"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("dispatch", &p) },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <METHOD> <path>, got %d arguments", len(args))
			}
			cfg, logger, err := p.LoadConfig("tokenroute community dispatch")
			if err != nil {
				return err
			}
			store, table, err := setup(cfg)
			if err != nil {
				return err
			}
			status, err := dispatch(os.Stdout, store, table, args[0], args[1])
			if err != nil {
				return err
			}
			logger.Debug("request dispatched", "status", status)
			if status >= http.StatusBadRequest {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// dispatch routes one request and writes its JSON response to w.
func dispatch(w io.Writer, store *community.Community, table *router.Router[*community.Community], method, path string) (int, error) {
	request := community.ParseRequest(strings.ToUpper(method), path)
	value, err := table.Dispatch(store, request.Tokens()).Unwrap()
	if err != nil {
		return community.StatusFor(err), cli.WriteJSONTo(w, community.ErrorResponseFor(err))
	}
	status, body := community.Respond(value)
	return status, cli.WriteJSONTo(w, body)
}

type serveParams struct {
	cli.ConfigFlag
	Listen string `flag:"listen" desc:"listen address (overrides community.listen)"`
}

func serveCommand() *cli.Command {
	var p serveParams
	return &cli.Command{
		Name:    "serve",
		Summary: "Serve the conference API over HTTP",
		Usage:   "tokenroute community serve [flags]",
		Examples: []cli.Example{
			{Description: "Serve on all interfaces", Command: "tokenroute community serve --listen 0.0.0.0:8080"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("serve", &p) },
		Run: func(ctx context.Context, _ []string, _ *slog.Logger) error {
			cfg, logger, err := p.LoadConfig("tokenroute community serve")
			if err != nil {
				return err
			}
			if p.Listen != "" {
				cfg.Community.Listen = p.Listen
			}
			handler, err := newHandler(cfg, prometheus.NewRegistry(), logger)
			if err != nil {
				return err
			}
			server := httpserver.New(httpserver.Config{
				Address: cfg.Community.Listen,
				Handler: handler,
				Logger:  logger,
			})
			return server.Serve(ctx)
		},
	}
}

// newHandler builds the serving mux: metrics at the configured path and
// every other request routed through the conference table.
func newHandler(cfg *config.Config, registry *prometheus.Registry, logger *slog.Logger) (http.Handler, error) {
	store, table, err := setup(cfg)
	if err != nil {
		return nil, err
	}

	mux := chi.NewRouter()
	var metrics *routemetrics.Recorder
	if cfg.Community.MetricsPath != "" {
		registry.MustRegister(collectors.NewGoCollector())
		metrics = routemetrics.New(
			routemetrics.WithSubsystem("community"),
			routemetrics.WithRegistry(registry),
		)
		mux.Handle(cfg.Community.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	mux.Handle("/*", community.NewHandler(store, table, metrics, logger))
	return mux, nil
}

func setup(cfg *config.Config) (*community.Community, *router.Router[*community.Community], error) {
	table, err := community.NewRouter()
	if err != nil {
		return nil, nil, err
	}
	store := community.New()
	if err := Seed(store, cfg.Community.Conferences); err != nil {
		return nil, nil, fmt.Errorf("seeding conferences: %w", err)
	}
	return store, table, nil
}
