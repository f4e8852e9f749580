package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/tacsym/config"
	"github.com/c360studio/tacsym/fires"
	"github.com/c360studio/tacsym/notify"
	"github.com/c360studio/tacsym/selection"
	"github.com/c360studio/tacsym/symbology"
)

func firesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fires",
		Short: "Work with the remote fire-record service",
	}
	cmd.AddCommand(firesListCmd(opts))
	cmd.AddCommand(firesCreateCmd(opts))
	cmd.AddCommand(firesSyncCmd(opts))
	return cmd
}

func newFiresClient(cfg *config.Config, metrics *fires.Metrics) (*fires.Client, error) {
	return fires.NewClient(cfg.Fires.BaseURL,
		fires.WithHTTPClient(&http.Client{Timeout: cfg.Fires.Timeout}),
		fires.WithLogger(slog.Default()),
		fires.WithMetrics(metrics),
	)
}

// connectPublisher builds the fire-event publisher. Without a configured
// NATS URL it returns a publisher over a nil connection, which publishes
// nothing.
func connectPublisher(cfg *config.Config) (*notify.Publisher, func(), error) {
	if cfg.NATS.URL == "" {
		return notify.NewPublisher(nil, cfg.NATS.SubjectPrefix), func() {}, nil
	}

	nc, err := nats.Connect(cfg.NATS.URL, nats.Name(appName))
	if err != nil {
		return nil, nil, fmt.Errorf("connect NATS %s: %w", cfg.NATS.URL, err)
	}
	return notify.NewPublisher(nc, cfg.NATS.SubjectPrefix), func() { nc.Close() }, nil
}

func firesListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all fire records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			client, err := newFiresClient(cfg, nil)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Fires.Timeout)
			defer cancel()

			records, err := client.List(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
}

func firesCreateCmd(opts *rootOptions) *cobra.Command {
	var record fires.Record

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a fire record",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			client, err := newFiresClient(cfg, nil)
			if err != nil {
				return err
			}
			publisher, closePublisher, err := connectPublisher(cfg)
			if err != nil {
				return err
			}
			defer closePublisher()

			if record.SymbolCode == "" {
				record.SymbolCode = selection.Selection{}.Encode()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Fires.Timeout)
			defer cancel()

			stored, err := client.Create(ctx, record)
			if err != nil {
				return err
			}
			if err := publisher.FireCreated(stored); err != nil {
				slog.Warn("Fire event not published", "id", stored.ID, "error", err)
			}

			fmt.Println(stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&record.Name, "name", "", "Record name (required)")
	cmd.Flags().Float64Var(&record.Latitude, "lat", 0, "Latitude in degrees")
	cmd.Flags().Float64Var(&record.Longitude, "lon", 0, "Longitude in degrees")
	cmd.Flags().StringVar(&record.SymbolCode, "symbol", "", "12-character symbol code (default: all-defaults code)")
	cmd.Flags().StringVar(&record.Remarks, "remarks", "", "Free-form remarks")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func firesSyncCmd(opts *rootOptions) *cobra.Command {
	var (
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Materialize fire records as map symbol updates",
		Long: `Fetch the fire-record set and resolve every record's symbol code against
the catalog, emitting one symbol update per record. With --interval the sync
repeats until interrupted; combined with catalog.watch in the configuration,
definition file edits take effect on the next pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			var reg *prometheus.Registry
			var metrics *fires.Metrics
			if metricsAddr != "" {
				reg = prometheus.NewRegistry()
				metrics = fires.NewMetrics(reg)
			}

			client, err := newFiresClient(cfg, metrics)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
				server := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						slog.Error("Metrics server failed", "addr", metricsAddr, "error", err)
					}
				}()
				defer server.Close()
				slog.Info("Serving metrics", "addr", metricsAddr)
			}

			// The catalog pointer is swapped atomically on reload; each sync
			// pass reads the current value.
			var current atomic.Pointer[symbology.Catalog]
			current.Store(catalog)

			if cfg.Catalog.Watch && len(cfg.Catalog.Paths) > 0 {
				watcher, err := symbology.NewWatcher(cfg.Catalog.Paths, func(c *symbology.Catalog) {
					current.Store(c)
					slog.Info("Symbology catalog reloaded")
				})
				if err != nil {
					return err
				}
				go func() {
					if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
						slog.Error("Catalog watcher stopped", "error", err)
					}
				}()
			}

			renderer := &logRenderer{logger: slog.Default()}
			materializer := fires.NewMaterializer(client, renderer)

			syncOnce := func() error {
				count, err := materializer.Sync(ctx, current.Load())
				if err != nil {
					return err
				}
				slog.Info("Fire records materialized", "count", count)
				return nil
			}

			if err := syncOnce(); err != nil {
				return err
			}
			if interval <= 0 {
				return nil
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := syncOnce(); err != nil {
						// A failed pass keeps the previous symbols; try again
						// on the next tick.
						slog.Warn("Sync pass failed", "error", err)
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Re-sync period (0 = one-shot)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9105)")
	return cmd
}

// logRenderer is the CLI's renderer: each symbol update becomes a log line.
type logRenderer struct {
	logger *slog.Logger
}

func (r *logRenderer) UpdateSymbol(record fires.Record, sel selection.Selection) error {
	attrs := []any{
		"id", record.ID,
		"name", record.Name,
		"lat", record.Latitude,
		"lon", record.Longitude,
		"symbol_code", record.SymbolCode,
	}
	if sel.Function != nil {
		attrs = append(attrs, "function", sel.Function.Name())
	}
	if sel.Dimension != nil {
		attrs = append(attrs, "dimension", sel.Dimension.Name)
	}
	r.logger.Info("Symbol update", attrs...)
	return nil
}

func (r *logRenderer) RemoveSymbol(id string) error {
	r.logger.Info("Symbol removed", "id", id)
	return nil
}
