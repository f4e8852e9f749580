// Package main provides the tacsym binary entry point.
// Tacsym composes, decodes, and validates tactical symbol identification
// codes against a symbology catalog, and keeps fire-record map symbols in
// sync with a remote record service.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/tacsym/config"
	"github.com/c360studio/tacsym/symbology"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "tacsym"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tacsym",
		Short: "Tactical symbology codec and fire-record tooling",
		Long: `Tacsym works with 12-character tactical symbol identification codes.

It provides:
- Encoding a cascading selection (scheme, affiliation, status, dimension,
  function, modifiers) into a symbol code, and decoding codes back
- Symbology catalog inspection and validation
- Fire-record service access: list, create, and materialize records as
  map symbols

The symbology catalog is loaded from bundled definitions or from the
YAML files named in the configuration.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(decodeCmd(opts))
	cmd.AddCommand(encodeCmd(opts))
	cmd.AddCommand(catalogCmd(opts))
	cmd.AddCommand(firesCmd(opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig resolves the effective configuration: an explicit --config file
// when given, otherwise the layered user/project lookup.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	loader := config.NewLoader(slog.Default())
	if opts.configPath != "" {
		return loader.LoadFile(opts.configPath)
	}
	return loader.Load()
}

// loadCatalog builds the symbology catalog from the configured definition
// files, falling back to the bundled set. Duplicate function definitions are
// logged but do not fail the load.
func loadCatalog(cfg *config.Config) (*symbology.Catalog, error) {
	var catalog *symbology.Catalog
	var err error
	if len(cfg.Catalog.Paths) > 0 {
		catalog, err = symbology.LoadFiles(cfg.Catalog.Paths...)
	} else {
		catalog, err = symbology.Default()
	}
	if err != nil {
		return nil, err
	}

	for _, dup := range catalog.Validate() {
		slog.Warn("Symbology duplicate function", "duplicate", dup.String())
	}
	return catalog, nil
}
