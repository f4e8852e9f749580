package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func catalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the symbology catalog",
	}
	cmd.AddCommand(catalogSchemesCmd(opts))
	cmd.AddCommand(catalogValidateCmd(opts))
	return cmd
}

func catalogSchemesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List schemes, their dimensions, and function counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			for _, scheme := range catalog.Schemes() {
				fmt.Printf("%s  %s\n", scheme.Code, scheme.Label)
				for _, dim := range scheme.NamedDimensions() {
					mods := ""
					if n := len(dim.Modifiers1) + len(dim.Modifiers2); n > 0 {
						mods = fmt.Sprintf(", %d modifiers", n)
					}
					fmt.Printf("   %-24s %d functions%s\n", dim.Name, len(dim.Functions), mods)
				}
			}
			return nil
		},
	}
}

func catalogValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for ambiguous function definitions",
		Long: `Check the catalog for (battle dimension, function code) pairs defined in
more than one dimension of a scheme. Lookups resolve such pairs
first-match-wins, so duplicates silently shadow each other; this command
makes them visible. Exits non-zero when any are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			dups := catalog.Validate()
			if len(dups) == 0 {
				fmt.Println("catalog OK: no duplicate function definitions")
				return nil
			}

			var b strings.Builder
			for _, d := range dups {
				fmt.Fprintf(&b, "  %s\n", d)
			}
			return fmt.Errorf("%d duplicate function definition(s):\n%s", len(dups), b.String())
		},
	}
}
