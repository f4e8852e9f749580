package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/tacsym/selection"
)

// decodedSymbol is the JSON shape printed by the decode command.
type decodedSymbol struct {
	Code        string            `json:"code"`
	Scheme      string            `json:"scheme,omitempty"`
	Affiliation string            `json:"affiliation,omitempty"`
	Status      string            `json:"status,omitempty"`
	Dimension   string            `json:"dimension,omitempty"`
	Function    []string          `json:"function,omitempty"`
	Modifier1   string            `json:"modifier1,omitempty"`
	Modifier2   string            `json:"modifier2,omitempty"`
	Options     *selection.Options `json:"options,omitempty"`
}

func decodeCmd(opts *rootOptions) *cobra.Command {
	var withOptions bool

	cmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a 12-character symbol code into its selection fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			sess, err := selection.NewSessionFromCode(catalog, args[0])
			if err != nil {
				return err
			}

			sel := sess.Selection()
			out := decodedSymbol{
				Code:        args[0],
				Affiliation: sel.Affiliation,
				Status:      sel.Status,
				Modifier1:   sel.Modifier1,
				Modifier2:   sel.Modifier2,
			}
			if sel.Scheme != nil {
				out.Scheme = sel.Scheme.Label
			}
			if sel.Dimension != nil {
				out.Dimension = sel.Dimension.Name
			}
			if sel.Function != nil {
				out.Function = sel.Function.Names
			}
			if withOptions {
				options := sess.Options()
				out.Options = &options
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&withOptions, "options", false, "Include the derived option lists in the output")
	return cmd
}

func encodeCmd(opts *rootOptions) *cobra.Command {
	var (
		scheme      string
		affiliation string
		status      string
		dimension   string
		function    string
		modifier1   string
		modifier2   string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Compose a symbol code from selection fields",
		Long: `Compose a symbol code from selection fields.

Fields are applied in cascade order (scheme, dimension, function, then
modifiers); values that match no catalog entry are left unset and encode as
their defaults. With no flags at all this prints the all-defaults code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			sess := selection.NewSession(catalog)
			for _, change := range []struct {
				field selection.Field
				value string
			}{
				{selection.FieldScheme, scheme},
				{selection.FieldAffiliation, affiliation},
				{selection.FieldStatus, status},
				{selection.FieldDimension, dimension},
				{selection.FieldFunction, function},
				{selection.FieldModifier1, modifier1},
				{selection.FieldModifier2, modifier2},
			} {
				if change.value == "" {
					continue
				}
				if err := sess.Apply(change.field, change.value); err != nil {
					return err
				}
			}

			fmt.Println(sess.Encode())
			return nil
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", "", "Scheme code (e.g. S, E)")
	cmd.Flags().StringVar(&affiliation, "affiliation", "", "Affiliation key (e.g. F, H, U)")
	cmd.Flags().StringVar(&status, "status", "", "Status key (e.g. P, A)")
	cmd.Flags().StringVar(&dimension, "dimension", "", "Dimension name (e.g. \"Ground Units\")")
	cmd.Flags().StringVar(&function, "function", "", "Six-character function code")
	cmd.Flags().StringVar(&modifier1, "modifier1", "", "Modifier 1 key")
	cmd.Flags().StringVar(&modifier2, "modifier2", "", "Modifier 2 key")
	return cmd
}
