package main

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ollamakit/internal/config"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("config requires a subcommand: show|schema")
		},
	}

	var format string
	show := &cobra.Command{
		Use:     "show",
		Short:   "Print the configuration after file, .env, environment and flags",
		Example: "  ollamakit config show\n  ollamakit config show -o toml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfgPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "# from %s\n", a.cfgPath)
			}
			switch format {
			case "yaml", "yml":
				enc := yaml.NewEncoder(a.out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(a.cfg)
			case "toml":
				return toml.NewEncoder(a.out).Encode(a.cfg)
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(a.cfg)
			default:
				return fmt.Errorf("unsupported output format %q: yaml|toml|json", format)
			}
		},
	}
	show.Flags().StringVarP(&format, "output", "o", "yaml", "Output format: yaml|toml|json")

	schema := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(b))
			return err
		},
	}

	cmd.AddCommand(show, schema)
	return cmd
}
