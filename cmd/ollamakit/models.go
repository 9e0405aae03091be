package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ollamakit/internal/registry"
)

func modelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List, inspect, pull and delete installed models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("models requires a subcommand: list|show|check|pull|delete")
		},
	}

	var asJSON bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed models with their sizes",
		Example: "  ollamakit models list\n  ollamakit models list --json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.svc.Registry().ListModels(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(models)
			}
			if len(models) == 0 {
				fmt.Fprintln(a.out, "No models found.")
				return nil
			}
			fmt.Fprintf(a.out, "Found %d models:\n", len(models))
			for i, m := range models {
				fmt.Fprintf(a.out, "%d. %s (%s)\n", i+1, m.Name, registry.FormatSize(m.Size))
			}
			return nil
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "Print the raw model descriptors as JSON")

	show := &cobra.Command{
		Use:     "show NAME",
		Short:   "Show size, family and format of a model",
		Example: "  ollamakit models show llama3.2:latest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, a.svc.Registry().ShowModel(cmd.Context(), args[0]))
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check NAME",
		Short: "Report whether a model is installed (exit status 1 when it is not)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.svc.Registry().IsModelInstalled(cmd.Context(), args[0]) {
				fmt.Fprintf(a.out, "%s: ✅ Installed\n", args[0])
				return nil
			}
			fmt.Fprintf(a.out, "%s: ❌ Not installed\n", args[0])
			return &exitError{code: 1}
		},
	}

	var pullYes bool
	pull := &cobra.Command{
		Use:     "pull NAME",
		Short:   "Download a model to the server",
		Example: "  ollamakit models pull llama3.2 --yes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !pullYes && !a.confirm(fmt.Sprintf("Are you sure you want to pull %s?", name)) {
				fmt.Fprintln(a.out, "Operation cancelled.")
				return nil
			}
			fmt.Fprintf(a.out, "Pulling %s... This may take a while.\n", name)
			resp, err := a.svc.Registry().PullModel(cmd.Context(), name).Unwrap()
			if err != nil {
				return err
			}
			a.log.Debug().Str("model", name).Str("status", resp.Status).Msg("pull finished")
			fmt.Fprintln(a.out, "✅ Model pulled successfully!")
			return nil
		},
	}
	pull.Flags().BoolVarP(&pullYes, "yes", "y", false, "Do not ask for confirmation")

	var delYes bool
	del := &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a model from the server",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !delYes && !a.confirm(fmt.Sprintf("Are you sure you want to delete %s?", name)) {
				fmt.Fprintln(a.out, "Operation cancelled.")
				return nil
			}
			msg, err := a.svc.Registry().DeleteModel(cmd.Context(), name).Unwrap()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✅ %s\n", msg)
			return nil
		},
	}
	del.Flags().BoolVarP(&delYes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(list, show, check, pull, del)
	return cmd
}
