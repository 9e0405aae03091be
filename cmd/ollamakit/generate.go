package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ollamakit/internal/adapter"
	"ollamakit/internal/session"
	"ollamakit/pkg/types"
)

// samplingFlags registers --temperature and --num-predict on cmd.
func samplingFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("temperature", 0, "Sampling temperature, 0-2 (default options.temperature, else the server default)")
	cmd.Flags().Int("num-predict", 0, "Maximum tokens to generate, 100-4000 (default options.num_predict, else the server default)")
}

// options merges the configured sampling with the flags that were set. Nothing
// is sent when neither sets a field.
func (a *app) options(cmd *cobra.Command) (*types.Options, error) {
	var s types.SettingsRequest
	if cmd.Flags().Changed("temperature") {
		v, _ := cmd.Flags().GetFloat64("temperature")
		s.Temperature = &v
	}
	if cmd.Flags().Changed("num-predict") {
		v, _ := cmd.Flags().GetInt("num-predict")
		s.NumPredict = &v
	}
	over, err := s.Options()
	if err != nil {
		return nil, err
	}
	return a.cfg.Options.ToOptions().Merge(over).OrNil(), nil
}

// model picks the --model flag, then default_model, then the first
// installed model.
func (a *app) model(cmd *cobra.Command) (string, error) {
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		return m, nil
	}
	if a.cfg.DefaultModel != "" {
		return a.cfg.DefaultModel, nil
	}
	names, err := a.svc.ModelChoices(cmd.Context())
	if err != nil {
		return "", err
	}
	return names[0], nil
}

// printer renders a reply to w as fragments arrive.
func printer(w io.Writer) adapter.Renderer {
	return adapter.RenderFunc(func(u adapter.Update) {
		switch {
		case u.Err != nil:
			fmt.Fprintln(w, u.Text)
		case u.Done:
			fmt.Fprintln(w, u.Delta)
		default:
			fmt.Fprint(w, u.Delta)
		}
	})
}

func generateCmd(a *app) *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:     "generate [flags] PROMPT...",
		Aliases: []string{"gen"},
		Short:   "Generate text from a single prompt",
		Example: "  ollamakit generate --model llama3.2:latest Write a haiku about Go\n  ollamakit generate --stream --temperature 1.2 Tell me a story",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.model(cmd)
			if err != nil {
				return err
			}
			opts, err := a.options(cmd)
			if err != nil {
				return err
			}
			// The failure is printed by main, so the renderer skips it.
			p := printer(a.out)
			r := adapter.RenderFunc(func(u adapter.Update) {
				if u.Err == nil {
					p.Render(u)
				}
			})
			_, err = a.svc.GenerateText(cmd.Context(), model, strings.Join(args, " "), stream, opts, r)
			return err
		},
	}
	cmd.Flags().StringP("model", "m", "", "Model name (defaults default_model or the first installed model)")
	cmd.Flags().BoolVarP(&stream, "stream", "s", false, "Print the reply as it is generated")
	samplingFlags(cmd)
	return cmd
}

func chatCmd(a *app) *cobra.Command {
	var noStream bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with a model; /clear resets the history, /exit quits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.model(cmd)
			if err != nil {
				return err
			}
			opts, err := a.options(cmd)
			if err != nil {
				return err
			}
			sess := session.New(model, opts)
			a.log.Debug().Str("session", sess.ID()).Str("model", model).Msg("chat started")
			fmt.Fprintf(a.out, "Chatting with %s. Type /clear to reset the history or /exit to quit.\n", model)

			p := printer(a.out)
			sc := bufio.NewScanner(a.in)
			for {
				fmt.Fprint(a.out, "> ")
				if !sc.Scan() {
					fmt.Fprintln(a.out)
					return sc.Err()
				}
				line := strings.TrimSpace(sc.Text())
				switch line {
				case "":
					continue
				case "/exit", "/quit":
					return nil
				case "/clear":
					sess.Clear()
					fmt.Fprintln(a.out, "Chat history cleared.")
					continue
				}
				// Failures are already printed and kept in the transcript.
				if _, err := a.svc.ChatTurn(cmd.Context(), sess, "", line, !noStream, p); err != nil && cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}
			}
		},
	}
	cmd.Flags().StringP("model", "m", "", "Model name (defaults default_model or the first installed model)")
	cmd.Flags().BoolVar(&noStream, "no-stream", false, "Wait for the whole reply instead of streaming it")
	samplingFlags(cmd)
	return cmd
}

func menuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive model management menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return adapter.NewMenu(a.svc.Registry(), a.in, a.out).Run(cmd.Context())
		},
	}
}
