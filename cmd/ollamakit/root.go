package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ollamakit/internal/adapter"
	"ollamakit/internal/config"
	"ollamakit/internal/inference"
	"ollamakit/internal/logging"
	"ollamakit/internal/registry"
	"ollamakit/internal/transport"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	cfg     config.Config
	cfgPath string
	log     zerolog.Logger
	svc     *adapter.Adapter
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: bufio.NewReader(in), out: out, errOut: errOut, log: zerolog.Nop()}
}

// buildRootCmd constructs the command tree bound to a.
func buildRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ollamakit",
		Short:         "Manage and talk to models on a local Ollama server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	// Persistent flags -> Config, applied over file and environment.
	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .yml, .toml or .json); defaults to ~/.config/ollamakit/config.*")
	pf.String("base-url", "", "Model server API root (defaults OLLAMAKIT_BASE_URL or "+transport.DefaultBaseURL+")")
	pf.Int("timeout", 0, "Request timeout in seconds for non-streaming calls (0 waits forever)")
	pf.String("log-level", "", "Log level: trace|debug|info|warn|error|disabled")
	pf.String("log-format", "", "Log format: console|json")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}

	root.AddCommand(
		modelsCmd(a),
		generateCmd(a),
		chatCmd(a),
		menuCmd(a),
		serveCmd(a),
		configCmd(a),
		completionCmd(root),
	)
	return root
}

// setup resolves the configuration and builds the clients.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Resolve(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeoutSeconds, _ = flags.GetInt("timeout")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg, a.cfgPath = cfg, used
	a.log = logging.New(a.errOut, cfg.LogLevel, cfg.LogFormat)
	if used != "" {
		a.log.Debug().Str("path", used).Msg("config loaded")
	}

	tc := transport.New(transport.Config{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		ConnectTimeout: time.Duration(cfg.ConnectTimeoutSeconds) * time.Second,
		Logger:         &a.log,
	})
	a.svc = adapter.New(registry.New(tc), inference.New(tc), adapter.WithLogger(a.log))
	return nil
}

// confirm asks a y/N question on the app's input.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.out, "%s (y/N): ", question)
	line, _ := a.in.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func completionCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	// No config or server needed.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
	cmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	cmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	cmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	cmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	return cmd
}
