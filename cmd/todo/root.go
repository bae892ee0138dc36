package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/todoapi/client"
	"github.com/adamwoolhether/todoapi/client/restyclient"
	"github.com/adamwoolhether/todoapi/client/throttle"
	"github.com/adamwoolhether/todoapi/internal/config"
	"github.com/adamwoolhether/todoapi/todo"
)

// app carries state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	jsonOutput bool
	configFile string
	envFile    string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Manage tasks on a /todos API",
		Long:          `A CLI for the JSONPlaceholder /todos resource, or any API speaking the same protocol.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.jsonOutput, "json", false, "Output as JSON")
	flags.StringVar(&a.configFile, "config", "", "Config file (default ./todo.yaml)")
	flags.StringVar(&a.envFile, "env-file", "", "Env file (default ./.env)")
	flags.String("base-url", "", "API base URL")
	flags.Duration("timeout", 0, "Request timeout")
	flags.String("user-agent", "", "User-Agent header")
	flags.Int("throttle-rps", 0, "Requests per second, 0 disables throttling")
	flags.Int("throttle-burst", 0, "Throttle burst size")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("transport", "", "HTTP transport: net/http or resty")

	cmd.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newServeCmd(a),
	)

	return cmd
}

// load resolves configuration and the logger once flags are parsed.
func (a *app) load(cmd *cobra.Command) error {
	opts := []config.Option{config.WithFlags(cmd.Flags())}
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	return nil
}

// client builds the todo client over the configured transport.
func (a *app) client() (*todo.Client, error) {
	opts := []todo.Option{
		todo.WithBaseURL(a.cfg.BaseURL),
		todo.WithLogger(a.logger),
	}

	switch a.cfg.Transport {
	case config.TransportResty:
		restyOpts := []restyclient.Option{
			restyclient.WithTimeout(a.cfg.Timeout),
			restyclient.WithUserAgent(a.cfg.UserAgent),
			restyclient.WithLogger(a.logger),
		}
		if a.cfg.Throttled() {
			rt, err := throttle.NewRoundTripper(a.cfg.ThrottleRPS, a.cfg.ThrottleBurst, func() *slog.Logger { return a.logger }, http.DefaultTransport)
			if err != nil {
				return nil, fmt.Errorf("configuring throttle: %w", err)
			}
			restyOpts = append(restyOpts, restyclient.WithTransport(rt))
		}

		rc, err := restyclient.New(restyOpts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, todo.WithDoer(rc))

	default:
		httpOpts := []client.Option{
			client.WithTimeout(a.cfg.Timeout),
			client.WithUserAgent(a.cfg.UserAgent),
		}
		if a.cfg.Throttled() {
			httpOpts = append(httpOpts, client.WithThrottle(a.cfg.ThrottleRPS, a.cfg.ThrottleBurst))
		}
		opts = append(opts, todo.WithHTTPOptions(httpOpts...))
	}

	return todo.New(opts...)
}
