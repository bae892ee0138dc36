package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/todoapi/todotest"
	"github.com/adamwoolhether/todoapi/web/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr            string
		fixture         string
		readTimeout     time.Duration
		writeTimeout    time.Duration
		idleTimeout     time.Duration
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory /todos API",
		Long: `Serve an in-memory implementation of the /todos API until interrupted.

The store starts empty unless --fixture points at a JSON array of tasks,
such as a saved response from GET /todos.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []todotest.Option{todotest.WithLogger(a.logger)}
			if fixture != "" {
				opts = append(opts, todotest.WithFixture(fixture))
			}

			api, err := todotest.NewHandler(opts...)
			if err != nil {
				return err
			}

			a.logger.Info("serving fake todo api", "addr", addr, "tasks", len(api.Tasks()))

			srv := server.New(api,
				server.WithHost(addr),
				server.WithLogger(a.logger),
				server.WithReadTimeout(readTimeout),
				server.WithWriteTimeout(writeTimeout),
				server.WithIdleTimeout(idleTimeout),
				server.WithShutdownTimeout(shutdownTimeout),
			)

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:3000", "Listen address")
	cmd.Flags().StringVar(&fixture, "fixture", "", "JSON file of tasks to preload")
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", 5*time.Second, "Maximum time to read a request")
	cmd.Flags().DurationVar(&writeTimeout, "write-timeout", 10*time.Second, "Maximum time to write a response")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 120*time.Second, "Keep-alive idle timeout")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 20*time.Second, "Time allowed to drain requests on shutdown")

	return cmd
}
