package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-vista/vista"
)

// env is the state shared by all subcommands.
type env struct {
	logger *log.Logger
	reg    *vista.Registry
}

type ctxKey int

const envKey ctxKey = 0

func withEnv(ctx context.Context, e *env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// envFromContext returns the env set up by the root command, or a quiet
// default one.
func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey).(*env); ok {
		return e
	}
	return &env{logger: log.New(io.Discard), reg: vista.NewStandardRegistry()}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "vdump",
		Short:        "Inspect Vista data files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			level, err := cfg.level()
			if err != nil {
				return err
			}
			if verbose {
				level = log.DebugLevel
			}
			order, err := cfg.hostOrder()
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), level)
			reg := vista.NewStandardRegistry(vista.WithLogger(logger), vista.WithHostOrder(order))
			logger.Debug("configured", "config", configPath, "level", level, "host_order", cfg.HostOrder)
			cmd.SetContext(withEnv(cmd.Context(), &env{logger: logger, reg: reg}))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")

	root.AddCommand(newDumpCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newBlockCmd("rows"))
	root.AddCommand(newBlockCmd("bands"))
	return root
}
