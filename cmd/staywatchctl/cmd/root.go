package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"staywatch/internal/app"
	"staywatch/internal/platform/config"
	"staywatch/internal/platform/logger"
)

var (
	// envFile is an optional .env file read before the environment.
	envFile string
	// verbose switches logging from warnings to debug.
	verbose bool

	// rootCmd runs one-off operations against the configured stores.
	rootCmd = &cobra.Command{
		Use:   "staywatchctl",
		Short: "Operate the staywatch compliance engine.",
		Long: `Run evaluations, dispatch cycles and compliance queries from the command line.

Configuration is read from the same environment variables as the server.
Without POSTGRES_URL the stores are in-memory and start empty, so most
commands are only useful against a configured database.`,
		SilenceUsage: true,
	}
)

// Execute runs the CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newEvaluateCommand(),
		newEvaluateAllCommand(),
		newDispatchCommand(),
		newWindowCommand(),
		newForecastCommand(),
		newMigrateCommand(),
	)
}

// withApp builds the application for one command and tears it down after.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.New(level, "text")

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	if !a.Persistent() {
		log.Warn("running against empty in-memory stores")
	}
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
