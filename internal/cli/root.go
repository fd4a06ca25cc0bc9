// Package cli wires the drivemeta subcommands. Every command shares the
// same bootstrap (logger, config, Supabase client, store), built once and
// handed to components by constructor injection.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/config"
	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/internal/store"
)

var (
	flagDryRun  bool
	flagVerbose bool
	flagLimit   int
)

// App holds the per-invocation dependencies. Lifecycle is owned here, in
// the CLI entry point, not by package-level state in the components.
type App struct {
	Log   *zap.Logger
	Cfg   *config.Config
	Store *store.Store
}

var app *App

var rootCmd = &cobra.Command{
	Use:           "drivemeta",
	Short:         "Maintain Google Drive metadata mirrored into Supabase",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "report intended changes without writing")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "extra logging")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "cap the number of processed rows (0 = no cap)")
}

func bootstrap() error {
	var (
		log *zap.Logger
		err error
	)
	if flagVerbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return &cmderr.ValidationError{Msg: err.Error()}
	}

	if claims, kerr := config.InspectKey(cfg.SupabaseKey); kerr != nil {
		log.Warn("could not inspect supabase key", zap.Error(kerr))
	} else {
		if claims.Role == "anon" {
			log.Warn("supabase key has anon role; mutating commands will be rejected by RLS")
		}
		if claims.ExpiresSoon(time.Now()) {
			log.Warn("supabase key expires soon", zap.Time("expires_at", claims.ExpiresAt))
		}
	}

	client, err := store.InitSupabaseClient(cfg)
	if err != nil {
		return &cmderr.ConnectionError{Op: "connect to supabase", Err: err}
	}

	app = &App{Log: log, Cfg: cfg, Store: store.NewStore(client)}
	return nil
}

// Execute runs the CLI and returns the process exit code. Partial batch
// failures are reported but still exit 0, matching the scripts' historic
// log-and-continue behavior.
func Execute() int {
	err := rootCmd.Execute()
	if app != nil && app.Log != nil {
		_ = app.Log.Sync()
	}
	code := cmderr.ExitCode(err)
	if err != nil && code != 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return code
}
