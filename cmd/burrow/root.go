package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
)

var (
	verbose bool
	adapter string
	path    string
	dsn     string
	logger  = slog.New(slog.DiscardHandler)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "burrow",
	Short: "A console for burrow entity stores",
	Long: `burrow creates, inspects, updates and deletes stored entities
(BaseModel, User, State, City, Amenity, Place, Review) in a file, postgres or redis store.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("burrow", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", envOr("BURROW_ADAPTER", burrow.AdapterFS), "Storage adapter (fs, memory, postgres, redis)")
	rootCmd.PersistentFlags().StringVar(&path, "path", envOr("BURROW_PATH", "file.json"), "Store file for the fs adapter (.json, .yaml, .yml)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("BURROW_DSN"), "Postgres DSN or redis address")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// storePath returns the fs store to open. Unless a path was given, the
// nearest store file in the working directory or its parents is used.
func storePath(explicit bool, dir string) string {
	if explicit {
		return path
	}
	if found, err := burrow.FindStore(dir, filepath.Base(path)); err == nil {
		return found
	}
	return path
}

// openEngine opens the store selected by the global flags.
func openEngine(ctx context.Context) (*burrow.Engine, error) {
	uri := path
	if adapter == burrow.AdapterFS {
		explicit := rootCmd.PersistentFlags().Changed("path") || os.Getenv("BURROW_PATH") != ""
		if wd, err := os.Getwd(); err == nil {
			uri = storePath(explicit, wd)
		}
	}
	switch adapter {
	case burrow.AdapterPostgres, burrow.AdapterRedis:
		if dsn == "" {
			return nil, fmt.Errorf("--dsn is required for the %s adapter", adapter)
		}
		uri = dsn
	}
	return burrow.Open(ctx, uri,
		burrow.WithAdapter(adapter),
		burrow.WithLogger(logger),
	)
}

// withEngine runs fn against an open engine and releases it afterwards.
// With persist the registry is flushed on close; read-only commands pass
// false so they never overwrite changes made by other clients meanwhile.
func withEngine(cmd *cobra.Command, persist bool, fn func(ctx context.Context, engine *burrow.Engine) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine, err := openEngine(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	runErr := fn(ctx, engine)
	release := engine.Release
	if persist {
		release = func() error { return engine.Close(ctx) }
	}
	if err := release(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close store: %w", err)
	}
	return runErr
}
