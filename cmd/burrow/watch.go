package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/aretw0/burrow"
	"github.com/aretw0/burrow/pkg/adapters/changes"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the store loaded and report external changes",
	Long: `Open the store and reload it whenever it changes on disk, printing each change.
Stops on SIGINT/SIGTERM, persisting the registry before exit. Only the fs adapter can be watched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newWatchApp(cmd.OutOrStdout())
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func newWatchApp(out io.Writer, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		fx.NopLogger,
		fx.Supply(logger),
		fx.Provide(newEngine),
		fx.Invoke(func(lc fx.Lifecycle, engine *burrow.Engine, logger *slog.Logger) {
			registerWatchHooks(lc, engine, logger, out)
		}),
	}
	return fx.New(append(opts, extra...)...)
}

// newEngine opens the store and closes it when the application stops.
func newEngine(lc fx.Lifecycle) (*burrow.Engine, error) {
	engine, err := openEngine(context.Background())
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return engine.Close(ctx)
		},
	})
	return engine, nil
}

// registerWatchHooks starts watching on application start and stops on shutdown.
func registerWatchHooks(lc fx.Lifecycle, engine *burrow.Engine, logger *slog.Logger, out io.Writer) {
	watchCtx, cancel := context.WithCancel(context.Background())
	var src *changes.ChangeSource

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			events, err := engine.Watch(watchCtx)
			if err != nil {
				cancel()
				return err
			}

			src = changes.NewSource(events)
			if err := src.Start(watchCtx); err != nil {
				cancel()
				return err
			}

			lifecycle.Go(watchCtx, func(ctx context.Context) error {
				for e := range src.Events() {
					fmt.Fprintf(out, "%s (%d objects)\n", e, engine.Count(""))
				}
				return nil
			})

			logger.Info("watching store", "objects", engine.Count(""))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			if src != nil {
				logger.Info("stopped watching", "changes", src.Forwarded())
			}
			return nil
		},
	})
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
