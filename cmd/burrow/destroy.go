package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy <Class> <id>",
	Short: "Delete an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, true, func(ctx context.Context, engine *burrow.Engine) error {
			return engine.Delete(ctx, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}
