package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
)

var updateCmd = &cobra.Command{
	Use:   "update <Class> <id> <attribute> <value>",
	Short: "Set one attribute of an entity and save it",
	Long: `Set one attribute of an entity and save it.
Declared attributes are converted to their kind; id and timestamps cannot be set.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, true, func(ctx context.Context, engine *burrow.Engine) error {
			e, err := engine.Get(args[0], args[1])
			if err != nil {
				return err
			}
			if err := assign(e, args[2], args[3]); err != nil {
				return err
			}
			return burrow.Save(ctx, engine, e)
		})
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
