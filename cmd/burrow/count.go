package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
	"github.com/aretw0/burrow/pkg/models"
)

var countCmd = &cobra.Command{
	Use:   "count <Class>",
	Short: "Count stored entities of a class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := models.DefaultCatalog().New(args[0]); err != nil {
			return err
		}
		return withEngine(cmd, false, func(ctx context.Context, engine *burrow.Engine) error {
			fmt.Fprintln(cmd.OutOrStdout(), engine.Count(args[0]))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
