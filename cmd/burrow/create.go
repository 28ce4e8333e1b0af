package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
	"github.com/aretw0/burrow/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create <Class> [key=value ...]",
	Short: "Create an entity and print its id",
	Long: `Create a new entity of the given class, assign the optional attributes and save it.
String values may be quoted; underscores inside quotes become spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, true, func(ctx context.Context, engine *burrow.Engine) error {
			e, err := models.DefaultCatalog().Create(args[0])
			if err != nil {
				return err
			}
			for _, arg := range args[1:] {
				key, raw, err := parseAssignment(arg)
				if err != nil {
					return err
				}
				if err := assign(e, key, raw); err != nil {
					return err
				}
			}
			if err := burrow.Save(ctx, engine, e); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Meta().ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
