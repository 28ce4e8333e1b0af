package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
	"github.com/aretw0/burrow/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <Class> <id>",
	Short: "Print an entity",
	Long:  `Print an entity in its "[Class] (id) attributes" form, or as its flat record with --json.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, false, func(ctx context.Context, engine *burrow.Engine) error {
			e, err := engine.Get(args[0], args[1])
			if err != nil {
				return err
			}
			if showJSON {
				return writeJSON(cmd.OutOrStdout(), core.Encode(e))
			}
			fmt.Fprintln(cmd.OutOrStdout(), core.Render(e))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
