package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow/pkg/models"
)

var typesCmd = &cobra.Command{
	Use:   "types [Class]",
	Short: "Print attribute kinds of a class, or the known classes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := models.DefaultCatalog()
		if len(args) == 0 {
			for _, class := range catalog.Classes() {
				fmt.Fprintln(cmd.OutOrStdout(), class)
			}
			return nil
		}

		kinds, err := catalog.AttributeTypes(args[0])
		if err != nil {
			return err
		}
		names := make([]string, 0, len(kinds))
		for name := range kinds {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, kinds[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
