package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of burrow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "burrow version %s\n", burrow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
