package main

import (
	"context"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/aretw0/burrow"
	"github.com/aretw0/burrow/pkg/core"
	"github.com/aretw0/burrow/pkg/models"
)

var allJSON bool

var allCmd = &cobra.Command{
	Use:   "all [Class|pattern]",
	Short: "List stored entities",
	Long: `List every stored entity, or only those of one class.
A glob over "<Class>.<id>" keys is also accepted, e.g. "Place.*" or "{User,Review}.*".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, false, func(ctx context.Context, engine *burrow.Engine) error {
			pattern := ""
			if len(args) == 1 {
				pattern = classPattern(args[0])
			}

			entities, err := engine.All(pattern)
			if err != nil {
				return err
			}

			if allJSON {
				records := make([]core.Record, 0, len(entities))
				for _, e := range entities {
					records = append(records, core.Encode(e))
				}
				return writeJSON(cmd.OutOrStdout(), records)
			}
			for _, e := range entities {
				fmt.Fprintln(cmd.OutOrStdout(), core.Render(e))
			}
			return nil
		})
	},
}

// classPattern turns a bare class name into a key glob.
func classPattern(arg string) string {
	if _, err := models.DefaultCatalog().New(arg); err == nil {
		return arg + ".*"
	}
	return arg
}

func writeJSON(w io.Writer, v any) error {
	encoder := gojson.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(allCmd)
	allCmd.Flags().BoolVar(&allJSON, "json", false, "Output in JSON format")
}
