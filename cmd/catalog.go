package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ankitkaran99/tinymce-components/internal/catalog"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"c", "list"},
	Short:   "List the built-in component definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.New(logging.NewNop())
		if err := catalog.RegisterAll(reg); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, cat := range reg.Categories() {
			fmt.Fprintf(out, "%s:\n", cat)
			for _, def := range reg.ByCategory(cat) {
				props := make([]string, 0, len(def.Properties))
				for _, p := range def.Properties {
					props = append(props, fmt.Sprintf("%s(%s)", p.Name, p.Type))
				}
				fmt.Fprintf(out, "  %-16s %-16s %s\n", def.ID, def.Name, strings.Join(props, " "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
