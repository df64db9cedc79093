package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tendril/scene"
)

func layoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "layouts",
		Aliases: []string{"ls"},
		Short:   "List built-in layouts; keys 1-9 select them while running",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			layouts := scene.Layouts()
			rows := make([][]string, len(layouts))
			for i, l := range layouts {
				rows[i] = []string{strconv.Itoa(i + 1), l.Name, l.Description}
			}
			printTable(cmd.OutOrStdout(), []string{"KEY", "NAME", "DESCRIPTION"}, rows)
		},
	}
}
