package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/classview/internal/systems"
)

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List the known classification system keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTITLE\tVERSION")
		for _, p := range systems.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Title, p.Version)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(systemsCmd)
}
