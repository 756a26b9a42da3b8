package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/classview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize classview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that picks a default system and build targets, then writes a .classview.yml file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
