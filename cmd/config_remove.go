package cmd

import (
	"fmt"

	"github.com/tbenitez/epifetch/internal/config"

	"github.com/spf13/cobra"
)

var configRemoveCmd = &cobra.Command{
	Use:   "remove <config_label>",
	Short: "Remove a configuration profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		if err := config.RemoveConfig(label); err != nil {
			return err
		}

		fmt.Println("Removed config:", label)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRemoveCmd)
}
