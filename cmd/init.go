package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadsearch-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml",
	Long:  "Writes a commented starter configuration to the current directory. Fill in product.name before running a search.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfgPath
		if path == "" {
			path = "config.yaml"
		}
		if err := config.WriteExample(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s. Edit product.name and your segments, then run `leadsearch search`.\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
