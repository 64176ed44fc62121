package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scanproof version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("scanproof %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
