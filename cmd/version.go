package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Println(buildInfo.Version)
			return
		}
		bold := color.New(color.Bold)
		bold.Printf("Dockhand %s\n", orDev(buildInfo.Version))
		fmt.Printf("Commit: %s\n", orDev(buildInfo.Commit))
		fmt.Printf("Built:  %s\n", orDev(buildInfo.Date))
	},
}

func orDev(s string) string {
	if s == "" {
		return "dev"
	}
	return s
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Show only version number")
}
