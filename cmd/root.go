// Package cmd holds the dockhand CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"

	"dockhand/internal/config"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "dockhand",
		Short: "Dockhand - deployment manager for container nodes",
		Long: `Dockhand runs a small web application that deploys container images
to registered nodes and drives their lifecycle.`,
	}
)

// Execute runs the CLI with the build metadata stamped at link time.
func Execute(build, commit, date string) error {
	buildInfo = config.BuildConfig{Version: build, Commit: commit, Date: date}
	return rootCmd.Execute()
}

var buildInfo config.BuildConfig

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the user config dir)")
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.Build = buildInfo
	return cfg, nil
}
