// Package cmd wires the claudia-build command surface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "claudia-build",
	Short: "Build and package Claudia release artifacts",
	Long: `claudia-build orchestrates the Claudia desktop release pipeline:
it validates project resources, builds the frontend assets, cross-compiles
the native binary per platform, and packages versioned release archives.

Platforms: linux | windows | macos | macos-arm | macos-universal`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}
