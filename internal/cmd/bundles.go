package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var bundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "Produce installer bundles for the host's native platform",
	Long: `Produce platform-native installer bundles (deb/appimage, dmg, msi/nsis)
for the host platform instead of a raw binary archive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(false)
		if err != nil {
			return err
		}
		_, err = p.RunBundles(context.Background())
		return err
	},
}

func init() {
	rootCmd.AddCommand(bundlesCmd)
}
