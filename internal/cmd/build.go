package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claudiacode/claudia-build/internal/platform"
)

func init() {
	for _, alias := range platform.Aliases() {
		rootCmd.AddCommand(newPlatformCmd(alias))
	}
	rootCmd.AddCommand(allCmd)
}

// newPlatformCmd creates the single-platform build command for one alias.
func newPlatformCmd(alias string) *cobra.Command {
	target, err := platform.Resolve(alias)
	if err != nil {
		// Aliases come from the matrix itself.
		panic(err)
	}

	return &cobra.Command{
		Use:   alias,
		Short: fmt.Sprintf("Build and package %s (%s)", target.Name, target.Triple),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(false)
			if err != nil {
				return err
			}
			_, err = p.RunSingle(context.Background(), alias)
			return err
		},
	}
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Build and package every platform reachable from this host",
	Long: `Build and package all platforms in the host's capability matrix.

Cross-compilation toward non-native targets is best-effort: a target whose
toolchain is missing is reported as a warning and the remaining targets
still build. The exit code is non-zero only when the shared setup stages
(dependency check, validation, frontend build) fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(true)
		if err != nil {
			return err
		}
		_, err = p.RunAll(context.Background())
		return err
	},
}
