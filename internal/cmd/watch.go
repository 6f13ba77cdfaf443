package cmd

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/claudiacode/claudia-build/internal/execx"
	"github.com/claudiacode/claudia-build/internal/frontend"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the frontend on source changes",
	Long: `Watch the frontend sources and rerun the asset build after each change.
Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	frontendDir := filepath.Join(root, cfg.Paths.Frontend)
	builder := frontend.NewBuilder(execx.Local{}, frontendDir)
	if err := builder.Build(ctx); err != nil {
		return err
	}

	watcher := frontend.NewWatcher(builder, frontendDir)
	if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
