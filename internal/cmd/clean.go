package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	cleanExpunge bool
	cleanYes     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove staging and output directories",
	Long: `Remove the dist tree and the bundler's output directories.

Use --expunge to also remove the entire native build cache (the cargo
target directory); this frees a lot of disk space but forces a full
recompile, so it asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanExpunge, "expunge", false, "Also remove the native build cache")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(false)
	if err != nil {
		return err
	}

	if cleanExpunge && !cleanYes {
		prompt := promptui.Prompt{
			Label:     "Remove the native build cache and force a full recompile",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := p.Clean(cleanExpunge); err != nil {
		return err
	}
	fmt.Println("✅ Clean completed")
	return nil
}
