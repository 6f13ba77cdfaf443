package cmd

import (
	"fmt"
	"os"

	"github.com/claudiacode/claudia-build/internal/config"
	"github.com/claudiacode/claudia-build/internal/pipeline"
)

// loadProject locates the project root from the current directory and
// loads its configuration.
func loadProject() (string, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	root, err := config.FindRoot(cwd)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// newPipeline builds a production pipeline for the current project.
func newPipeline(progress bool) (*pipeline.Pipeline, error) {
	root, cfg, err := loadProject()
	if err != nil {
		return nil, err
	}
	return pipeline.New(root, cfg, pipeline.Options{Progress: progress}), nil
}
