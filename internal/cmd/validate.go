package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/claudiacode/claudia-build/internal/icon"
)

//go:embed schemas/bundler-config.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate project resources without building",
	Long: `Run the pre-build validation gate standalone: check the icon's magic
signature and, when present, validate the bundler configuration
(tauri.conf.json) against its JSON Schema. Both checks catch mistakes that
would otherwise surface as opaque native toolchain failures.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject()
	if err != nil {
		return err
	}

	iconPath := filepath.Join(root, cfg.Paths.Icon)
	fmt.Printf("🔍 Checking icon signature: %s\n", cfg.Paths.Icon)
	if err := icon.Check(iconPath, icon.ICOSignature); err != nil {
		return err
	}
	fmt.Println("   ✓ Valid ICO signature")

	confPath := filepath.Join(root, cfg.Paths.Native, "tauri.conf.json")
	if _, err := os.Stat(confPath); os.IsNotExist(err) {
		fmt.Println("   ℹ️  No tauri.conf.json, skipping bundler config check")
		return nil
	}

	fmt.Println("🔍 Validating bundler configuration...")
	if err := validateBundlerConfig(confPath); err != nil {
		return err
	}
	fmt.Println("   ✓ Bundler configuration valid")
	return nil
}

func validateBundlerConfig(confPath string) error {
	schemaBytes, err := schemaFS.ReadFile("schemas/bundler-config.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}
	confBytes, err := os.ReadFile(confPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", confPath, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(confBytes),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		fmt.Println("❌ Bundler configuration is invalid:")
		for _, desc := range result.Errors() {
			fmt.Printf("   - %s\n", desc)
		}
		return fmt.Errorf("%s does not match the bundler config schema", confPath)
	}
	return nil
}
