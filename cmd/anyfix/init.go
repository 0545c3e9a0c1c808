package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/anyfix/internal/catalog"
	"github.com/nao1215/anyfix/internal/config"
)

// catalogFileName is the default catalog file name.
const catalogFileName = ".anyfix.yaml"

// catalogHeader is written above the generated catalog.
const catalogHeader = `# anyfix catalog
#
# Each entry replaces the text 'before' at 'line' of 'file' with 'after'.
# Paths are relative to the project root. Multi-line 'before' and 'after'
# values use YAML block scalars.
#
# Print this catalog:   anyfix -C %[1]s
# Check it:             anyfix verify -C %[1]s --root <web app checkout>

`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in catalog to an editable catalog file",
		Long: `Init writes the built-in catalog to a YAML catalog file so that fixes
can be added, removed, or corrected without rebuilding anyfix.

With --project, a .anyfix project file pointing at the catalog is written next
to it, so 'anyfix verify' and 'anyfix history' pick the catalog up, and
'anyfix -c .anyfix' prints it.

Examples:
  # Create .anyfix.yaml in current directory
  anyfix init

  # Create the catalog at a specific path
  anyfix init -o tools/any-fixes.yaml

  # Also create a .anyfix project file
  anyfix init --project

  # Force overwrite existing files
  anyfix init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", catalogFileName,
		"Output file path for the catalog")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")
	cmd.Flags().BoolP("project", "p", false,
		"Also write a "+config.DefaultConfigFile+" project file that uses the catalog")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	project, err := cmd.Flags().GetBool("project")
	if err != nil {
		return err
	}

	body, err := catalog.Marshal(catalog.Builtin())
	if err != nil {
		return err
	}
	content := append([]byte(fmt.Sprintf(catalogHeader, outputPath)), body...)

	if err := writeNewFile(outputPath, content, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created catalog file: %s\n", outputPath)

	if project {
		projectPath := filepath.Join(filepath.Dir(outputPath), config.DefaultConfigFile)
		content, err := projectFile(filepath.Base(outputPath))
		if err != nil {
			return err
		}
		if err := writeNewFile(projectPath, content, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created project file: %s\n", projectPath)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit the catalog to:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Correct line numbers after the web app changed")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Add fixes for new 'any' annotations")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Remove fixes that have been applied")

	return nil
}

// projectFile returns a project file that selects catalogPath.
// catalogPath is relative to the project file's directory.
func projectFile(catalogPath string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# anyfix project file\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.File{Catalog: catalogPath, Root: config.DefaultRoot}); err != nil {
		return nil, fmt.Errorf("failed to encode project file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode project file: %w", err)
	}
	return buf.Bytes(), nil
}

// writeNewFile writes content to path, creating parent directories.
// Unless force is set, an existing file is left untouched and reported.
func writeNewFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", path)
		}
	}

	// Create parent directories if needed
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
