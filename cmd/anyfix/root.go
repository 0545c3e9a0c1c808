package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for anyfix.
// Run without a subcommand, it prints the fix report.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anyfix",
		Short: "Print exact line-by-line fixes for 'any' types in the web app",
		Long: `anyfix prints a hand-curated catalog of replacements for overly
permissive 'any' type annotations in the web app, one fix per file and line.

The report is printed exactly as catalogued. Files are not read and nothing
is edited, and no project file is searched for: only --catalog or an
explicit --config changes what is printed. Use 'anyfix verify' to check the
catalog against a checkout.

Examples:
  # Print the built-in catalog
  anyfix

  # Print it as Markdown into a file
  anyfix --markdown -o docs/any-fixes.md

  # Print a catalog file created with 'anyfix init'
  anyfix -C .anyfix.yaml --json`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReportCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Project file path (verify and history also search .anyfix in the current and home directory)")

	addCatalogFlag(cmd)
	addReportFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// addCatalogFlag registers --catalog on cmd.
func addCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("catalog", "C", "",
		"Catalog file to use instead of the built-in catalog")
}

// addReportFlags registers the output format flags on cmd.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
