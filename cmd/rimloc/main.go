package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rimloc/rimloc/pkg/cli"
	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/constants"
	"github.com/spf13/cobra"
)

// Build-time variables set by the release pipeline
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     constants.CLIName,
	Short:   "RimLoc translation toolkit for RimWorld mods",
	Version: version,
	Long: `RimLoc extracts, validates, exchanges, and diffs translations of
RimWorld mods.

Common Tasks:
  rimloc scan ./MyMod                         # List translation units
  rimloc export-po ./MyMod -o my.po --lang ru # Export for translation
  rimloc import-po my.po --root ./MyMod --lang ru
  rimloc validate ./MyMod                     # Check for problems
  rimloc diff-xml ./MyMod --target-dir Russian
  rimloc xml-health ./MyMod                   # Find broken XML

For detailed help on any command, use:
  rimloc [command] --help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rimloc version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(os.Stderr, "%s version %s\n", constants.CLIName, version)
		return nil
	},
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "extract",
		Title: "Extraction Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "exchange",
		Title: "Exchange Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "analysis",
		Title: "Analysis Commands:",
	})

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output showing detailed information")

	// Errors are printed by main with console formatting; Cobra should not
	// repeat them or dump usage text on top.
	rootCmd.SetOut(os.Stderr)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n", constants.CLIName))

	scanCmd := cli.NewScanCommand()
	exportCmd := cli.NewExportPoCommand()
	importCmd := cli.NewImportPoCommand()
	validateCmd := cli.NewValidateCommand()
	diffCmd := cli.NewDiffCommand()
	annotateCmd := cli.NewAnnotateCommand()
	healthCmd := cli.NewXMLHealthCommand()
	buildCmd := cli.NewBuildModCommand()
	initCmd := cli.NewInitCommand()
	learnCmd := cli.NewLearnDefsCommand()

	scanCmd.GroupID = "extract"
	initCmd.GroupID = "extract"
	learnCmd.GroupID = "extract"

	exportCmd.GroupID = "exchange"
	importCmd.GroupID = "exchange"
	buildCmd.GroupID = "exchange"

	validateCmd.GroupID = "analysis"
	diffCmd.GroupID = "analysis"
	annotateCmd.GroupID = "analysis"
	healthCmd.GroupID = "analysis"

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	cli.SetVersionInfo(version)

	if err := rootCmd.Execute(); err != nil {
		message := err.Error()
		if strings.HasPrefix(message, "✗") {
			fmt.Fprintln(os.Stderr, message)
		} else {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(message))
		}
		os.Exit(1)
	}
}
