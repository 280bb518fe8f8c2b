package cli

import (
	"fmt"
	"os"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/health"
	"github.com/spf13/cobra"
)

// NewXMLHealthCommand creates the xml-health command.
func NewXMLHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xml-health <root>",
		Short: "Scan XML files for encoding and structural problems",
		Long: `Check every XML file for problems that break the game's loader:
non-UTF-8 encoding declarations, DOCTYPEs, raw control characters, tag
mismatches, and invalid entities.

Examples:
  rimloc xml-health ./Mods/MyMod
  rimloc xml-health ./Mods/MyMod --lang-dir Russian
  rimloc xml-health ./Mods/MyMod --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			langDir, _ := cmd.Flags().GetString("lang-dir")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			strict, _ := cmd.Flags().GetBool("strict")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return RunXMLHealth(args[0], gameVersion, langDir, strict, jsonOutput, verbose)
		},
	}

	cmd.Flags().String("lang-dir", "", "Restrict the scan to one language folder")
	cmd.Flags().String("game-version", "", "Game version subtree to scan")
	cmd.Flags().Bool("strict", false, "Exit non-zero when any issue is found")
	cmd.Flags().BoolP("json", "j", false, "Output the report as JSON")
	return cmd
}

// RunXMLHealth scans XML files and prints the report.
func RunXMLHealth(root, gameVersion, langDir string, strict, jsonOutput, verbose bool) error {
	scanRoot, err := resolveScanRoot(root, gameVersion, verbose)
	if err != nil {
		return err
	}
	report, err := health.Scan(scanRoot, langDir)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(report); err != nil {
			return err
		}
	} else if len(report.Issues) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("%d files checked, no issues", report.Checked)))
	} else {
		for _, issue := range report.Issues {
			fmt.Fprintln(os.Stderr, console.FormatFileIssue(issue.Path, 0, "warning",
				fmt.Sprintf("[%s] %s", issue.Category, issue.Error)))
		}
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf(
			"%d files checked, %d issues", report.Checked, len(report.Issues))))
	}

	if strict && len(report.Issues) > 0 {
		return fmt.Errorf("xml health issues found in strict mode")
	}
	return nil
}
