package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/validate"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <root>",
		Short: "Check translation units for duplicates, empties, and placeholders",
		Long: `Validate the unit stream of a mod root: duplicate keys, empty values,
and placeholder hints. With --compare, placeholder sets of the source and
target language values are compared per key.

Examples:
  rimloc validate ./Mods/MyMod
  rimloc validate ./Mods/MyMod --source-lang-dir English
  rimloc validate ./Mods/MyMod --source-lang-dir English --compare Russian
  rimloc validate ./Mods/MyMod --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceLang, _ := cmd.Flags().GetString("source-lang")
			sourceLangDir, _ := cmd.Flags().GetString("source-lang-dir")
			compare, _ := cmd.Flags().GetString("compare")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			strict, _ := cmd.Flags().GetBool("strict")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return RunValidate(args[0], gameVersion, sourceLang, sourceLangDir, compare, strict, jsonOutput, verbose)
		},
	}

	cmd.Flags().String("source-lang", "", "Source language ISO code")
	cmd.Flags().String("source-lang-dir", "", "Source language folder name")
	cmd.Flags().String("compare", "", "Target language folder for cross-language placeholder checks")
	cmd.Flags().String("game-version", "", "Game version subtree to scan")
	cmd.Flags().Bool("strict", false, "Exit non-zero on any placeholder mismatch")
	cmd.Flags().BoolP("json", "j", false, "Output messages as JSON")
	return cmd
}

// RunValidate validates a mod root and prints the findings.
func RunValidate(root, gameVersion, sourceLang, sourceLangDir, compare string, strict, jsonOutput, verbose bool) error {
	scanRoot, err := resolveScanRoot(root, gameVersion, verbose)
	if err != nil {
		return err
	}
	messages, err := validate.UnderRoot(scanRoot, validate.Options{
		SourceLang:     sourceLang,
		SourceLangDir:  sourceLangDir,
		CompareLangDir: compare,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(messages); err != nil {
			return err
		}
	} else if len(messages) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("No issues found"))
	} else {
		counts := make(map[string]int)
		for _, m := range messages {
			counts[m.Kind]++
			fmt.Fprintln(os.Stderr, console.FormatFileIssue(m.Path, m.Line, "warning",
				fmt.Sprintf("[%s] %s: %s", m.Kind, m.Key, m.Message)))
		}
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf(
			"%d findings (duplicate=%s empty=%s placeholder=%s)",
			len(messages),
			strconv.Itoa(counts[validate.KindDuplicate]),
			strconv.Itoa(counts[validate.KindEmpty]),
			strconv.Itoa(counts[validate.KindPlaceholder]))))
	}

	if strict && validate.HasMismatch(messages) {
		return fmt.Errorf("placeholder mismatches found in strict mode")
	}
	return nil
}
