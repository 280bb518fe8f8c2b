package cli

import (
	"fmt"
	"os"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/diff"
	"github.com/spf13/cobra"
)

// NewDiffCommand creates the diff-xml command.
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff-xml <root>",
		Short: "Diff source and translated language trees",
		Long: `Compare the source language folder against a translation folder and
report keys only present on one side. With --baseline-po, keys whose source
text changed since the baseline export are reported as changed.

--out-dir writes ChangedData.txt, TranslationData.txt, and ModData.txt.
--apply-flags rewrites the translation XML, marking changed keys as fuzzy
and orphaned keys as unused with stable comments.

Examples:
  rimloc diff-xml ./Mods/MyMod --source-dir English --target-dir Russian
  rimloc diff-xml ./Mods/MyMod --target-dir Russian --baseline-po old.po
  rimloc diff-xml ./Mods/MyMod --target-dir Russian --out-dir reports
  rimloc diff-xml ./Mods/MyMod --target-dir Russian --apply-flags --backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDir, _ := cmd.Flags().GetString("source-dir")
			targetDir, _ := cmd.Flags().GetString("target-dir")
			baselinePo, _ := cmd.Flags().GetString("baseline-po")
			outDir, _ := cmd.Flags().GetString("out-dir")
			applyFlags, _ := cmd.Flags().GetBool("apply-flags")
			backup, _ := cmd.Flags().GetBool("backup")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			strict, _ := cmd.Flags().GetBool("strict")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if targetDir == "" {
				return fmt.Errorf("--target-dir is required")
			}
			return RunDiff(args[0], gameVersion, sourceDir, targetDir, baselinePo, outDir, applyFlags, backup, strict, jsonOutput, verbose)
		},
	}

	cmd.Flags().String("source-dir", "English", "Source language folder name")
	cmd.Flags().String("target-dir", "", "Translation language folder name (required)")
	cmd.Flags().String("baseline-po", "", "Baseline PO for change detection")
	cmd.Flags().String("out-dir", "", "Directory to write the three report files")
	cmd.Flags().Bool("apply-flags", false, "Rewrite translation XML with fuzzy/unused markers")
	cmd.Flags().Bool("backup", false, "Back up files rewritten by --apply-flags")
	cmd.Flags().String("game-version", "", "Game version subtree to scan")
	cmd.Flags().Bool("strict", false, "Exit non-zero when the diff is not empty")
	cmd.Flags().BoolP("json", "j", false, "Output the diff as JSON")
	_ = cmd.MarkFlagRequired("target-dir")
	return cmd
}

// RunDiff computes and reports a language diff.
func RunDiff(root, gameVersion, sourceDir, targetDir, baselinePo, outDir string, applyFlags, backup, strict, jsonOutput, verbose bool) error {
	scanRoot, err := resolveScanRoot(root, gameVersion, verbose)
	if err != nil {
		return err
	}
	out, err := diff.Compute(scanRoot, sourceDir, targetDir, baselinePo)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := diff.WriteReports(outDir, out); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Reports written to "+outDir))
	}

	if applyFlags {
		rewritten, err := diff.ApplyFlags(scanRoot, targetDir, out, backup)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Flagged %d files", rewritten)))
	}

	if jsonOutput {
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf(
			"%d changed, %d only in translation, %d only in mod",
			len(out.Changed), len(out.OnlyInTranslation), len(out.OnlyInMod))))
	}

	if strict && !out.IsEmpty() {
		return fmt.Errorf("differences found in strict mode")
	}
	return nil
}
