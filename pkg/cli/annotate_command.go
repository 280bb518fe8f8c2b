package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rimloc/rimloc/pkg/annotate"
	"github.com/rimloc/rimloc/pkg/console"
	"github.com/spf13/cobra"
)

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate <root>",
		Short: "Insert source-text comments into translation XML",
		Long: `Insert a comment with the original source text before each key in the
target language Keyed files, so translators see the original next to their
translation. Re-running refreshes existing annotations instead of stacking
them. --strip removes comments instead.

Examples:
  rimloc annotate ./Mods/MyMod --target-dir Russian
  rimloc annotate ./Mods/MyMod --target-dir Russian --prefix EN:
  rimloc annotate ./Mods/MyMod --target-dir Russian --strip
  rimloc annotate ./Mods/MyMod --target-dir Russian --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDir, _ := cmd.Flags().GetString("source-dir")
			targetDir, _ := cmd.Flags().GetString("target-dir")
			prefix, _ := cmd.Flags().GetString("prefix")
			strip, _ := cmd.Flags().GetBool("strip")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			backup, _ := cmd.Flags().GetBool("backup")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if targetDir == "" {
				return fmt.Errorf("--target-dir is required")
			}
			return RunAnnotate(args[0], gameVersion, sourceDir, targetDir, prefix, strip, dryRun, backup, jsonOutput, verbose)
		},
	}

	cmd.Flags().String("source-dir", "English", "Source language folder name")
	cmd.Flags().String("target-dir", "", "Translation language folder name (required)")
	cmd.Flags().String("prefix", "EN:", "Comment prefix before the source text")
	cmd.Flags().Bool("strip", false, "Remove comments instead of adding them")
	cmd.Flags().Bool("dry-run", false, "Report planned changes without writing")
	cmd.Flags().Bool("backup", false, "Back up rewritten files to *.xml.bak")
	cmd.Flags().String("game-version", "", "Game version subtree to scan")
	cmd.Flags().BoolP("json", "j", false, "Output the plan or summary as JSON")
	_ = cmd.MarkFlagRequired("target-dir")
	return cmd
}

// RunAnnotate annotates or strips the target language Keyed files.
func RunAnnotate(root, gameVersion, sourceDir, targetDir, prefix string, strip, dryRun, backup, jsonOutput, verbose bool) error {
	scanRoot, err := resolveScanRoot(root, gameVersion, verbose)
	if err != nil {
		return err
	}
	plan, summary, err := annotate.Run(scanRoot, annotate.Options{
		SourceLangDir: sourceDir,
		TargetLangDir: targetDir,
		CommentPrefix: prefix,
		Strip:         strip,
		DryRun:        dryRun,
		Backup:        backup,
	})
	if err != nil {
		return err
	}

	if plan != nil {
		if jsonOutput {
			return printJSON(plan)
		}
		rows := make([][]string, 0, len(plan.Files))
		for _, f := range plan.Files {
			rows = append(rows, []string{f.Path, strconv.Itoa(f.Add), strconv.Itoa(f.Strip)})
		}
		fmt.Print(console.RenderTable(console.TableConfig{
			Title:     "Annotate plan (dry run)",
			Headers:   []string{"File", "Add", "Strip"},
			Rows:      rows,
			ShowTotal: true,
			TotalRow:  []string{"Total", strconv.Itoa(plan.TotalAdd), strconv.Itoa(plan.TotalStrip)},
		}))
		return nil
	}

	if jsonOutput {
		return printJSON(summary)
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf(
		"Annotated %d keys across %d files", summary.Annotated, summary.Processed)))
	return nil
}
