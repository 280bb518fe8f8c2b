package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/importer"
	"github.com/rimloc/rimloc/pkg/langdir"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <root>",
		Short: "Create an empty translation skeleton for a target language",
		Long: `Mirror the source language tree file-by-file into the target language
folder, writing every key with an empty value so translators can fill them
in place.

Examples:
  rimloc init ./Mods/MyMod --lang ru
  rimloc init ./Mods/MyMod --lang-dir Russian --dry-run
  rimloc init ./Mods/MyMod --lang ru --overwrite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDir, _ := cmd.Flags().GetString("source-dir")
			lang, _ := cmd.Flags().GetString("lang")
			langDirFlag, _ := cmd.Flags().GetString("lang-dir")
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

			folder := langDirFlag
			if folder == "" {
				if lang == "" {
					return fmt.Errorf("one of --lang or --lang-dir is required")
				}
				folder = langdir.ForLang(lang)
			}

			scanRoot, err := resolveScanRoot(args[0], gameVersion, verbose)
			if err != nil {
				return err
			}
			plan, err := importer.MakeInitPlan(scanRoot, sourceDir, folder)
			if err != nil {
				return err
			}

			if jsonOutput && dryRun {
				return printJSON(plan)
			}
			if dryRun {
				rows := make([][]string, 0, len(plan.Files))
				for _, f := range plan.Files {
					rows = append(rows, []string{f.Path, strconv.Itoa(len(f.Keys))})
				}
				fmt.Print(console.RenderTable(console.TableConfig{
					Title:   "Init plan (dry run)",
					Headers: []string{"File", "Keys"},
					Rows:    rows,
				}))
				return nil
			}

			written, err := importer.WriteInitPlan(plan, overwrite, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf(
				"Wrote %d skeleton files for %s", written, folder)))
			return nil
		},
	}

	cmd.Flags().String("source-dir", "English", "Source language folder name")
	cmd.Flags().String("lang", "", "Target language ISO code")
	cmd.Flags().String("lang-dir", "", "Target language folder name (overrides --lang)")
	cmd.Flags().Bool("overwrite", false, "Overwrite existing files")
	cmd.Flags().Bool("dry-run", false, "Print the plan without writing anything")
	cmd.Flags().String("game-version", "", "Game version subtree to scan")
	cmd.Flags().BoolP("json", "j", false, "Output the plan as JSON")
	return cmd
}
