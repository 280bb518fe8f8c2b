package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rimloc/rimloc/pkg/buildmod"
	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/langdir"
	"github.com/spf13/cobra"
)

// NewBuildModCommand creates the build-mod command.
func NewBuildModCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-mod <po-file>",
		Short: "Assemble a standalone translation mod from a PO file",
		Long: `Build a translation-only mod: About/About.xml plus LanguageData files
grouped by the PO references.

Examples:
  rimloc build-mod my.po --out ./MyMod-ru --lang ru --name "MyMod RU" --package-id my.mod.ru
  rimloc build-mod my.po --out ./MyMod-ru --lang ru --dedupe --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			lang, _ := cmd.Flags().GetString("lang")
			langDirFlag, _ := cmd.Flags().GetString("lang-dir")
			name, _ := cmd.Flags().GetString("name")
			packageID, _ := cmd.Flags().GetString("package-id")
			rwVersion, _ := cmd.Flags().GetString("rw-version")
			dedupe, _ := cmd.Flags().GetBool("dedupe")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			folder := langDirFlag
			if folder == "" {
				if lang == "" {
					return fmt.Errorf("one of --lang or --lang-dir is required")
				}
				folder = langdir.ForLang(lang)
			}
			opts := buildmod.Options{
				ModName:   name,
				PackageID: packageID,
				RwVersion: rwVersion,
				LangDir:   folder,
				Dedupe:    dedupe,
			}

			if dryRun {
				plan, err := buildmod.PlanFromPo(args[0], out, opts)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(plan)
				}
				rows := make([][]string, 0, len(plan.Files))
				for _, f := range plan.Files {
					rows = append(rows, []string{f.Path, strconv.Itoa(f.Keys)})
				}
				fmt.Print(console.RenderTable(console.TableConfig{
					Title:     "Build plan (dry run)",
					Headers:   []string{"File", "Keys"},
					Rows:      rows,
					ShowTotal: true,
					TotalRow:  []string{"Total", strconv.Itoa(plan.TotalKeys)},
				}))
				return nil
			}

			if err := buildmod.BuildFromPo(args[0], out, opts); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Translation mod built at "+out))
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output mod directory (required)")
	cmd.Flags().String("lang", "", "Translation language ISO code")
	cmd.Flags().String("lang-dir", "", "Translation language folder name (overrides --lang)")
	cmd.Flags().String("name", "Translation Mod", "Mod name for About.xml")
	cmd.Flags().String("package-id", "rimloc.translation", "Package id for About.xml")
	cmd.Flags().String("rw-version", "1.5", "Supported game version for About.xml")
	cmd.Flags().Bool("dedupe", false, "Drop repeated keys inside one file, last wins")
	cmd.Flags().Bool("dry-run", false, "Print the plan without writing anything")
	cmd.Flags().BoolP("json", "j", false, "Output the plan as JSON")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
