package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/importer"
	"github.com/rimloc/rimloc/pkg/langdir"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/spf13/cobra"
)

var importCmdLog = logger.New("cli:import_command")

// NewImportPoCommand creates the import-po command.
func NewImportPoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-po <po-file>",
		Short: "Import a PO file back into per-file translation XML",
		Long: `Re-group PO entries by their reference paths and write LanguageData XML
under Languages/<lang> of the target root.

Writes are atomic (temp file + rename). --incremental skips files whose
rendered bytes equal the on-disk bytes; --only-diff writes only keys that
are new or changed; --dry-run prints the plan without touching anything.

Examples:
  rimloc import-po my.po --root ./Mods/MyMod --lang ru
  rimloc import-po my.po --root ./Mods/MyMod --lang-dir Russian --dry-run
  rimloc import-po my.po --root ./Mods/MyMod --lang ru --incremental --report
  rimloc import-po my.po --out-xml ./Mods/MyMod/Languages/Russian/Keyed/All.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			lang, _ := cmd.Flags().GetString("lang")
			langDir, _ := cmd.Flags().GetString("lang-dir")
			outXML, _ := cmd.Flags().GetString("out-xml")
			keepEmpty, _ := cmd.Flags().GetBool("keep-empty")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			backup, _ := cmd.Flags().GetBool("backup")
			singleFile, _ := cmd.Flags().GetBool("single-file")
			incremental, _ := cmd.Flags().GetBool("incremental")
			onlyDiff, _ := cmd.Flags().GetBool("only-diff")
			report, _ := cmd.Flags().GetBool("report")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			flags := importer.Flags{
				KeepEmpty:   keepEmpty,
				DryRun:      dryRun,
				Backup:      backup,
				SingleFile:  singleFile,
				Incremental: incremental,
				OnlyDiff:    onlyDiff,
				Report:      report,
			}

			if outXML != "" {
				summary, err := importer.ImportToFile(args[0], outXML, flags)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(summary)
				}
				printImportSummary(summary.Created, summary.Updated, summary.Skipped, summary.Keys)
				return nil
			}

			if root == "" {
				return fmt.Errorf("--root is required unless --out-xml is given")
			}
			folder := langDir
			if folder == "" {
				if lang == "" {
					return fmt.Errorf("one of --lang or --lang-dir is required")
				}
				folder = langdir.ForLang(lang)
			}
			return RunImportPo(args[0], root, folder, flags, jsonOutput)
		},
	}

	cmd.Flags().String("root", "", "Target mod root")
	cmd.Flags().String("lang", "", "Target language ISO code (resolved to a folder name)")
	cmd.Flags().String("lang-dir", "", "Target language folder name (overrides --lang)")
	cmd.Flags().String("out-xml", "", "Import everything into one explicit XML file")
	cmd.Flags().Bool("keep-empty", false, "Keep entries whose translation is empty")
	cmd.Flags().Bool("dry-run", false, "Print the plan without writing anything")
	cmd.Flags().Bool("backup", false, "Back up existing files to *.xml.bak before writing")
	cmd.Flags().Bool("single-file", false, "Write everything into Keyed/_Imported.xml")
	cmd.Flags().Bool("incremental", false, "Skip files whose bytes would not change")
	cmd.Flags().Bool("only-diff", false, "Write only keys that are new or changed")
	cmd.Flags().Bool("report", false, "Classify keys as added/changed per file")
	cmd.Flags().BoolP("json", "j", false, "Output the plan or summary as JSON")
	return cmd
}

func printImportSummary(created, updated, skipped, keys int) {
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf(
		"Import finished: %d created, %d updated, %d skipped, %d keys", created, updated, skipped, keys)))
}

// RunImportPo imports a PO file into a mod tree.
func RunImportPo(poPath, root, langFolder string, flags importer.Flags, jsonOutput bool) error {
	importCmdLog.Printf("Importing %s into %s (lang folder %s)", poPath, root, langFolder)
	plan, summary, err := importer.ImportToTree(poPath, root, langFolder, flags)
	if err != nil {
		return err
	}

	if plan != nil {
		if jsonOutput {
			return printJSON(plan)
		}
		rows := make([][]string, 0, len(plan.Files))
		for _, f := range plan.Files {
			rows = append(rows, []string{f.Path, strconv.Itoa(f.Keys)})
		}
		fmt.Print(console.RenderTable(console.TableConfig{
			Title:     "Import plan (dry run)",
			Headers:   []string{"File", "Keys"},
			Rows:      rows,
			ShowTotal: true,
			TotalRow:  []string{"Total", strconv.Itoa(plan.TotalKeys)},
		}))
		return nil
	}

	if jsonOutput {
		return printJSON(summary)
	}
	printImportSummary(summary.Created, summary.Updated, summary.Skipped, summary.Keys)
	for _, f := range summary.Files {
		detail := f.Status
		if len(f.Added) > 0 {
			detail += " added=" + strings.Join(f.Added, ",")
		}
		if len(f.Changed) > 0 {
			detail += " changed=" + strings.Join(f.Changed, ",")
		}
		fmt.Fprintf(os.Stderr, "  %s: %s (%d keys)\n", f.Path, detail, f.Keys)
	}
	return nil
}
