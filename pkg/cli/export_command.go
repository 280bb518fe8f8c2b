package cli

import (
	"fmt"
	"os"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/po"
	"github.com/spf13/cobra"
)

var exportLog = logger.New("cli:export_command")

// NewExportPoCommand creates the export-po command.
func NewExportPoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-po <root>",
		Short: "Export source language units to a PO file",
		Long: `Scan the source language folder and write a PO file with the RimLoc
msgctxt disambiguator (key|relative-path:line).

Translation memory roots are scanned for key/value pairs used to pre-fill
msgstr; later roots win.

Examples:
  rimloc export-po ./Mods/MyMod --out my.po --lang ru
  rimloc export-po ./Mods/MyMod --out my.po --source-lang-dir English
  rimloc export-po ./Mods/MyMod --out my.po --tm-root ./old-translation
  rimloc export-po ./Mods/MyMod --out my.po --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			lang, _ := cmd.Flags().GetString("lang")
			sourceLang, _ := cmd.Flags().GetString("source-lang")
			sourceLangDir, _ := cmd.Flags().GetString("source-lang-dir")
			tmRoots, _ := cmd.Flags().GetStringArray("tm-root")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			watch, _ := cmd.Flags().GetBool("watch")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			run := func() error {
				return RunExportPo(args[0], out, lang, sourceLang, sourceLangDir, gameVersion, tmRoots, verbose)
			}
			if watch {
				return watchAndRun(args[0], verbose, run)
			}
			return run()
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output PO file path (required)")
	cmd.Flags().String("lang", "", "Target language code recorded in the PO header")
	cmd.Flags().String("source-lang", "", "Source language ISO code (resolved to a folder name)")
	cmd.Flags().String("source-lang-dir", "", "Source language folder name (default English)")
	cmd.Flags().StringArray("tm-root", nil, "Translation memory root (repeatable, later wins)")
	cmd.Flags().String("game-version", "", "Game version subtree to scan")
	cmd.Flags().BoolP("watch", "w", false, "Re-export whenever XML under the root changes")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// RunExportPo performs one export.
func RunExportPo(root, out, lang, sourceLang, sourceLangDir, gameVersion string, tmRoots []string, verbose bool) error {
	scanRoot, err := resolveScanRoot(root, gameVersion, verbose)
	if err != nil {
		return err
	}
	stats, err := po.Export(scanRoot, out, po.ExportOptions{
		Lang:          lang,
		SourceLang:    sourceLang,
		SourceLangDir: sourceLangDir,
		TMRoots:       tmRoots,
	})
	if err != nil {
		return err
	}
	exportLog.Printf("Exported %d entries to %s", stats.Total, out)
	message := fmt.Sprintf("Exported %d entries to %s", stats.Total, out)
	if stats.TMFilled > 0 {
		message += fmt.Sprintf(" (%d pre-filled from TM)", stats.TMFilled)
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(message))
	return nil
}
