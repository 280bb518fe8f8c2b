package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rimloc/rimloc/pkg/config"
	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/logger"
	"github.com/rimloc/rimloc/pkg/xmlscan"
	"github.com/spf13/cobra"
)

var scanLog = logger.New("cli:scan_command")

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Scan a mod tree and list discovered translation units",
		Long: `Scan Keyed, DefInjected, and Defs XML under a mod root and print the
discovered translation units.

Defs are interpreted through the field dictionary: the embedded baseline,
auto-discovered learned dictionaries, and any --dict files, merged by set
union.

Examples:
  rimloc scan ./Mods/MyMod
  rimloc scan ./Mods/MyMod --game-version 1.4
  rimloc scan ./Mods/MyMod --json > units.json
  rimloc scan ./Mods/MyMod --dict extra.dict.json --no-defs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameVersion, _ := cmd.Flags().GetString("game-version")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			noDefs, _ := cmd.Flags().GetBool("no-defs")
			defsRoot, _ := cmd.Flags().GetString("defs-root")
			dictFiles, _ := cmd.Flags().GetStringArray("dict")
			include, _ := cmd.Flags().GetStringArray("include")
			exclude, _ := cmd.Flags().GetStringArray("exclude")
			verbose, _ := cmd.Flags().GetBool("verbose")
			limit, _ := cmd.Flags().GetInt("limit")
			return RunScan(args[0], gameVersion, defsRoot, dictFiles, include, exclude, noDefs, jsonOutput, verbose, limit)
		},
	}

	cmd.Flags().String("game-version", "", "Game version subtree to scan (e.g. 1.4 or v1.4)")
	cmd.Flags().BoolP("json", "j", false, "Output units as JSON")
	cmd.Flags().Bool("no-defs", false, "Skip Defs extraction")
	cmd.Flags().String("defs-root", "", "Alternate Defs directory")
	cmd.Flags().StringArray("dict", nil, "Additional field dictionary JSON file (repeatable)")
	cmd.Flags().StringArray("include", nil, "Glob of files to include, relative to the scan root (repeatable)")
	cmd.Flags().StringArray("exclude", nil, "Glob of files to exclude (repeatable)")
	cmd.Flags().Int("limit", 0, "Maximum number of rows to print (0 = config default)")
	return cmd
}

// RunScan scans a mod root and prints the unit stream.
func RunScan(root, gameVersion, defsRoot string, dictFiles, include, exclude []string, noDefs, jsonOutput, verbose bool, limit int) error {
	scanRoot, err := resolveScanRoot(root, gameVersion, verbose)
	if err != nil {
		return err
	}

	opts := xmlscan.Options{
		DefsRoot: defsRoot,
		NoDefs:   noDefs,
		Include:  include,
		Exclude:  exclude,
	}
	if len(dictFiles) > 0 {
		auto, err := xmlscan.Autodiscover(scanRoot)
		if err != nil {
			return err
		}
		dicts := []xmlscan.FieldDict{auto.Dict}
		for _, f := range dictFiles {
			dict, err := xmlscan.LoadDictFile(f)
			if err != nil {
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(err.Error()))
				continue
			}
			dicts = append(dicts, dict)
		}
		opts.Dict = xmlscan.MergeDicts(dicts...)
		opts.ExtraFields = auto.ExtraFields
	}

	result, err := xmlscan.Scan(scanRoot, opts)
	if err != nil {
		return err
	}
	scanLog.Printf("Scanned %s: %d units", scanRoot, len(result.Units))
	printScanWarnings(result.Warnings)

	if jsonOutput {
		return printJSON(result.Units)
	}

	if limit <= 0 {
		limit = config.Load().ListLimit
	}
	rows := make([][]string, 0, len(result.Units))
	for i, u := range result.Units {
		if limit > 0 && i >= limit {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("... %d more units (raise --limit)", len(result.Units)-limit)))
			break
		}
		line := ""
		if u.Line > 0 {
			line = strconv.Itoa(u.Line)
		}
		rows = append(rows, []string{u.Key, u.Source, u.Path, line})
	}
	fmt.Print(console.RenderTable(console.TableConfig{
		Title:     fmt.Sprintf("%d translation units", len(result.Units)),
		Headers:   []string{"Key", "Source", "Path", "Line"},
		Rows:      rows,
		ShowTotal: false,
	}))
	return nil
}
