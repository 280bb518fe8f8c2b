package cli

import (
	"fmt"
	"os"

	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/learn"
	"github.com/spf13/cobra"
)

// NewLearnDefsCommand creates the learn-defs command.
func NewLearnDefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn-defs <root>",
		Short: "Discover untranslated Defs fields and write a learned dictionary",
		Long: `Scan Defs for translatable field candidates, score them, subtract keys
already covered by the target language's DefInjected files, and write
missing_keys.json, suggested.xml, and learned_defs.json. The learned
dictionary is picked up automatically by later scans.

Examples:
  rimloc learn-defs ./Mods/MyMod --lang-dir Russian --out ./Mods/MyMod/_learn
  rimloc learn-defs ./Mods/MyMod --lang-dir Russian --threshold 0.8 --min-len 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defsRoot, _ := cmd.Flags().GetString("defs-root")
			dictFiles, _ := cmd.Flags().GetStringArray("dict")
			langDirFlag, _ := cmd.Flags().GetString("lang-dir")
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			minLen, _ := cmd.Flags().GetInt("min-len")
			blacklist, _ := cmd.Flags().GetStringArray("blacklist")
			outDir, _ := cmd.Flags().GetString("out")
			learnedOut, _ := cmd.Flags().GetString("learned-out")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			if langDirFlag == "" {
				return fmt.Errorf("--lang-dir is required")
			}
			if outDir == "" {
				outDir = "learn_out"
			}

			result, err := learn.Run(learn.Options{
				ModRoot:    args[0],
				DefsRoot:   defsRoot,
				DictFiles:  dictFiles,
				LangDir:    langDirFlag,
				Threshold:  threshold,
				MinLen:     minLen,
				Blacklist:  blacklist,
				OutDir:     outDir,
				LearnedOut: learnedOut,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(map[string]any{
					"candidates": len(result.Candidates),
					"accepted":   result.Accepted,
					"missing":    result.MissingPath,
					"suggested":  result.SuggestedPath,
					"learned":    result.LearnedPath,
				})
			}
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf(
				"%d candidates, %d missing; learned dictionary at %s",
				len(result.Candidates), result.Accepted, result.LearnedPath)))
			return nil
		},
	}

	cmd.Flags().String("defs-root", "", "Alternate Defs directory")
	cmd.Flags().StringArray("dict", nil, "Additional field dictionary JSON file (repeatable)")
	cmd.Flags().String("lang-dir", "", "Target language folder whose coverage is subtracted (required)")
	cmd.Flags().Float64("threshold", 0.5, "Minimum candidate confidence")
	cmd.Flags().Int("min-len", 2, "Minimum candidate value length")
	cmd.Flags().StringArray("blacklist", nil, "Field names to ignore (repeatable)")
	cmd.Flags().StringP("out", "o", "", "Output directory (default learn_out)")
	cmd.Flags().String("learned-out", "", "Override path of learned_defs.json")
	cmd.Flags().BoolP("json", "j", false, "Output a JSON summary")
	_ = cmd.MarkFlagRequired("lang-dir")
	return cmd
}
