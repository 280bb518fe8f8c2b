// Package cli implements the rimloc subcommands on top of the core
// pipeline packages.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rimloc/rimloc/pkg/config"
	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/version"
	"github.com/rimloc/rimloc/pkg/xmlscan"
)

// cliVersion is the build version shown by the version command.
var cliVersion = "dev"

// SetVersionInfo records the build version injected by the linker.
func SetVersionInfo(v string) {
	cliVersion = v
}

// Version returns the recorded build version.
func Version() string {
	return cliVersion
}

// resolveScanRoot applies the version resolver to the root flag, falling
// back to the configured game version when none is requested explicitly.
func resolveScanRoot(root, requested string, verbose bool) (string, error) {
	if requested == "" {
		requested = config.Load().GameVersion
	}
	scanRoot, selected, err := version.Resolve(root, requested)
	if err != nil {
		return "", err
	}
	if verbose && selected != "" {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Using game version %s", selected)))
	}
	return scanRoot, nil
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// printScanWarnings reports skipped files on stderr.
func printScanWarnings(warnings []xmlscan.Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("skipped %s: %v", w.Path, w.Err)))
	}
}
