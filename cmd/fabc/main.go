// Command fabc compiles Faber source files to TypeScript, Python, Rust,
// Zig, Go, or C++, mirroring the teacher's cmd/morfx entry point: a thin
// cobra/pflag shell around internal packages that do the real work and
// return diagnostics as values.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/fabc/internal/diag"
)

func main() {
	root := &cobra.Command{
		Use:   "fabc",
		Short: "Compile Faber source to TypeScript, Python, Rust, Zig, Go, or C++",
	}

	root.AddCommand(newCompileCmd())
	root.AddCommand(newNormaGenCmd())
	root.AddCommand(newCLITreeCmd())

	if err := root.Execute(); err != nil {
		if cliErr, ok := err.(diag.CLIError); ok {
			fmt.Fprintln(os.Stderr, cliErr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
