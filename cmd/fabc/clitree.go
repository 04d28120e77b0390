package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/fabc/internal/clidetector"
	"github.com/oxhq/fabc/internal/config"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/modcache"
	"github.com/oxhq/fabc/internal/parser"
	"github.com/oxhq/fabc/internal/tokenizer"
)

func newCLITreeCmd() *cobra.Command {
	var cacheDB string

	cmd := &cobra.Command{
		Use:   "cli-tree <file>",
		Short: "Resolve and print the command tree a @cli-annotated program declares",
		Long: "Parses file, follows its @mount-annotated submodules (using the\n" +
			"module resolution cache to skip re-parsing ones already seen),\n" +
			"and prints the resulting command tree as JSON. Prints nothing and\n" +
			"exits 0 when the program carries no @cli annotation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCLITree(cmd, args[0], cacheDB)
		},
	}

	defaults := config.Load()
	cmd.Flags().StringVar(&cacheDB, "cache-db", defaults.CacheDB, "module resolution cache DSN (local sqlite path or libsql:// URL)")
	return cmd
}

func runCLITree(cmd *cobra.Command, file, cacheDB string) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return diag.Wrap(diag.ErrIO, "reading "+file, err)
	}

	toks, tokDiags := tokenizer.Tokenize(file, string(source))
	prog, parseDiags := parser.Parse(file, toks)
	tokDiags.Merge(parseDiags)
	for _, d := range tokDiags.Items() {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if tokDiags.HasFatal() {
		return diag.CLIError{Code: diag.ErrCompile, Message: "could not parse " + file}
	}

	cache, err := modcache.Open(cacheDB)
	if err != nil {
		return diag.Wrap(diag.ErrConfig, "opening module cache", err)
	}
	defer cache.Close()

	tree, _, diags := clidetector.Detect(file, prog, cache)
	for _, d := range diags.Items() {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if diags.HasFatal() {
		return diag.CLIError{Code: diag.ErrCompile, Message: "CLI detection failed"}
	}
	if tree == nil {
		return nil
	}

	out, err := clidetector.MarshalTree(tree)
	if err != nil {
		return diag.Wrap(diag.ErrIO, "encoding command tree", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
