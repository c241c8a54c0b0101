package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lunar/internal/diagfmt"
	"lunar/internal/driver"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] <file.lua|directory> [path...]",
	Short: "List the symbols declared in Lua files",
	Long:  `Symbols lists global functions and variables of each file, the same set an editor shows as document symbols`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	symbolsCmd.Flags().Bool("all", false, "include declarations of nested scopes")
	symbolsCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatFlag, outputPretty, outputJSON, outputYAML)
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	pathMode, err := readPathMode(cmd)
	if err != nil {
		return err
	}
	common, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	cfg, luaVersion, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	timer := common.newTimer()
	defer printTimings(cmd.ErrOrStderr(), timer)

	files, err := driver.CollectFiles(cmd.Context(), args, cfg.Excludes())
	if err != nil {
		return err
	}
	var results []driver.SymbolsResult
	err = timer.Track("symbols", func() error {
		var serr error
		results, serr = driver.Symbols(cmd.Context(), files, luaVersion, all)
		return serr
	})
	if err != nil {
		return err
	}

	reports := make([]diagfmt.SymbolReport, 0, len(results))
	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "symbols: %s: %v\n", r.Path, r.Err)
			continue
		}
		reports = append(reports, diagfmt.SymbolReport{Path: r.Path, Symbols: r.Symbols})
	}

	out := cmd.OutOrStdout()
	base, _ := os.Getwd()
	switch format {
	case outputJSON:
		err = diagfmt.SymbolsJSON(out, reports, pathMode, base)
	case outputYAML:
		err = diagfmt.SymbolsYAML(out, reports, pathMode, base)
	default:
		err = diagfmt.SymbolsPretty(out, reports, diagfmt.PrettyOpts{Color: colored, PathMode: pathMode, BaseDir: base})
	}
	if err != nil {
		return err
	}
	if failed {
		cmd.SilenceErrors = true
		return errSyntax
	}
	return nil
}

func readPathMode(cmd *cobra.Command) (diagfmt.PathMode, error) {
	value, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return 0, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(value)
	if !ok {
		return 0, fmt.Errorf("invalid --path-mode %q (expected auto|absolute|relative|basename)", value)
	}
	return mode, nil
}
