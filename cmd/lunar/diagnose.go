package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lunar/internal/diagfmt"
	"lunar/internal/driver"
	"lunar/internal/lint"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.lua|directory> [path...]",
	Short: "Report diagnostics for Lua files",
	Long: `Diag parses every file with the target grammar and prints syntax errors.
With --lint it also runs luacheck and merges its findings`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	diagCmd.Flags().Bool("lint", false, "run luacheck as well")
	diagCmd.Flags().String("luacheck", "", "luacheck executable (default: lunar.toml or luacheck on PATH)")
	diagCmd.Flags().Bool("prefer-luacheck", false, "show only luacheck findings when it reports any")
	diagCmd.Flags().Bool("detect", false, "report the minimum Lua version each file needs")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatFlag, outputPretty, outputJSON, outputYAML)
	if err != nil {
		return err
	}
	runLint, err := cmd.Flags().GetBool("lint")
	if err != nil {
		return fmt.Errorf("failed to get lint flag: %w", err)
	}
	luacheckPath, err := cmd.Flags().GetString("luacheck")
	if err != nil {
		return fmt.Errorf("failed to get luacheck flag: %w", err)
	}
	prefer, err := cmd.Flags().GetBool("prefer-luacheck")
	if err != nil {
		return fmt.Errorf("failed to get prefer-luacheck flag: %w", err)
	}
	detect, err := cmd.Flags().GetBool("detect")
	if err != nil {
		return fmt.Errorf("failed to get detect flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
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

	opts := driver.DiagnoseOptions{
		Version:          luaVersion,
		MaxDiagnostics:   common.maxDiagnostics,
		PreferLinter:     prefer || cfg.Lint.Prefer,
		IgnoreWarnings:   noWarnings,
		WarningsAsErrors: warningsAsErrors,
		Detect:           detect,
		Jobs:             jobs,
		Timer:            timer,
	}
	if runLint {
		if luacheckPath == "" {
			luacheckPath = cfg.Lint.Luacheck
		}
		opts.Linter = lint.NewLuacheck(lint.WithPath(luacheckPath), lint.WithTimeout(30*time.Second))
	}

	results, err := driver.Diagnose(cmd.Context(), files, opts)
	if err != nil {
		return err
	}

	reports := make([]diagfmt.Report, len(results))
	linterMissing := false
	for i, r := range results {
		reports[i] = diagfmt.Report{File: r.File, Bag: r.Bag}
		linterMissing = linterMissing || r.LinterDisabled
	}
	if linterMissing && !common.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "diag: luacheck not found, showing parse diagnostics only")
	}

	out := cmd.OutOrStdout()
	base, _ := os.Getwd()
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		BaseDir:          base,
		IncludeNotes:     withNotes,
	}
	switch format {
	case outputJSON:
		err = diagfmt.JSON(out, reports, jsonOpts)
	case outputYAML:
		err = diagfmt.YAML(out, reports, jsonOpts)
	default:
		err = diagfmt.Pretty(out, reports, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   2,
			PathMode:  pathMode,
			BaseDir:   base,
			ShowNotes: withNotes,
		})
		if err == nil && !common.quiet {
			err = diagfmt.Summary(out, reports, colored)
		}
	}
	if err != nil {
		return err
	}

	if driver.HasErrors(results) {
		cmd.SilenceErrors = true
		return fmt.Errorf("diagnostics reported errors")
	}
	return nil
}
