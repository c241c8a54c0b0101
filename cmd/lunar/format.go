package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lunar/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Lua source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("diff", false, "print a unified diff instead of rewriting files")
	fmtCmd.Flags().Int("indent", 0, "spaces per indent level (default: lunar.toml or 4)")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return err
	}
	if writeToStdout && (check || showDiff) {
		return reportFmtError(cmd, fmt.Errorf("fmt: --stdout cannot be used with --check or --diff"))
	}

	common, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	cfg, luaVersion, err := loadProject(cmd, args)
	if err != nil {
		return reportFmtError(cmd, err)
	}
	files, err := driver.CollectFiles(cmd.Context(), args, cfg.Excludes())
	if err != nil {
		return reportFmtError(cmd, fmt.Errorf("fmt: %w", err))
	}

	opts := cfg.FormatOptions()
	opts.Version = luaVersion
	if indent > 0 {
		opts.IndentSize = indent
	}
	if tabs {
		opts.UseTabs = true
	}

	timer := common.newTimer()
	defer printTimings(cmd.ErrOrStderr(), timer)

	var results []driver.FormatResult
	err = timer.Track("format", func() error {
		var ferr error
		results, ferr = driver.FormatPaths(cmd.Context(), files, driver.FormatOptions{
			Check:   check,
			Stdout:  writeToStdout,
			Diff:    showDiff,
			Options: opts,
		})
		return ferr
	})
	if err != nil {
		return reportFmtError(cmd, err)
	}

	var hasErrors, hasChanges bool
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	switch {
	case writeToStdout:
		renderFmtStdout(out, errOut, results, &hasErrors)
	case showDiff:
		renderFmtDiff(out, errOut, results, &hasErrors, &hasChanges)
	default:
		renderFmtText(out, errOut, results, check, common.quiet, &hasErrors, &hasChanges)
	}
	if !common.quiet {
		renderLongLines(errOut, results)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if (check || showDiff) && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// reportFmtError prints err itself, since fmt silences cobra's error output.
func reportFmtError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return err
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFmtDiff(out, errOut io.Writer, results []driver.FormatResult, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Changed {
			*hasChanges = true
			_, _ = io.WriteString(out, res.Diff)
		}
	}
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(out, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
}

// renderLongLines warns about lines past the configured width; the
// formatter never wraps them.
func renderLongLines(errOut io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		for _, ll := range res.LongLines {
			fmt.Fprintf(errOut, "fmt: %s:%d: line is %d columns wide\n", res.Path, ll.Line+1, ll.Width)
		}
	}
}
