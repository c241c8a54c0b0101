package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lunar/internal/ui"
	"lunar/internal/workspace"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] [directory]",
	Short: "Index the global symbols of a Lua workspace",
	Long: `Index analyzes every Lua file below the directory in parallel, the same way
the language server does on startup, and prints what it found`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	indexCmd.Flags().Bool("cache", false, "read and update the workspace symbol cache")
	indexCmd.Flags().String("query", "", "print the indexed symbols whose name contains this text")
	indexCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return fmt.Errorf("failed to get query flag: %w", err)
	}
	queryOK := cmd.Flags().Changed("query")
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	common, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	cfg, luaVersion, err := loadProject(cmd, []string{root})
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	opts := workspace.Options{
		Version:  luaVersion,
		Excludes: cfg.Excludes(),
		Jobs:     jobs,
	}
	if useCache {
		cache, err := workspace.OpenCache("lunar")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	ix := workspace.NewIndex(root, opts)

	timer := common.newTimer()
	defer printTimings(cmd.ErrOrStderr(), timer)

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	err = timer.Track("index", func() error {
		if shouldUseTUI(mode, common.quiet) {
			return ui.RunIndexing(cmd.Context(), os.Stdout, "Indexing", ix.Root(), ix.Build)
		}
		return ix.Build(cmd.Context(), plainProgress(errOut, common.quiet))
	})
	if err != nil {
		return err
	}

	if queryOK {
		for _, sym := range ix.Search(query) {
			fmt.Fprintf(out, "%s:%d:%d\t%s\t%s\n",
				sym.Path, sym.Range.Start.Line+1, sym.Range.Start.Column+1, sym.Kind, sym.Name)
		}
		return nil
	}
	return printIndexSummary(out, ix)
}

// plainProgress reports failures as they happen when there is no TUI.
func plainProgress(w io.Writer, quiet bool) workspace.Progress {
	if quiet {
		return nil
	}
	return func(ev workspace.Event) {
		if ev.Kind == workspace.EventFailed && ev.Err != nil {
			fmt.Fprintf(w, "index: %v\n", ev.Err)
		}
	}
}

func printIndexSummary(w io.Writer, ix *workspace.Index) error {
	failed := ix.Failed()
	symbols := len(ix.Search(""))
	if _, err := fmt.Fprintf(w, "indexed %d files in %s: %d symbols, %d failed\n", ix.Len(), ix.Root(), symbols, len(failed)); err != nil {
		return err
	}
	for _, f := range failed {
		kind := "read error"
		if workspace.IsSyntaxError(f.Err) {
			kind = "syntax error"
		}
		if _, err := fmt.Fprintf(w, "  %s: %s: %v\n", f.Path, kind, f.Err); err != nil {
			return err
		}
	}
	return nil
}
