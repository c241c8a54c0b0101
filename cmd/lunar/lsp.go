package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lunar/internal/lsp"
	"lunar/internal/version"
	"lunar/internal/workspace"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the Lua language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Bool("watch", true, "reindex workspace files changed outside the editor")
	lspCmd.Flags().Bool("cache", true, "persist workspace symbols in the user cache directory")
	lspCmd.Flags().Duration("debounce", 0, "delay before diagnostics run after an edit (0 = default)")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	common, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}

	opts := lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: common.maxDiagnostics,
		Watch:          watch,
		Version:        version.Current().Version,
	}
	if useCache {
		// stdout занят протоколом, поэтому только stderr
		cache, err := workspace.OpenCache("lunar")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "lunar: workspace cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, opts)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
