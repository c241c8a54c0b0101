package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lunar/internal/diagfmt"
	"lunar/internal/driver"
)

var errSyntax = errors.New("syntax errors")

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.lua>",
	Short: "Parse a Lua file and report syntax errors",
	Long:  `Parse checks a Lua file against the target grammar. With --tree or --tokens it also prints the syntax tree or the token stream`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format for --tree and --tokens (pretty|json)")
	parseCmd.Flags().Bool("tree", false, "print the syntax tree")
	parseCmd.Flags().Bool("tokens", false, "print the token stream")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatFlag, outputPretty, outputJSON)
	if err != nil {
		return err
	}
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	showTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	common, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	_, luaVersion, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	timer := common.newTimer()

	if showTokens {
		var tokens *driver.TokenizeResult
		err = timer.Track("tokenize", func() error {
			var terr error
			tokens, terr = driver.Tokenize(filePath, luaVersion, common.maxDiagnostics)
			return terr
		})
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if format == outputJSON {
			err = diagfmt.FormatTokensJSON(out, tokens.Tokens, tokens.File)
		} else {
			err = diagfmt.FormatTokensPretty(out, tokens.Tokens, tokens.File)
		}
		if err != nil {
			return err
		}
	}

	var result *driver.ParseResult
	err = timer.Track("parse", func() error {
		var perr error
		result, perr = driver.Parse(filePath, luaVersion, common.maxDiagnostics)
		return perr
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if showTree && result.Tree != nil {
		if format == outputJSON {
			err = diagfmt.FormatASTJSON(out, result.Tree)
		} else {
			err = diagfmt.FormatASTPretty(out, result.Tree)
		}
		if err != nil {
			return err
		}
	}

	defer printTimings(cmd.ErrOrStderr(), timer)

	reports := []diagfmt.Report{{File: result.File, Bag: result.Bag}}
	if result.Bag.Len() > 0 {
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), reports, diagfmt.PrettyOpts{Color: colored, Context: 2, ShowNotes: true}); err != nil {
			return err
		}
	}
	if result.Bag.HasErrors() {
		cmd.SilenceErrors = true
		return errSyntax
	}
	if !common.quiet && !showTree && !showTokens {
		fmt.Fprintf(out, "%s: ok (Lua %s)\n", filePath, luaVersion)
	}
	return nil
}
