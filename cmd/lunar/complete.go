package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lunar/internal/diagfmt"
	"lunar/internal/driver"
)

var completeCmd = &cobra.Command{
	Use:   "complete [flags] <file.lua> <line> <column>",
	Short: "Print completion items at a position",
	Long:  `Complete prints the completion items an editor would offer at a 1-based line and byte column`,
	Args:  cobra.ExactArgs(3),
	RunE:  runComplete,
}

func init() {
	completeCmd.Flags().Bool("json", false, "print items as JSON")
}

func runComplete(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	line, col, err := parsePosition(args[1], args[2])
	if err != nil {
		return err
	}
	_, luaVersion, err := loadProject(cmd, args[:1])
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	items, err := driver.Complete(cmd.Context(), args[0], line, col, luaVersion)
	if err != nil {
		return err
	}
	if asJSON {
		return diagfmt.CompletionsJSON(cmd.OutOrStdout(), items)
	}
	return diagfmt.CompletionsPretty(cmd.OutOrStdout(), items)
}

// parsePosition reads a 1-based line and column.
func parsePosition(lineArg, colArg string) (line, col int, err error) {
	line, err = strconv.Atoi(lineArg)
	if err != nil || line < 1 {
		return 0, 0, fmt.Errorf("invalid line %q (expected a positive number)", lineArg)
	}
	col, err = strconv.Atoi(colArg)
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("invalid column %q (expected a positive number)", colArg)
	}
	return line, col, nil
}
