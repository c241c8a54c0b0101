package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lunar/internal/dialect"
	"lunar/internal/observ"
	"lunar/internal/project"
)

type outputFormat string

const (
	outputPretty outputFormat = "pretty"
	outputJSON   outputFormat = "json"
	outputYAML   outputFormat = "yaml"
)

// readOutputFormat validates a --format value against the allowed set.
func readOutputFormat(value string, allowed ...outputFormat) (outputFormat, error) {
	f := outputFormat(strings.TrimSpace(strings.ToLower(value)))
	names := make([]string, len(allowed))
	for i, a := range allowed {
		if f == a {
			return f, nil
		}
		names[i] = string(a)
	}
	return "", fmt.Errorf("unsupported format %q (must be %s)", value, strings.Join(names, "|"))
}

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

// loadProject finds lunar.toml above the first path and applies --lua-version.
func loadProject(cmd *cobra.Command, paths []string) (project.Config, dialect.Version, error) {
	start := "."
	if len(paths) > 0 {
		start = paths[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	cfg, err := project.Discover(start)
	if err != nil {
		return project.Config{}, 0, err
	}

	v := cfg.LuaVersion()
	flag, err := cmd.Root().PersistentFlags().GetString("lua-version")
	if err != nil {
		return project.Config{}, 0, fmt.Errorf("failed to get lua-version flag: %w", err)
	}
	if flag != "" {
		parsed, ok := dialect.ParseVersion(flag)
		if !ok {
			return project.Config{}, 0, fmt.Errorf("invalid --lua-version %q (expected 5.1|5.2|5.3)", flag)
		}
		v = parsed
	}
	return cfg, v, nil
}

type commonFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readCommonFlags(cmd *cobra.Command) (commonFlags, error) {
	var f commonFlags
	var err error
	flags := cmd.Root().PersistentFlags()
	if f.quiet, err = flags.GetBool("quiet"); err != nil {
		return f, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = flags.GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return f, nil
}

// newTimer returns nil unless --timings is set; observ.Timer is nil-safe.
func (f commonFlags) newTimer() *observ.Timer {
	if !f.timings {
		return nil
	}
	return observ.NewTimer()
}
