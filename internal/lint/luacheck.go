package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"lunar/internal/diag"
	"lunar/internal/trace"
)

// DefaultCommand is looked up on PATH when no explicit path is configured.
const DefaultCommand = "luacheck"

const defaultTimeout = 30 * time.Second

var (
	// ErrDisabled means the linter executable is not available.
	ErrDisabled = errors.New("lint: luacheck not available")
)

// ExitError reports an unexpected luacheck exit status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("lint: luacheck exited with status %d", e.Code)
	}
	return fmt.Sprintf("lint: luacheck exited with status %d: %s", e.Code, msg)
}

// Linter produces diagnostics for one buffer.
type Linter interface {
	Lint(ctx context.Context, path, text string) ([]diag.Diagnostic, error)
}

// Luacheck runs the luacheck executable with the document on stdin.
type Luacheck struct {
	// Path is the executable; empty means DefaultCommand on PATH.
	Path    string
	Timeout time.Duration
}

// Option configures a Luacheck runner.
type Option func(*Luacheck)

// WithPath overrides the executable.
func WithPath(path string) Option {
	return func(l *Luacheck) {
		l.Path = path
	}
}

// WithTimeout bounds a single run.
func WithTimeout(d time.Duration) Option {
	return func(l *Luacheck) {
		l.Timeout = d
	}
}

func NewLuacheck(opts ...Option) *Luacheck {
	l := &Luacheck{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns the absolute executable path or ErrDisabled.
func (l *Luacheck) Resolve() (string, error) {
	name := l.Path
	if name == "" {
		name = DefaultCommand
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDisabled, name)
	}
	return bin, nil
}

// Available reports whether the executable can be found.
func (l *Luacheck) Available() bool {
	_, err := l.Resolve()
	return err == nil
}

// Args builds the luacheck command line for a document path.
func Args(path string) []string {
	return []string{"-", "--no-color", "--ranges", "--codes", "--filename=" + path}
}

func (l *Luacheck) Lint(ctx context.Context, path, text string) ([]diag.Diagnostic, error) {
	bin, err := l.Resolve()
	if err != nil {
		return nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, "luacheck")
	defer span.End("")
	span.WithExtra("file", path)

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, Args(path)...)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		cmd.Dir = dir
	}
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("lint: run %s: %w", bin, err)
		}
		// 1 - только предупреждения, 2 - есть ошибки
		switch code := exitErr.ExitCode(); code {
		case 1, 2:
		default:
			return nil, &ExitError{Code: code, Stderr: stderr.String()}
		}
	}

	diags := ParseOutput(path, text, stdout.String())
	span.WithExtra("diagnostics", fmt.Sprint(len(diags)))
	return diags, nil
}
