package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lunar/internal/workspace"
)

// RunIndexing shows indexing progress while build runs. The view closes
// when build returns; quitting the view cancels build.
func RunIndexing(ctx context.Context, out io.Writer, title, root string, build func(context.Context, workspace.Progress) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan workspace.Event, 256)
	result := make(chan error, 1)
	go func() {
		err := build(ctx, func(ev workspace.Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		close(events)
		result <- err
	}()

	program := tea.NewProgram(NewProgressModel(title, root, events), tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()
	if err := <-result; err != nil {
		return err
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return uiErr
	}
	return nil
}
