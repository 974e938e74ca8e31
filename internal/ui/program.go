package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xenonnoble69/assistdeck-frontend/internal/ui/views"
)

// Run starts the terminal UI and blocks until it exits. Cancelling ctx
// tears the program down, which also cancels any in-flight fetches.
func Run(ctx context.Context, deps views.Deps) error {
	program := tea.NewProgram(
		NewRootModel(deps),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil // interrupted, not a failure
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
