package shop

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"storefront/internal/logging"
)

// Run starts the interactive storefront and blocks until the user quits.
func Run(deps Deps) error {
	logging.UI("starting interactive storefront")

	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("storefront ui: %w", err)
	}
	return nil
}
