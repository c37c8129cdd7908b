package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jimbro/internal/engine"
)

func RunWizard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newWizardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(wizardModel); ok {
		fm.shutdown()
	}
	return err
}
