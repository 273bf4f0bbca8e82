package dashboard

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/engine"
)

// Run opens the interactive widget dashboard.
func Run(ctx context.Context, svc *engine.Service, task *ai.ReportTask, out io.Writer) error {
	m := newModel(ctx, svc, task)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
