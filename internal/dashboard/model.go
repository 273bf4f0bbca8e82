package dashboard

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/storage"
)

type model struct {
	ctx  context.Context
	svc  *engine.Service
	task *ai.ReportTask

	width  int
	height int

	layout   Layout
	selected int

	advice   []engine.AdviceItem
	state    engine.GamificationState
	diet     []storage.DietEntry
	exercise []storage.ExerciseEntry
	sleep    []storage.SleepEntry
	report   ai.ReportSnapshot

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	advice   []engine.AdviceItem
	state    engine.GamificationState
	diet     []storage.DietEntry
	exercise []storage.ExerciseEntry
	sleep    []storage.SleepEntry
	err      error
}

type reportMsg struct {
	snap ai.ReportSnapshot
}

type layoutSavedMsg struct {
	err error
}

func newModel(ctx context.Context, svc *engine.Service, task *ai.ReportTask) model {
	return model{
		ctx:     ctx,
		svc:     svc,
		task:    task,
		layout:  LoadLayout(ctx, svc.LayoutRepo()),
		report:  task.Snapshot(),
		loading: true,
		lastLog: "Loading…",
	}
}

func (m model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		since := time.Now().UTC().AddDate(0, 0, -(engine.DefaultWindowDays - 1))

		diet, err := m.svc.DietRepo().ListSince(m.ctx, since)
		if err != nil {
			return loadedMsg{err: err}
		}
		exercise, err := m.svc.ExerciseRepo().ListSince(m.ctx, since)
		if err != nil {
			return loadedMsg{err: err}
		}
		sleep, err := m.svc.SleepRepo().ListSince(m.ctx, since)
		if err != nil {
			return loadedMsg{err: err}
		}
		advice, err := m.svc.Advice(m.ctx, engine.DefaultWindowDays)
		if err != nil {
			return loadedMsg{err: err}
		}
		state, err := m.svc.Gamification(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{advice: advice, state: state, diet: diet, exercise: exercise, sleep: sleep}
	}
}

func (m model) reportCmd() tea.Cmd {
	done := m.task.Start(m.ctx, m.diet, m.exercise, m.sleep, m.advice)
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		return reportMsg{snap: <-done}
	}
}

func (m model) saveLayoutCmd() tea.Cmd {
	layout := m.layout
	return func() tea.Msg {
		return layoutSavedMsg{err: SaveLayout(m.ctx, m.svc.LayoutRepo(), layout)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.advice = msg.advice
		m.state = msg.state
		m.diet = msg.diet
		m.exercise = msg.exercise
		m.sleep = msg.sleep
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil

	case reportMsg:
		m.report = msg.snap
		switch msg.snap.State {
		case ai.ReportSucceeded:
			m.lastLog = "Weekly report ready."
		case ai.ReportFailed:
			m.lastLog = "Weekly report failed."
		}
		return m, nil

	case layoutSavedMsg:
		if msg.err != nil {
			m.lastLog = "Layout save failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.layout.Widgets)-1 {
			m.selected++
		}
		return m, nil
	case " ", "enter":
		if m.layout.Toggle(m.selected) {
			return m, m.saveLayoutCmd()
		}
		return m, nil
	case "K", "shift+up":
		if m.layout.Move(m.selected, -1) {
			m.selected--
			return m, m.saveLayoutCmd()
		}
		return m, nil
	case "J", "shift+down":
		if m.layout.Move(m.selected, 1) {
			m.selected++
			return m, m.saveLayoutCmd()
		}
		return m, nil
	case "g":
		cmd := m.reportCmd()
		if cmd == nil {
			m.lastLog = "Report already generating."
			return m, nil
		}
		m.report = m.task.Snapshot()
		m.lastLog = "Generating weekly report…"
		return m, cmd
	case "d":
		m.layout = DefaultLayout()
		m.selected = 0
		m.lastLog = "Layout reset."
		return m, m.saveLayoutCmd()
	}
	return m, nil
}
