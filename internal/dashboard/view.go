package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/ui"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconHeart, "Health Dashboard"))
	b.WriteString("\n")
	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
	}
	if m.err != nil {
		b.WriteString(ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
	}

	for i, w := range m.layout.Widgets {
		b.WriteString(m.renderWidget(i, w))
		b.WriteString("\n")
	}

	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("↑/↓ select · space toggle · J/K move · g report · d reset · r refresh · q quit"))
	return b.String()
}

func (m model) renderWidget(i int, w Widget) string {
	title := w.Title
	if i == m.selected {
		title = ui.SelectedRow.Render("▸ " + title)
	} else {
		title = ui.PanelTitle.Render("  " + title)
	}
	if !w.Visible {
		return title + ui.Muted.Render("  (hidden)")
	}

	var body string
	switch w.Kind {
	case WidgetScore:
		body = m.renderScore()
	case WidgetAdvice:
		body = m.renderAdvice()
	case WidgetDiet:
		body = m.renderDiet()
	case WidgetExercise:
		body = m.renderExercise()
	case WidgetSleep:
		body = m.renderSleep()
	case WidgetReport:
		body = m.renderReport()
	}

	panel := ui.Panel
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, panel.Render(body))
}

func (m model) renderScore() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  Level %d  %s %d%%\n",
		ui.IconTrophy,
		ui.Gold.Render(fmt.Sprintf("%d pts", m.state.TotalPoints)),
		m.state.Level,
		ui.ProgressBar(m.state.ProgressToNextLevel, 20),
		m.state.ProgressToNextLevel,
	)

	var badges []string
	for _, badge := range m.state.Badges {
		if badge.Unlocked {
			badges = append(badges, badge.Icon+" "+badge.Name)
		} else {
			badges = append(badges, ui.Muted.Render(ui.IconLock+" "+badge.Name))
		}
	}
	b.WriteString(strings.Join(badges, "  "))
	b.WriteString("\n")

	for _, c := range m.state.Challenges {
		mark := ui.Muted.Render("·")
		if c.Completed {
			mark = ui.Good.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s %d/%d\n", mark, c.Name, c.Current, c.Target)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderAdvice() string {
	if len(m.advice) == 0 {
		return ui.Good.Render("No advice — keep it up!")
	}
	var lines []string
	for _, a := range m.advice {
		lines = append(lines, fmt.Sprintf("%s [%s] %s — %s",
			ui.CategoryIcon(a.Category), ui.PriorityText(a.Priority), a.Title, ui.Muted.Render(a.Description)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderDiet() string {
	if len(m.diet) == 0 {
		return ui.Muted.Render("No diet entries this week.")
	}
	var lines []string
	for _, e := range m.diet {
		lines = append(lines, fmt.Sprintf("%s  %4d kcal  veg %.0f%%  protein %.0f%%  drinks %d  fried %d",
			e.Date.Format("Mon 02"), e.CalorieIntake, e.VegRatio*100, e.ProteinRatio*100, e.SugaryDrinks, e.FriedFood))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderExercise() string {
	if len(m.exercise) == 0 {
		return ui.Muted.Render("No exercise entries this week.")
	}
	var lines []string
	for _, e := range m.exercise {
		lines = append(lines, fmt.Sprintf("%s  %6d steps  %3d min moderate  %3d min sitting",
			e.Date.Format("Mon 02"), e.DailySteps, e.ModerateMinutes, e.SittingMinutes))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderSleep() string {
	if len(m.sleep) == 0 {
		return ui.Muted.Render("No sleep entries this week.")
	}
	var lines []string
	for _, e := range m.sleep {
		phone := ""
		if e.PhoneBeforeBed {
			phone = "  📱"
		}
		lines = append(lines, fmt.Sprintf("%s  %s → %s  %.1fh%s",
			e.Date.Format("Mon 02"), e.BedTime, e.WakeTime, e.Duration, phone))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderReport() string {
	switch m.report.State {
	case ai.ReportGenerating:
		return ui.Muted.Render("Generating…")
	case ai.ReportSucceeded:
		return m.report.Summary
	case ai.ReportFailed:
		return ui.Warn.Render(m.report.Message)
	default:
		return ui.Muted.Render("Press g to generate this week's summary.")
	}
}
