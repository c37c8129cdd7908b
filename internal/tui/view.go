package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jimbro/internal/engine"
	"jimbro/internal/ui"
)

func (m wizardModel) View() string {
	var body string
	switch m.w.Screen() {
	case engine.ScreenOnboarding:
		body = m.viewOnboarding()
	case engine.ScreenVibeCheck:
		body = m.viewVibe()
	case engine.ScreenBodyFocus:
		body = m.viewFocus()
	case engine.ScreenEquipment:
		body = m.viewEquipment()
	case engine.ScreenGenerating:
		body = m.viewPending("Building your workout…")
	case engine.ScreenScanning:
		body = m.viewPending(ui.IconCamera + " Scanning the room…")
	case engine.ScreenSwapping:
		body = m.viewPending(ui.IconSwap + " Finding an alternative…")
	case engine.ScreenWorkout:
		body = m.viewWorkout()
	}
	return m.renderHeader() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m wizardModel) renderHeader() string {
	title := ui.Heading(ui.IconBro, "JimBro")
	if s := m.w.Screen(); s != engine.ScreenOnboarding {
		title += " " + ui.Title.Render("· "+s.String())
	}
	sel := m.w.Selection()
	parts := []string{title}
	if sel.Vibe != "" {
		parts = append(parts, ui.VibeText(sel.Vibe))
	}
	if sel.Focus != "" {
		parts = append(parts, ui.H2.Render(string(sel.Focus)))
	}
	return strings.Join(parts, ui.Muted.Render(" | "))
}

func (m wizardModel) renderFooter() string {
	var lines []string
	if m.inputKind != inputNone {
		lines = append(lines, m.input.View(), ui.Muted.Render("enter: confirm · esc: cancel"))
	} else {
		lines = append(lines, ui.Muted.Render(m.keyHelp()))
	}
	if n := m.w.Notice(); n != "" {
		lines = append(lines, ui.Warn.Render(ui.IconInfo+" "+n))
	}
	if m.lastLog != "" {
		lines = append(lines, ui.Dim.Render(m.lastLog))
	}
	return "\n" + strings.Join(lines, "\n")
}

func (m wizardModel) keyHelp() string {
	switch m.w.Screen() {
	case engine.ScreenOnboarding:
		return "↑/↓ move · ←/→ adjust · space toggle · enter/tab next · shift+tab back · q quit"
	case engine.ScreenVibeCheck:
		return "↑/↓ move · enter choose · 1-3 quick pick · q quit"
	case engine.ScreenBodyFocus:
		return "↑/↓ move · enter choose · esc back · q quit"
	case engine.ScreenEquipment:
		return "↑/↓ move · space toggle · a add · s scan photo · enter generate · esc back · q quit"
	case engine.ScreenWorkout:
		return "↑/↓ move · space done · w swap · f finish · q quit"
	default:
		return "esc cancel · q quit"
	}
}

func cursorMark(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func (m wizardModel) viewOnboarding() string {
	d := m.w.Draft()
	if d == nil {
		return ""
	}
	bp := d.Current()
	step := int(d.Step())
	var out []string
	out = append(out, ui.H2.Render(fmt.Sprintf("Blueprint · step %d/%d · %s", step+1, d.StepCount(), d.Step())))
	out = append(out, progressBar(step+1, d.StepCount(), 20), "")

	switch d.Step() {
	case engine.StepBasics:
		out = append(out,
			cursorMark(m.cursor == 0)+ui.LabelValue("Age", bp.Age),
			cursorMark(m.cursor == 1)+ui.LabelValue("Gender", "‹ "+bp.Gender+" ›"),
		)
	case engine.StepGoal:
		out = append(out, "What are we chasing?")
		for i, g := range engine.Goals {
			mark := "( )"
			if g == bp.Goal {
				mark = "(•)"
			}
			out = append(out, fmt.Sprintf("%s%s %s", cursorMark(i == m.cursor), mark, g))
		}
	case engine.StepAvailability:
		out = append(out,
			cursorMark(m.cursor == 0)+ui.LabelValue("Days per week", fmt.Sprintf("‹ %d ›", bp.Availability.DaysPerWeek)),
			cursorMark(m.cursor == 1)+ui.LabelValue("Minutes per session", fmt.Sprintf("‹ %d ›", bp.Availability.MinsPerSession)),
			cursorMark(m.cursor == 2)+ui.LabelValue("Max exercises", fmt.Sprintf("‹ %d ›", bp.MaxExercises)),
		)
	case engine.StepInjuries:
		out = append(out, "Anything we should go easy on?")
		for i, inj := range engine.InjuryOptions {
			out = append(out, fmt.Sprintf("%s%s %s", cursorMark(i == m.cursor), ui.CheckIcon(d.HasInjury(inj)), inj))
		}
	}
	return strings.Join(out, "\n")
}

func (m wizardModel) viewVibe() string {
	out := []string{ui.H2.Render(ui.IconBolt + " How's the energy today?"), ""}
	for i, v := range engine.Vibes {
		info := engine.InfoForVibe(v)
		line := fmt.Sprintf("%s%d. %s %s", cursorMark(i == m.cursor), i+1, info.Emoji, info.Label)
		if i == m.cursor {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m wizardModel) viewFocus() string {
	out := []string{}
	if q := m.w.Quote(); q != "" {
		out = append(out, ui.Quote.Render("“"+q+"”"), "")
	}
	out = append(out, ui.H2.Render("Where are we working?"), "")
	for i, f := range engine.Focuses {
		line := cursorMark(i == m.cursor) + string(f)
		if i == m.cursor {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m wizardModel) viewEquipment() string {
	out := []string{ui.H2.Render("What have you got?"), ""}
	icons := map[string]string{}
	for _, p := range engine.EquipmentPresets {
		icons[p.ID] = p.Icon
	}
	for i, id := range m.equipmentRows() {
		icon := icons[id]
		if icon == "" {
			icon = ui.IconSparkle
		}
		out = append(out, fmt.Sprintf("%s%s %s %s", cursorMark(i == m.cursor), ui.CheckIcon(m.w.HasEquipment(id)), icon, engine.EquipmentName(id)))
	}
	return strings.Join(out, "\n")
}

func (m wizardModel) viewPending(label string) string {
	return m.spinner.View() + " " + label + "\n\n" + ui.Muted.Render("esc to cancel")
}

func (m wizardModel) viewWorkout() string {
	p := m.w.Player()
	if p == nil {
		return ""
	}
	exs := p.Exercises()

	var left []string
	left = append(left, fmt.Sprintf("%d/%d %s", p.CompletedCount(), p.Len(), progressBar(p.CompletedCount(), p.Len(), 20)))
	if p.IsSessionComplete() {
		left = append(left, ui.BadgeComplete)
	}
	var last engine.Category
	for i, e := range exs {
		if e.Category != last {
			left = append(left, "", ui.CategoryText(e.Category))
			last = e.Category
		}
		name := e.Name
		if p.IsCompleted(e.ID) {
			name = ui.Checked.Render(name)
		}
		line := fmt.Sprintf("%s%s %s", cursorMark(i == m.cursor), ui.CheckIcon(p.IsCompleted(e.ID)), name)
		if e.Alternate {
			line += " " + ui.BadgeAlternate
		}
		left = append(left, line)
	}

	var right []string
	if m.cursor < len(exs) {
		e := exs[m.cursor]
		right = append(right, ui.PanelTitle.Render(e.Name))
		right = append(right, ui.LabelValue("Sets", e.Sets), ui.LabelValue("Reps", e.Reps))
		if e.SuggestedWeight != "" {
			right = append(right, ui.LabelValue("Weight", e.SuggestedWeight))
		}
		if len(e.Tips) > 0 {
			right = append(right, "", ui.Key.Render("Tips"))
			for _, t := range e.Tips {
				right = append(right, "- "+t)
			}
		}
		if e.YoutubeURL != "" {
			right = append(right, "", ui.IconVideo+" "+ui.Muted.Render(e.YoutubeURL))
		}
	}

	if len(right) > 0 {
		right = strings.Split(ui.Panel.Render(strings.Join(right, "\n")), "\n")
	}

	leftW := 40
	if m.width > 0 {
		if maxLeft := m.width / 2; maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 24 {
			leftW = 24
		}
	}
	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}
	return body.String()
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// padRight pads by display width so styled cells line up.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
