package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jimbro/internal/engine"
)

// JimBro theme (CLI + TUI).

const (
	IconBro     = "💪"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCamera  = "📷"
	IconSwap    = "🔁"
	IconScroll  = "📜"
	IconVideo   = "▶"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cSky     = lipgloss.Color("39")  // light blue
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)
	Quote = lipgloss.NewStyle().Italic(true).Foreground(cSky)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
	Checked     = lipgloss.NewStyle().Foreground(cMuted).Strikethrough(true)

	BadgeAlternate = Warn.Render(IconSwap + " ALT")
	BadgeComplete  = Gold.Render(IconTrophy + " SESSION COMPLETE")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryText colours the warm-up / main / cool-down phase label.
func CategoryText(c engine.Category) string {
	switch c {
	case engine.CategoryWarmup:
		return Warn.Render(string(c))
	case engine.CategoryMain:
		return H2.Render(string(c))
	case engine.CategoryCooldown:
		return lipgloss.NewStyle().Bold(true).Foreground(cSky).Render(string(c))
	default:
		return Muted.Render(string(c))
	}
}

// VibeText renders a vibe with its emoji and label.
func VibeText(v engine.Vibe) string {
	info := engine.InfoForVibe(v)
	label := info.Label
	if label == "" {
		label = string(v)
	}
	s := strings.TrimSpace(info.Emoji + " " + label)
	switch v {
	case engine.VibeLow:
		return Muted.Render(s)
	case engine.VibeStrong:
		return Bad.Render(s)
	default:
		return Good.Render(s)
	}
}

func CheckIcon(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// StatusText renders a finished session's completion state.
func StatusText(completed, total int) string {
	switch {
	case total > 0 && completed == total:
		return Good.Render(fmt.Sprintf("complete %d/%d", completed, total))
	case completed == 0:
		return Bad.Render(fmt.Sprintf("skipped 0/%d", total))
	default:
		return Warn.Render(fmt.Sprintf("partial %d/%d", completed, total))
	}
}
