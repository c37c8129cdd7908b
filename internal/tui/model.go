package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jimbro/internal/engine"
	"jimbro/internal/gateway"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputAge
	inputCustomEquipment
	inputScanPath
)

var genders = []string{"Male", "Female", "Other"}

type wizardModel struct {
	ctx context.Context
	svc *engine.Service
	w   *engine.Wizard
	log *slog.Logger

	width  int
	height int
	cursor int

	input     textinput.Model
	inputKind inputKind
	spinner   spinner.Model

	lastLog string
}

// jobMsg carries a finished gateway request back to the update loop.
type jobMsg struct {
	outcome engine.Outcome
}

func newWizardModel(ctx context.Context, svc *engine.Service) wizardModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	w := svc.StartWizard(ctx)
	lastLog := "Welcome back, bro."
	if w.Screen() == engine.ScreenOnboarding {
		lastLog = "Let's build your blueprint."
	}
	return wizardModel{
		ctx:     ctx,
		svc:     svc,
		w:       w,
		log:     svc.Logger(),
		input:   ti,
		spinner: sp,
		lastLog: lastLog,
	}
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func runJob(job engine.Job) tea.Cmd {
	return func() tea.Msg {
		return jobMsg{outcome: job.Run()}
	}
}

func (m wizardModel) startJob(job engine.Job, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.lastLog = describe(err)
		return m, nil
	}
	m.lastLog = ""
	return m, tea.Batch(m.spinner.Tick, runJob(job))
}

func (m wizardModel) resolve(o engine.Outcome) (tea.Model, tea.Cmd) {
	err := m.w.Resolve(o)
	m.log.Debug("job resolved", "ticket", o.Ticket, "kind", o.Kind, "screen", m.w.Screen(), "error", err)
	switch {
	case errors.Is(err, engine.ErrStaleResult):
		return m, nil
	case err != nil:
		m.lastLog = describe(err)
	case o.Kind == engine.JobGenerate:
		m.cursor = 0
		m.lastLog = fmt.Sprintf("%d exercises ready. Let's go.", m.w.Player().Len())
	default:
		m.lastLog = ""
	}
	return m, nil
}

// shutdown abandons any request still in flight when the program exits.
func (m wizardModel) shutdown() {
	if m.w.Busy() {
		_ = m.w.CancelPending()
	}
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case jobMsg:
		return m.resolve(msg.outcome)
	case spinner.TickMsg:
		if !m.w.Screen().IsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.shutdown()
			return m, tea.Quit
		}
		if m.inputKind != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKey(msg)
	}
	if m.inputKind != inputNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *wizardModel) openInput(kind inputKind, placeholder, value string) tea.Cmd {
	m.inputKind = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *wizardModel) closeInput() {
	m.inputKind = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m wizardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		kind, value := m.inputKind, m.input.Value()
		m.closeInput()
		switch kind {
		case inputAge:
			if err := m.w.Draft().SetAge(value); err != nil {
				m.lastLog = describe(err)
			} else {
				m.lastLog = ""
			}
		case inputCustomEquipment:
			if err := m.w.AddCustomEquipment(value); err != nil {
				m.lastLog = describe(err)
			} else {
				m.lastLog = "Added " + strings.TrimSpace(value) + "."
			}
		case inputScanPath:
			data, mime, err := gateway.ReadImage(value)
			if err != nil {
				m.lastLog = err.Error()
				return m, nil
			}
			return m.startJob(m.w.BeginScan(m.ctx, data, mime))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m wizardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		m.shutdown()
		return m, tea.Quit
	}
	m.w.ClearNotice()

	switch m.w.Screen() {
	case engine.ScreenOnboarding:
		return m.updateOnboarding(key)
	case engine.ScreenVibeCheck:
		return m.updateVibe(key)
	case engine.ScreenBodyFocus:
		return m.updateFocus(key)
	case engine.ScreenEquipment:
		return m.updateEquipment(key)
	case engine.ScreenWorkout:
		return m.updateWorkout(key)
	case engine.ScreenGenerating, engine.ScreenScanning, engine.ScreenSwapping:
		if key == "esc" {
			if err := m.w.CancelPending(); err != nil {
				m.lastLog = describe(err)
			} else {
				m.lastLog = ""
			}
		}
	}
	return m, nil
}

func (m *wizardModel) move(key string, n int) bool {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
		return true
	}
	return false
}

func (m wizardModel) updateOnboarding(key string) (tea.Model, tea.Cmd) {
	d := m.w.Draft()
	if d == nil {
		return m, nil
	}

	next := func() (tea.Model, tea.Cmd) {
		m.cursor = 0
		if !d.Next() {
			return m, nil
		}
		if err := m.w.SubmitDraft(m.ctx); err != nil {
			m.lastLog = describe(err)
			return m, nil
		}
		m.lastLog = "Blueprint saved."
		return m, nil
	}

	switch key {
	case "tab":
		return next()
	case "shift+tab", "esc":
		if d.Back() {
			m.cursor = 0
		}
		return m, nil
	}

	switch d.Step() {
	case engine.StepBasics:
		if m.move(key, 2) {
			return m, nil
		}
		switch {
		case m.cursor == 0 && (key == "enter" || key == "e"):
			cmd := m.openInput(inputAge, "age", fmt.Sprint(d.Current().Age))
			return m, cmd
		case m.cursor == 1 && (key == "left" || key == "h"):
			d.SetGender(cycle(genders, d.Current().Gender, -1))
		case m.cursor == 1 && (key == "right" || key == "l" || key == " "):
			d.SetGender(cycle(genders, d.Current().Gender, 1))
		case key == "enter":
			return next()
		}
	case engine.StepGoal:
		if m.move(key, len(engine.Goals)) {
			return m, nil
		}
		switch key {
		case " ":
			_ = d.SetGoal(engine.Goals[m.cursor])
		case "enter":
			_ = d.SetGoal(engine.Goals[m.cursor])
			return next()
		}
	case engine.StepAvailability:
		if m.move(key, 3) {
			return m, nil
		}
		delta := 0
		switch key {
		case "left", "h", "-":
			delta = -1
		case "right", "l", "+":
			delta = 1
		case "enter":
			return next()
		}
		if delta != 0 {
			switch m.cursor {
			case 0:
				d.AdjustDays(delta)
			case 1:
				d.AdjustMinutes(delta)
			case 2:
				d.AdjustMaxExercises(delta)
			}
		}
	case engine.StepInjuries:
		if m.move(key, len(engine.InjuryOptions)) {
			return m, nil
		}
		switch key {
		case " ", "x":
			_ = d.ToggleInjury(engine.InjuryOptions[m.cursor])
		case "enter":
			return next()
		}
	}
	return m, nil
}

func (m wizardModel) updateVibe(key string) (tea.Model, tea.Cmd) {
	if m.move(key, len(engine.Vibes)) {
		return m, nil
	}
	idx := m.cursor
	switch key {
	case "1", "2", "3":
		idx = int(key[0] - '1')
	case "enter", " ":
	default:
		return m, nil
	}
	if err := m.w.SelectVibe(engine.Vibes[idx]); err != nil {
		m.lastLog = describe(err)
		return m, nil
	}
	m.cursor = 0
	m.lastLog = ""
	return m, nil
}

func (m wizardModel) updateFocus(key string) (tea.Model, tea.Cmd) {
	if m.move(key, len(engine.Focuses)) {
		return m, nil
	}
	switch key {
	case "esc", "backspace":
		if err := m.w.Back(); err != nil {
			m.lastLog = describe(err)
		}
		m.cursor = 0
	case "enter", " ":
		if err := m.w.SelectFocus(engine.Focuses[m.cursor]); err != nil {
			m.lastLog = describe(err)
			return m, nil
		}
		m.cursor = 0
		m.lastLog = ""
	}
	return m, nil
}

// equipmentRows lists the presets followed by custom and scanned items.
func (m wizardModel) equipmentRows() []string {
	rows := make([]string, 0, len(engine.EquipmentPresets))
	for _, p := range engine.EquipmentPresets {
		rows = append(rows, p.ID)
	}
	for _, e := range m.w.Selection().Equipment {
		preset := false
		for _, p := range engine.EquipmentPresets {
			if strings.EqualFold(p.ID, e) {
				preset = true
				break
			}
		}
		if !preset {
			rows = append(rows, e)
		}
	}
	return rows
}

func (m wizardModel) updateEquipment(key string) (tea.Model, tea.Cmd) {
	rows := m.equipmentRows()
	if m.move(key, len(rows)) {
		return m, nil
	}
	switch key {
	case " ", "x":
		if m.cursor < len(rows) {
			if err := m.w.ToggleEquipment(rows[m.cursor]); err != nil {
				m.lastLog = describe(err)
			}
			if n := len(m.equipmentRows()); m.cursor >= n {
				m.cursor = n - 1
			}
		}
	case "a":
		cmd := m.openInput(inputCustomEquipment, "e.g. Yoga Mat", "")
		return m, cmd
	case "s":
		cmd := m.openInput(inputScanPath, "path to a room photo", "")
		return m, cmd
	case "enter", "g":
		return m.startJob(m.w.BeginGeneration(m.ctx, m.w.Selection().Equipment))
	case "esc", "backspace":
		if err := m.w.Back(); err != nil {
			m.lastLog = describe(err)
		}
		m.cursor = 0
	}
	return m, nil
}

func (m wizardModel) updateWorkout(key string) (tea.Model, tea.Cmd) {
	p := m.w.Player()
	if p == nil {
		return m, nil
	}
	exs := p.Exercises()
	if m.move(key, len(exs)) {
		return m, nil
	}
	if m.cursor >= len(exs) {
		return m, nil
	}
	cur := exs[m.cursor]
	switch key {
	case " ", "x", "enter":
		if p.ToggleComplete(cur.ID) && p.IsSessionComplete() {
			m.lastLog = "All done! Press f to log the session."
		} else {
			m.lastLog = ""
		}
	case "w", "s":
		return m.startJob(m.w.BeginSwap(m.ctx, cur.ID))
	case "f":
		rec, err := m.w.FinishSession(m.ctx)
		if err != nil {
			m.lastLog = describe(err)
			return m, nil
		}
		m.cursor = 0
		m.lastLog = fmt.Sprintf("Logged %d/%d exercises.", len(rec.CompletedIDs), len(rec.Exercises))
	}
	return m, nil
}

func cycle(options []string, current string, delta int) string {
	idx := len(options) - 1
	for i, o := range options {
		if strings.EqualFold(o, current) {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(options)) % len(options)
	return options[idx]
}

func describe(err error) string {
	var ve engine.ValidationError
	var te engine.TransitionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &te):
		return "Not available here."
	case errors.Is(err, engine.ErrBusy):
		return "Hang on, still working on it."
	case engine.GenerationKind(err) != 0:
		// The wizard notice already explains it to the user.
		return "(" + engine.GenerationKind(err).String() + ")"
	default:
		return err.Error()
	}
}
