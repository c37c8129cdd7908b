package engine

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinMinutes    = 15
	MaxMinutes    = 120
	MinutesStep   = 5
	MinExercises  = 3
	MaxExercises  = 12
	MinDays       = 1
	MaxDays       = 7
	MaxAge        = 120
	DefaultGender = "Other"
)

type Availability struct {
	DaysPerWeek    int `json:"daysPerWeek"`
	MinsPerSession int `json:"minsPerSession"`
}

// Blueprint is the durable user profile created by onboarding.
type Blueprint struct {
	Age          int          `json:"age"`
	Gender       string       `json:"gender"`
	Goal         Goal         `json:"goal"`
	Availability Availability `json:"availability"`
	Injuries     []string     `json:"injuries"`
	MaxExercises int          `json:"maxExercises"`
}

// Validate checks the blueprint against its bounds.
func (b Blueprint) Validate() error {
	if b.Age <= 0 || b.Age > MaxAge {
		return ValidationError{Field: "age", Reason: fmt.Sprintf("must be between 1 and %d", MaxAge)}
	}
	if !b.Goal.IsValid() {
		return ValidationError{Field: "goal", Reason: fmt.Sprintf("unknown goal %q", b.Goal)}
	}
	if b.Availability.DaysPerWeek < MinDays || b.Availability.DaysPerWeek > MaxDays {
		return ValidationError{Field: "daysPerWeek", Reason: fmt.Sprintf("must be between %d and %d", MinDays, MaxDays)}
	}
	if b.Availability.MinsPerSession < MinMinutes || b.Availability.MinsPerSession > MaxMinutes {
		return ValidationError{Field: "minsPerSession", Reason: fmt.Sprintf("must be between %d and %d", MinMinutes, MaxMinutes)}
	}
	if b.MaxExercises < MinExercises || b.MaxExercises > MaxExercises {
		return ValidationError{Field: "maxExercises", Reason: fmt.Sprintf("must be between %d and %d", MinExercises, MaxExercises)}
	}
	seen := map[string]bool{}
	for _, inj := range b.Injuries {
		k := strings.ToLower(strings.TrimSpace(inj))
		if k == "" {
			return ValidationError{Field: "injuries", Reason: "empty entry"}
		}
		if seen[k] {
			return ValidationError{Field: "injuries", Reason: fmt.Sprintf("duplicate %q", inj)}
		}
		seen[k] = true
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate the wizard's blueprint.
func (b Blueprint) Clone() Blueprint {
	out := b
	out.Injuries = append([]string(nil), b.Injuries...)
	return out
}

// Equal compares blueprints field by field. Injuries compare as sets,
// ignoring order, case and repeats.
func (b Blueprint) Equal(o Blueprint) bool {
	if b.Age != o.Age || b.Gender != o.Gender || b.Goal != o.Goal ||
		b.Availability != o.Availability || b.MaxExercises != o.MaxExercises {
		return false
	}
	bs, obs := injurySet(b.Injuries), injurySet(o.Injuries)
	if len(bs) != len(obs) {
		return false
	}
	for k := range bs {
		if !obs[k] {
			return false
		}
	}
	return true
}

func injurySet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, i := range list {
		set[strings.ToLower(strings.TrimSpace(i))] = true
	}
	return set
}

func (b Blueprint) InjuryList() string {
	if len(b.Injuries) == 0 {
		return "None"
	}
	return strings.Join(b.Injuries, ", ")
}

type OnboardingStep int

const (
	StepBasics OnboardingStep = iota
	StepGoal
	StepAvailability
	StepInjuries
)

const onboardingSteps = 4

func (s OnboardingStep) String() string {
	switch s {
	case StepBasics:
		return "The Basics"
	case StepGoal:
		return "Your Goal"
	case StepAvailability:
		return "Availability"
	case StepInjuries:
		return "Injuries"
	default:
		return "?"
	}
}

// BlueprintDraft is the in-progress onboarding form. Every adjuster keeps the
// draft inside the blueprint bounds, whatever sequence of inputs it receives.
type BlueprintDraft struct {
	step OnboardingStep
	bp   Blueprint
}

func NewBlueprintDraft() *BlueprintDraft {
	return &BlueprintDraft{
		step: StepBasics,
		bp: Blueprint{
			Age:          30,
			Gender:       DefaultGender,
			Goal:         GoalFunctionalStrength,
			Availability: Availability{DaysPerWeek: 3, MinsPerSession: 30},
			Injuries:     []string{},
			MaxExercises: 6,
		},
	}
}

func (d *BlueprintDraft) Step() OnboardingStep { return d.step }
func (d *BlueprintDraft) StepCount() int       { return onboardingSteps }
func (d *BlueprintDraft) Current() Blueprint   { return d.bp.Clone() }

// Next advances one step and reports whether the draft was already on the last step.
func (d *BlueprintDraft) Next() (done bool) {
	if int(d.step) >= onboardingSteps-1 {
		return true
	}
	d.step++
	return false
}

func (d *BlueprintDraft) Back() bool {
	if d.step == StepBasics {
		return false
	}
	d.step--
	return true
}

// SetAge parses text input. Non-numeric or out-of-range input is rejected and
// the draft keeps its previous age.
func (d *BlueprintDraft) SetAge(text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return ValidationError{Field: "age", Reason: "must be a number"}
	}
	if n <= 0 || n > MaxAge {
		return ValidationError{Field: "age", Reason: fmt.Sprintf("must be between 1 and %d", MaxAge)}
	}
	d.bp.Age = n
	return nil
}

func (d *BlueprintDraft) SetGender(g string) {
	g = strings.TrimSpace(g)
	if g == "" {
		g = DefaultGender
	}
	d.bp.Gender = g
}

func (d *BlueprintDraft) SetGoal(g Goal) error {
	if !g.IsValid() {
		return ValidationError{Field: "goal", Reason: fmt.Sprintf("unknown goal %q", g)}
	}
	d.bp.Goal = g
	return nil
}

func (d *BlueprintDraft) AdjustDays(delta int) int {
	d.bp.Availability.DaysPerWeek = clamp(d.bp.Availability.DaysPerWeek+delta, MinDays, MaxDays)
	return d.bp.Availability.DaysPerWeek
}

// AdjustMinutes moves the session length by delta steps of MinutesStep.
func (d *BlueprintDraft) AdjustMinutes(steps int) int {
	d.bp.Availability.MinsPerSession = clamp(d.bp.Availability.MinsPerSession+steps*MinutesStep, MinMinutes, MaxMinutes)
	return d.bp.Availability.MinsPerSession
}

func (d *BlueprintDraft) AdjustMaxExercises(delta int) int {
	d.bp.MaxExercises = clamp(d.bp.MaxExercises+delta, MinExercises, MaxExercises)
	return d.bp.MaxExercises
}

// ToggleInjury adds or removes an injury. Matching ignores case and surrounding space.
func (d *BlueprintDraft) ToggleInjury(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "injury", Reason: "name is required"}
	}
	for i, inj := range d.bp.Injuries {
		if strings.EqualFold(inj, name) {
			d.bp.Injuries = append(d.bp.Injuries[:i], d.bp.Injuries[i+1:]...)
			return nil
		}
	}
	d.bp.Injuries = append(d.bp.Injuries, name)
	return nil
}

func (d *BlueprintDraft) HasInjury(name string) bool {
	for _, inj := range d.bp.Injuries {
		if strings.EqualFold(inj, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func (d *BlueprintDraft) Build() (Blueprint, error) {
	bp := d.bp.Clone()
	if err := bp.Validate(); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
