package engine

type Goal string

const (
	GoalWeightLoss         Goal = "Weight Loss"
	GoalMuscleGain         Goal = "Muscle Gain"
	GoalFunctionalStrength Goal = "Functional Strength"
)

// Goals lists the goals in display order.
var Goals = []Goal{GoalWeightLoss, GoalMuscleGain, GoalFunctionalStrength}

func (g Goal) IsValid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain, GoalFunctionalStrength:
		return true
	default:
		return false
	}
}

type Vibe string

const (
	VibeLow    Vibe = "LOW"
	VibeSteady Vibe = "STEADY"
	VibeStrong Vibe = "STRONG"
)

var Vibes = []Vibe{VibeLow, VibeSteady, VibeStrong}

func (v Vibe) IsValid() bool {
	switch v {
	case VibeLow, VibeSteady, VibeStrong:
		return true
	default:
		return false
	}
}

type BodyFocus string

const (
	FocusFullBody  BodyFocus = "Full Body"
	FocusUpperBody BodyFocus = "Upper Body"
	FocusLowerBody BodyFocus = "Lower Body"
	FocusCore      BodyFocus = "Core"
)

var Focuses = []BodyFocus{FocusFullBody, FocusUpperBody, FocusLowerBody, FocusCore}

func (f BodyFocus) IsValid() bool {
	switch f {
	case FocusFullBody, FocusUpperBody, FocusLowerBody, FocusCore:
		return true
	default:
		return false
	}
}

// Category values match the wire format the generators are asked to produce.
type Category string

const (
	CategoryWarmup   Category = "Warm-up"
	CategoryMain     Category = "Main"
	CategoryCooldown Category = "Cool-down"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWarmup, CategoryMain, CategoryCooldown:
		return true
	default:
		return false
	}
}

// Screen is a state of the wizard. Generating, Scanning and Swapping are
// pending states that wait on a single outstanding gateway request.
type Screen int

const (
	ScreenOnboarding Screen = iota
	ScreenVibeCheck
	ScreenBodyFocus
	ScreenEquipment
	ScreenGenerating
	ScreenScanning
	ScreenWorkout
	ScreenSwapping
)

func (s Screen) String() string {
	switch s {
	case ScreenOnboarding:
		return "onboarding"
	case ScreenVibeCheck:
		return "vibe-check"
	case ScreenBodyFocus:
		return "body-focus"
	case ScreenEquipment:
		return "equipment"
	case ScreenGenerating:
		return "generating"
	case ScreenScanning:
		return "scanning"
	case ScreenWorkout:
		return "workout"
	case ScreenSwapping:
		return "swapping"
	default:
		return "unknown"
	}
}

// IsPending reports whether the screen waits on a gateway request.
func (s Screen) IsPending() bool {
	return s == ScreenGenerating || s == ScreenScanning || s == ScreenSwapping
}
