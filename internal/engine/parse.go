package engine

import "strings"

func normalizeKey(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return s
}

// ParseGoal parses user input to a Goal.
// Supported: weightloss, loss, musclegain, muscle, functionalstrength, functional, strength.
func ParseGoal(input string) (Goal, bool) {
	switch normalizeKey(input) {
	case "weightloss", "loss", "lose":
		return GoalWeightLoss, true
	case "musclegain", "muscle", "gain":
		return GoalMuscleGain, true
	case "functionalstrength", "functional", "strength":
		return GoalFunctionalStrength, true
	default:
		return "", false
	}
}

// ParseVibe accepts the wire values (LOW, STEADY, STRONG) in any case.
func ParseVibe(input string) (Vibe, bool) {
	switch normalizeKey(input) {
	case "low":
		return VibeLow, true
	case "steady":
		return VibeSteady, true
	case "strong":
		return VibeStrong, true
	default:
		return "", false
	}
}

func ParseFocus(input string) (BodyFocus, bool) {
	switch normalizeKey(input) {
	case "fullbody", "full":
		return FocusFullBody, true
	case "upperbody", "upper":
		return FocusUpperBody, true
	case "lowerbody", "lower":
		return FocusLowerBody, true
	case "core", "abs":
		return FocusCore, true
	default:
		return "", false
	}
}

// ParseCategory tolerates the spellings generators tend to emit
// ("Warmup", "warm_up", "cooldown").
func ParseCategory(input string) (Category, bool) {
	switch normalizeKey(input) {
	case "warmup":
		return CategoryWarmup, true
	case "main":
		return CategoryMain, true
	case "cooldown":
		return CategoryCooldown, true
	default:
		return "", false
	}
}
