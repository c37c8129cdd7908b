package engine

import "strings"

type VibeInfo struct {
	Vibe  Vibe
	Label string
	Emoji string
	Quote string
}

var vibeInfos = []VibeInfo{
	{Vibe: VibeLow, Label: "Low Energy", Emoji: "🧘", Quote: "A 5-minute movement is a 100% improvement over standing still."},
	{Vibe: VibeSteady, Label: "Steady", Emoji: "⚖️", Quote: "Consistent exercise can increase daily energy levels by up to 20%."},
	{Vibe: VibeStrong, Label: "Strong", Emoji: "🔥", Quote: "You're built for this. Let's find your new limit today."},
}

// InfoForVibe returns the display info for v. Unknown vibes get an empty info.
func InfoForVibe(v Vibe) VibeInfo {
	for _, vi := range vibeInfos {
		if vi.Vibe == v {
			return vi
		}
	}
	return VibeInfo{Vibe: v}
}

// Intensity is the phrase the generators use to scale a session.
func (v Vibe) Intensity() string {
	switch v {
	case VibeLow:
		return "gentle"
	case VibeStrong:
		return "high intensity"
	default:
		return "moderate"
	}
}

type EquipmentPreset struct {
	ID   string
	Name string
	Icon string
}

var EquipmentPresets = []EquipmentPreset{
	{ID: "bodyweight", Name: "Bodyweight", Icon: "🧍"},
	{ID: "dumbbells", Name: "Dumbbells", Icon: "🏋️"},
	{ID: "kettlebell", Name: "Kettlebell", Icon: "🔔"},
	{ID: "bands", Name: "Resistance Bands", Icon: "🎗️"},
	{ID: "chair", Name: "Chair", Icon: "🪑"},
	{ID: "pullup", Name: "Pull-up Bar", Icon: "🪜"},
}

// DefaultEquipment is the selection offered on first entering the equipment screen.
const DefaultEquipment = "bodyweight"

// EquipmentName resolves a preset id to its display name; custom ids are returned as-is.
func EquipmentName(id string) string {
	for _, p := range EquipmentPresets {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

var InjuryOptions = []string{"Lower Back", "Knee", "Shoulder", "Neck", "Wrist", "Ankle"}

// mergeEquipment unions add into base keeping first-seen order. Names compare
// case-insensitively; blanks are dropped.
func mergeEquipment(base []string, add ...string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := map[string]bool{}
	for _, list := range [][]string{base, add} {
		for _, e := range list {
			e = strings.TrimSpace(e)
			k := strings.ToLower(e)
			if e == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, e)
		}
	}
	return out
}
