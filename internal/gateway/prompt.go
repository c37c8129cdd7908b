package gateway

import (
	"fmt"
	"strings"

	"jimbro/internal/engine"
)

const scanPrompt = "List common household fitness equipment or items found in this room that can be used for exercise. Return as a simple JSON array of strings."

// jsonOnlySystem is sent to chat providers that have no response schema support.
const jsonOnlySystem = `You are JimBro, a certified strength and conditioning coach.
Reply with JSON only. No markdown, no commentary.
Each exercise is an object with the keys:
id (string), name (string), reps (string, e.g. "12" or "30s"), sets (integer >= 1),
suggestedWeight (string, may be empty), tips (array of strings),
thumbnailUrl (string), youtubeUrl (string),
category (one of "Warm-up", "Main", "Cool-down").`

func profileLines(req engine.WorkoutRequest) string {
	bp := req.Blueprint
	var b strings.Builder
	fmt.Fprintf(&b, "- Age: %d, Gender: %s\n", bp.Age, bp.Gender)
	fmt.Fprintf(&b, "- Goal: %s\n", bp.Goal)
	fmt.Fprintf(&b, "- Session Time: %d minutes\n", bp.Availability.MinsPerSession)
	fmt.Fprintf(&b, "- Max Exercises: %d\n", bp.MaxExercises)
	fmt.Fprintf(&b, "- Injuries: %s\n", bp.InjuryList())
	fmt.Fprintf(&b, "- Vibe: %s\n", req.Vibe)
	fmt.Fprintf(&b, "- Focus Area: %s\n", req.Focus)
	fmt.Fprintf(&b, "- Available Equipment: %s\n", strings.Join(req.Equipment, ", "))
	return b.String()
}

func safetyLines(bp engine.Blueprint) string {
	var b strings.Builder
	for _, inj := range bp.Injuries {
		switch strings.ToLower(inj) {
		case "knee":
			b.WriteString("- Knee injury: avoid high-impact jumping; use step-outs or low-impact moves.\n")
		case "lower back":
			b.WriteString("- Lower Back injury: avoid heavy spinal loading.\n")
		default:
			fmt.Fprintf(&b, "- %s injury: avoid movements that load or strain the %s.\n", inj, strings.ToLower(inj))
		}
	}
	return b.String()
}

const linkRules = `YOUTUBE LINK RELIABILITY RULES:
1. Provide a 'youtubeUrl' that links to a standard, high-quality form tutorial.
2. Only use links from long-standing, popular fitness channels (e.g. Athlean-X, Jeff Nippard, Squat University) as these are least likely to be deleted or private.
3. Ensure the 'thumbnailUrl' is a valid image URL representing the exercise clearly.
4. Avoid obscure or recently uploaded videos that might have broken links.
`

// WorkoutPrompt renders the generation request for a full session.
func WorkoutPrompt(req engine.WorkoutRequest) string {
	var b strings.Builder
	b.WriteString("Generate a personalized workout session for JimBro.\n\n")
	b.WriteString("User Profile:\n")
	b.WriteString(profileLines(req))
	b.WriteString("\n")
	b.WriteString(linkRules)
	b.WriteString("\nSafety & Structure:\n")
	b.WriteString(safetyLines(req.Blueprint))
	b.WriteString("- Start with a 3-minute Warm-up and end with a 3-minute Cool-down.\n")
	fmt.Fprintf(&b, "- Total exercises (including warm-up/cool-down) <= %d.\n", req.Blueprint.MaxExercises)
	fmt.Fprintf(&b, "- Ensure exercises target the focus area: %s.\n", req.Focus)
	fmt.Fprintf(&b, "- Adjust intensity based on vibe: this session should be %s.\n", req.Vibe.Intensity())
	b.WriteString("- Give every exercise a unique id.\n")
	return b.String()
}

// SwapPrompt asks for one replacement exercise of the same category.
func SwapPrompt(req engine.SwapRequest) string {
	var b strings.Builder
	b.WriteString("Suggest ONE alternative exercise to replace an exercise in a JimBro session.\n\n")
	b.WriteString("User Profile:\n")
	b.WriteString(profileLines(req.WorkoutRequest))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Replace: %s (%s, %d x %s)\n", req.Current.Name, req.Current.Category, req.Current.Sets, req.Current.Reps)
	fmt.Fprintf(&b, "- The replacement MUST have category %q.\n", req.Current.Category)
	if len(req.Keep) > 0 {
		fmt.Fprintf(&b, "- It must differ from: %s.\n", strings.Join(req.Keep, ", "))
	}
	b.WriteString("- Use only the available equipment.\n")
	b.WriteString(safetyLines(req.Blueprint))
	b.WriteString("\n")
	b.WriteString(linkRules)
	return b.String()
}
