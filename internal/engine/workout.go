package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Exercise is one prescribed movement of a generated workout.
type Exercise struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Reps            string   `json:"reps"`
	Sets            int      `json:"sets"`
	SuggestedWeight string   `json:"suggestedWeight,omitempty"`
	Tips            []string `json:"tips"`
	ThumbnailURL    string   `json:"thumbnailUrl"`
	YoutubeURL      string   `json:"youtubeUrl"`
	Category        Category `json:"category"`
	// Alternate is set when a swap could not fetch a replacement.
	Alternate bool `json:"alternate,omitempty"`
}

func (e Exercise) clone() Exercise {
	out := e
	out.Tips = append([]string(nil), e.Tips...)
	return out
}

func cloneExercises(in []Exercise) []Exercise {
	if in == nil {
		return nil
	}
	out := make([]Exercise, len(in))
	for i := range in {
		out[i] = in[i].clone()
	}
	return out
}

// ValidateExercise checks the shape of a single exercise.
func ValidateExercise(e Exercise) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("exercise id is empty")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("exercise %s: name is empty", e.ID)
	}
	if e.Sets < 1 {
		return fmt.Errorf("exercise %s: sets=%d, want >= 1", e.ID, e.Sets)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("exercise %s: unknown category %q", e.ID, e.Category)
	}
	return nil
}

// ValidateWorkout checks a generated list. Any failure invalidates the whole
// list and is reported as InvalidFormat.
func ValidateWorkout(exs []Exercise, maxExercises int) error {
	if len(exs) == 0 {
		return InvalidFormatError(errors.New("workout is empty"))
	}
	if maxExercises > 0 && len(exs) > maxExercises {
		return InvalidFormatError(fmt.Errorf("workout has %d exercises, max %d", len(exs), maxExercises))
	}
	ids := make(map[string]bool, len(exs))
	for _, e := range exs {
		if err := ValidateExercise(e); err != nil {
			return InvalidFormatError(err)
		}
		if ids[e.ID] {
			return InvalidFormatError(fmt.Errorf("duplicate exercise id %q", e.ID))
		}
		ids[e.ID] = true
	}
	return nil
}

// QualityWarnings reports structure the generator was asked for but did not
// deliver. These are informational only.
func QualityWarnings(exs []Exercise) []string {
	if len(exs) == 0 {
		return nil
	}
	var out []string
	if exs[0].Category != CategoryWarmup {
		out = append(out, "workout does not start with a warm-up")
	}
	if exs[len(exs)-1].Category != CategoryCooldown {
		out = append(out, "workout does not end with a cool-down")
	}
	last := CategoryWarmup
	for _, e := range exs {
		if categoryRank(e.Category) < categoryRank(last) {
			out = append(out, "categories are out of order")
			break
		}
		last = e.Category
	}
	return out
}

func categoryRank(c Category) int {
	switch c {
	case CategoryWarmup:
		return 0
	case CategoryMain:
		return 1
	default:
		return 2
	}
}
