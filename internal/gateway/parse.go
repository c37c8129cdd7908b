package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"jimbro/internal/engine"
)

// flexString accepts a JSON string or number ("reps": 12).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts 3, 3.0 or "3".
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("sets %v is not a whole number", v)
		}
		*f = flexInt(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("sets %q is not a number", v)
		}
		*f = flexInt(n)
	case nil:
		*f = 0
	default:
		return fmt.Errorf("sets has unexpected type %T", raw)
	}
	return nil
}

type wireExercise struct {
	ID              flexString `json:"id"`
	Name            string     `json:"name"`
	Reps            flexString `json:"reps"`
	Sets            flexInt    `json:"sets"`
	SuggestedWeight flexString `json:"suggestedWeight"`
	Tips            []string   `json:"tips"`
	ThumbnailURL    string     `json:"thumbnailUrl"`
	YoutubeURL      string     `json:"youtubeUrl"`
	Category        string     `json:"category"`
}

func (w wireExercise) toExercise() (engine.Exercise, error) {
	cat, ok := engine.ParseCategory(w.Category)
	if !ok {
		return engine.Exercise{}, fmt.Errorf("exercise %q: unknown category %q", w.Name, w.Category)
	}
	tips := make([]string, 0, len(w.Tips))
	for _, t := range w.Tips {
		if t = strings.TrimSpace(t); t != "" {
			tips = append(tips, t)
		}
	}
	return engine.Exercise{
		ID:              strings.TrimSpace(string(w.ID)),
		Name:            strings.TrimSpace(w.Name),
		Reps:            strings.TrimSpace(string(w.Reps)),
		Sets:            int(w.Sets),
		SuggestedWeight: strings.TrimSpace(string(w.SuggestedWeight)),
		Tips:            tips,
		ThumbnailURL:    strings.TrimSpace(w.ThumbnailURL),
		YoutubeURL:      strings.TrimSpace(w.YoutubeURL),
		Category:        cat,
	}, nil
}

// extractJSON strips markdown fences and any prose around the first JSON
// array or object in text.
func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = strings.TrimSpace(rest)
	}
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	closer := byte(']')
	if s[start] == '{' {
		closer = '}'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s[start:]
	}
	return s[start : end+1]
}

// decodeList reads either a bare array or an object wrapping one array
// under any key ({"exercises": [...]}).
func decodeList[T any](text string) ([]T, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, errors.New("empty response")
	}
	var list []T
	if raw[0] == '[' {
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil, err
	}
	for _, v := range wrapper {
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '[' {
			if err := json.Unmarshal(v, &list); err != nil {
				return nil, err
			}
			return list, nil
		}
	}
	return nil, errors.New("no array in response")
}

// ParseWorkout converts a generator reply into exercises. Missing or repeated
// ids are replaced with fresh ones; any other defect rejects the whole reply.
func ParseWorkout(text string, maxExercises int) ([]engine.Exercise, error) {
	wire, err := decodeList[wireExercise](text)
	if err != nil {
		return nil, engine.InvalidFormatError(fmt.Errorf("decode workout: %w", err))
	}
	out := make([]engine.Exercise, 0, len(wire))
	seen := map[string]bool{}
	for _, w := range wire {
		e, err := w.toExercise()
		if err != nil {
			return nil, engine.InvalidFormatError(err)
		}
		if e.ID == "" || seen[e.ID] {
			e.ID = uuid.NewString()
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	if err := engine.ValidateWorkout(out, maxExercises); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseExercise reads a single exercise, given as an object or a one-item array.
func ParseExercise(text string) (engine.Exercise, error) {
	raw := extractJSON(text)
	var w wireExercise
	if strings.HasPrefix(raw, "[") {
		var list []wireExercise
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return engine.Exercise{}, engine.InvalidFormatError(fmt.Errorf("decode exercise: %w", err))
		}
		if len(list) == 0 {
			return engine.Exercise{}, engine.InvalidFormatError(errors.New("no exercise in response"))
		}
		w = list[0]
	} else if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return engine.Exercise{}, engine.InvalidFormatError(fmt.Errorf("decode exercise: %w", err))
	}
	e, err := w.toExercise()
	if err != nil {
		return engine.Exercise{}, engine.InvalidFormatError(err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := engine.ValidateExercise(e); err != nil {
		return engine.Exercise{}, engine.InvalidFormatError(err)
	}
	return e, nil
}

// ParseEquipment reads a list of equipment names, deduplicated case-insensitively.
func ParseEquipment(text string) ([]string, error) {
	names, err := decodeList[string](text)
	if err != nil {
		return nil, engine.InvalidFormatError(fmt.Errorf("decode equipment: %w", err))
	}
	out := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		k := strings.ToLower(n)
		if n == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	return out, nil
}
