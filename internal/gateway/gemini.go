package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"jimbro/internal/engine"
)

// Gemini generates sessions with Google's Gemini API using a typed response schema.
type Gemini struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, log *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

func exerciseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":              str("unique id within the session"),
			"name":            str("exercise name"),
			"reps":            str("repetitions or duration, e.g. 12 or 30s"),
			"sets":            {Type: genai.TypeInteger},
			"suggestedWeight": str("suggested load, empty for bodyweight"),
			"tips":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"thumbnailUrl":    str("image representing the exercise"),
			"youtubeUrl":      str("form tutorial video"),
			"category": {
				Type: genai.TypeString,
				Enum: []string{
					string(engine.CategoryWarmup),
					string(engine.CategoryMain),
					string(engine.CategoryCooldown),
				},
			},
		},
		Required: []string{"id", "name", "reps", "sets", "tips", "thumbnailUrl", "youtubeUrl", "category"},
		PropertyOrdering: []string{
			"id", "name", "reps", "sets", "suggestedWeight", "tips", "thumbnailUrl", "youtubeUrl", "category",
		},
	}
}

func workoutSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: exerciseSchema()}
}

func equipmentSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", engine.UpstreamError(fmt.Errorf("gemini %s: %w", g.model, err))
	}
	text := resp.Text()
	if text == "" {
		return "", engine.InvalidFormatError(errors.New("gemini returned no text"))
	}
	return text, nil
}

func (g *Gemini) GenerateWorkout(ctx context.Context, req engine.WorkoutRequest) ([]engine.Exercise, error) {
	text, err := g.generate(ctx, genai.Text(WorkoutPrompt(req)), workoutSchema())
	if err != nil {
		return nil, err
	}
	exs, err := ParseWorkout(text, req.Blueprint.MaxExercises)
	if err != nil {
		g.log.Warn("gemini workout rejected", "model", g.model, "error", err)
		return nil, err
	}
	return exs, nil
}

func (g *Gemini) ScanEquipment(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(scanPrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	text, err := g.generate(ctx, contents, equipmentSchema())
	if err != nil {
		return nil, err
	}
	return ParseEquipment(text)
}

func (g *Gemini) SwapExercise(ctx context.Context, req engine.SwapRequest) (engine.Exercise, error) {
	text, err := g.generate(ctx, genai.Text(SwapPrompt(req)), exerciseSchema())
	if err != nil {
		return engine.Exercise{}, err
	}
	return ParseExercise(text)
}
