package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jimbro/internal/config"
	"jimbro/internal/engine"
)

// ErrNoAPIKey is reported through every call of a provider built without a key.
var ErrNoAPIKey = errors.New("no API key configured (set GEMINI_API_KEY or ai.api_key)")

// New builds the generator selected by cfg. A missing Gemini key does not
// fail startup; the returned generator reports an upstream error instead.
func New(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (engine.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			return unavailable{reason: ErrNoAPIKey}, nil
		}
		return NewGemini(ctx, cfg.APIKey, cfg.Model, log)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout.Std(), log), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

type unavailable struct {
	reason error
}

func (u unavailable) GenerateWorkout(context.Context, engine.WorkoutRequest) ([]engine.Exercise, error) {
	return nil, engine.UpstreamError(u.reason)
}

func (u unavailable) ScanEquipment(context.Context, []byte, string) ([]string, error) {
	return nil, engine.UpstreamError(u.reason)
}

func (u unavailable) SwapExercise(context.Context, engine.SwapRequest) (engine.Exercise, error) {
	return engine.Exercise{}, engine.UpstreamError(u.reason)
}
