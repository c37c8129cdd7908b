package engine

import (
	"context"
	"time"
)

// WorkoutRequest is everything a generator needs to build a session.
type WorkoutRequest struct {
	Blueprint Blueprint
	Vibe      Vibe
	Focus     BodyFocus
	Equipment []string
}

// SwapRequest asks for a single replacement of Current, same category.
type SwapRequest struct {
	WorkoutRequest
	Current Exercise
	// Keep lists the names already in the session so the replacement differs.
	Keep []string
}

// Generator is the boundary to the external content-generation capability.
// Implementations must honour ctx cancellation and must not retry.
type Generator interface {
	GenerateWorkout(ctx context.Context, req WorkoutRequest) ([]Exercise, error)
	ScanEquipment(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// Swapper is implemented by generators that can regenerate one exercise.
type Swapper interface {
	SwapExercise(ctx context.Context, req SwapRequest) (Exercise, error)
}

// ProfileStore persists the single user blueprint. Load returns (nil, nil)
// when nothing is stored.
type ProfileStore interface {
	LoadBlueprint(ctx context.Context) (*Blueprint, error)
	SaveBlueprint(ctx context.Context, bp Blueprint) error
}

// SessionRecord is a finished workout as written to the history log.
type SessionRecord struct {
	ID           string
	FinishedAt   time.Time
	Vibe         Vibe
	Focus        BodyFocus
	Equipment    []string
	Exercises    []Exercise
	CompletedIDs []string
}

// Completed reports whether every exercise of the record was ticked off.
func (r SessionRecord) Completed() bool {
	return len(r.Exercises) > 0 && len(r.CompletedIDs) == len(r.Exercises)
}

type SessionLog interface {
	RecordSession(ctx context.Context, rec SessionRecord) error
}
