package storage

import "time"

// Session is one row of the workout history.
type Session struct {
	ID             string
	FinishedAt     time.Time
	Vibe           string
	Focus          string
	Equipment      []string
	ExerciseCount  int
	CompletedCount int
}

func (s Session) Completed() bool {
	return s.ExerciseCount > 0 && s.CompletedCount == s.ExerciseCount
}

type SessionExercise struct {
	SessionID       string
	Position        int
	ExerciseID      string
	Name            string
	Category        string
	Sets            int
	Reps            string
	SuggestedWeight string
	Completed       bool
	Alternate       bool
}

// SessionDetail is a session with its exercises in execution order.
type SessionDetail struct {
	Session
	Exercises []SessionExercise
}
