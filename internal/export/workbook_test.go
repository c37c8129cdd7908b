package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"jimbro/internal/storage"
)

func sampleHistory() []storage.SessionDetail {
	at := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
	return []storage.SessionDetail{
		{
			Session: storage.Session{
				ID: "s2", FinishedAt: at, Vibe: "STRONG", Focus: "Core",
				Equipment: []string{"Bodyweight", "Chair"}, ExerciseCount: 2, CompletedCount: 2,
			},
			Exercises: []storage.SessionExercise{
				{SessionID: "s2", Position: 0, Name: "Jumping Jacks", Category: "Warm-up", Sets: 1, Reps: "60s", Completed: true},
				{SessionID: "s2", Position: 1, Name: "Plank", Category: "Main", Sets: 3, Reps: "45s", Completed: true, Alternate: true},
			},
		},
		{
			Session: storage.Session{
				ID: "s1", FinishedAt: at.Add(-48 * time.Hour), Vibe: "LOW", Focus: "Full Body",
				Equipment: []string{"Bodyweight"}, ExerciseCount: 1, CompletedCount: 0,
			},
			Exercises: []storage.SessionExercise{
				{SessionID: "s1", Position: 0, Name: "Walk", Category: "Main", Sets: 1, Reps: "10m"},
			},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	if err := Write(path, sampleHistory()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	sessions, err := f.GetRows(SheetSessions)
	if err != nil {
		t.Fatalf("GetRows sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("session rows = %d, want 3 (header + 2)", len(sessions))
	}
	if sessions[0][0] != "Finished" {
		t.Errorf("header = %q", sessions[0])
	}
	if sessions[1][3] != "Bodyweight, Chair" || sessions[1][6] != "complete" || sessions[1][7] != "s2" {
		t.Errorf("first session row = %q", sessions[1])
	}
	if sessions[2][6] != "partial" {
		t.Errorf("second session status = %q, want partial", sessions[2][6])
	}

	exercises, err := f.GetRows(SheetExercises)
	if err != nil {
		t.Fatalf("GetRows exercises: %v", err)
	}
	if len(exercises) != 4 {
		t.Fatalf("exercise rows = %d, want 4 (header + 3)", len(exercises))
	}
	if exercises[2][2] != "Plank" || exercises[2][7] != "yes" || exercises[2][8] != "yes" {
		t.Errorf("plank row = %q", exercises[2])
	}
	if exercises[3][1] != "1" || exercises[3][7] != "no" || exercises[3][9] != "s1" {
		t.Errorf("walk row = %q", exercises[3])
	}
}

func TestWriteEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetSessions)
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows = %v, %v; want header only", rows, err)
	}
}
