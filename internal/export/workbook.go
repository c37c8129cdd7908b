// Package export writes the workout history to an .xlsx workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"jimbro/internal/storage"
)

const (
	SheetSessions  = "Sessions"
	SheetExercises = "Exercises"
)

var sessionHeaders = []string{"Finished", "Vibe", "Focus", "Equipment", "Exercises", "Completed", "Status", "Session ID"}

var exerciseHeaders = []string{"Finished", "#", "Exercise", "Category", "Sets", "Reps", "Weight", "Done", "Alternate", "Session ID"}

type styles struct {
	header int
	date   int
	done   int
	open   int
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "#D9D9D9", Style: 1},
		{Type: "right", Color: "#D9D9D9", Style: 1},
		{Type: "bottom", Color: "#D9D9D9", Style: 1},
	}
	s := &styles{}
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	s.date, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		CustomNumFmt: strPtr("yyyy-mm-dd hh:mm"),
		Border:       border,
	})
	if err != nil {
		return nil, err
	}
	s.done, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "#006100"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	s.open, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "#9C5700"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFEB9C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func strPtr(s string) *string { return &s }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeHeader(f *excelize.File, sheet string, headers []string, st *styles) error {
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, last, st.header); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// Write saves sessions (newest first, as returned by the repository) to path.
func Write(path string, sessions []storage.SessionDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSessions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetExercises); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}
	if err := writeHeader(f, SheetSessions, sessionHeaders, st); err != nil {
		return err
	}
	if err := writeHeader(f, SheetExercises, exerciseHeaders, st); err != nil {
		return err
	}

	exRow := 2
	for i, s := range sessions {
		row := i + 2
		status, statusStyle := "partial", st.open
		if s.Completed() {
			status, statusStyle = "complete", st.done
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []any{
			s.FinishedAt.Local(), s.Vibe, s.Focus, strings.Join(s.Equipment, ", "),
			s.ExerciseCount, s.CompletedCount, status, s.ID,
		}
		if err := f.SetSheetRow(SheetSessions, cell, &values); err != nil {
			return fmt.Errorf("session row %d: %w", row, err)
		}
		_ = f.SetCellStyle(SheetSessions, cell, cell, st.date)
		statusCell, _ := excelize.CoordinatesToCellName(7, row)
		_ = f.SetCellStyle(SheetSessions, statusCell, statusCell, statusStyle)

		for _, e := range s.Exercises {
			cell, _ := excelize.CoordinatesToCellName(1, exRow)
			values := []any{
				s.FinishedAt.Local(), e.Position + 1, e.Name, e.Category, e.Sets, e.Reps,
				e.SuggestedWeight, yesNo(e.Completed), yesNo(e.Alternate), s.ID,
			}
			if err := f.SetSheetRow(SheetExercises, cell, &values); err != nil {
				return fmt.Errorf("exercise row %d: %w", exRow, err)
			}
			_ = f.SetCellStyle(SheetExercises, cell, cell, st.date)
			doneCell, _ := excelize.CoordinatesToCellName(8, exRow)
			doneStyle := st.open
			if e.Completed {
				doneStyle = st.done
			}
			_ = f.SetCellStyle(SheetExercises, doneCell, doneCell, doneStyle)
			exRow++
		}
	}

	for sheet, widths := range map[string]map[string]float64{
		SheetSessions:  {"A": 18, "B": 10, "C": 12, "D": 36, "E": 10, "F": 10, "G": 10, "H": 38},
		SheetExercises: {"A": 18, "B": 5, "C": 28, "D": 11, "E": 6, "F": 8, "G": 12, "H": 7, "I": 10, "J": 38},
	} {
		for col, w := range widths {
			if err := f.SetColWidth(sheet, col, col, w); err != nil {
				return fmt.Errorf("column width %s!%s: %w", sheet, col, err)
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
