package engine

import (
	"context"
	"errors"
	"testing"
)

func TestStartsAtOnboardingWithoutProfile(t *testing.T) {
	w := newTestService(&fakeGen{}, &memProfiles{}, nil).StartWizard(context.Background())
	if w.Screen() != ScreenOnboarding {
		t.Fatalf("screen=%v, want onboarding", w.Screen())
	}
	if w.Draft() == nil {
		t.Fatalf("expected onboarding draft")
	}
	if _, ok := w.Blueprint(); ok {
		t.Fatalf("expected no blueprint")
	}
}

func TestStartsAtOnboardingWhenLoadFails(t *testing.T) {
	w := newTestService(&fakeGen{}, &memProfiles{loadErr: errors.New("locked")}, nil).StartWizard(context.Background())
	if w.Screen() != ScreenOnboarding {
		t.Fatalf("screen=%v, want onboarding", w.Screen())
	}
}

// Onboarding persists the blueprint; a fresh wizard over the same store
// resumes at VibeCheck with an equal blueprint.
func TestRestartResumesAtVibeCheck(t *testing.T) {
	ctx := context.Background()
	profiles := &memProfiles{}
	svc := newTestService(&fakeGen{}, profiles, nil)

	w := svc.StartWizard(ctx)
	bp := testBlueprint()
	bp.Injuries = []string{"Knee", "Lower Back"}
	if err := w.CompleteOnboarding(ctx, bp); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if w.Screen() != ScreenVibeCheck {
		t.Fatalf("screen=%v, want vibe-check", w.Screen())
	}
	if profiles.saves != 1 {
		t.Fatalf("saves=%d, want 1", profiles.saves)
	}

	restarted := svc.StartWizard(ctx)
	if restarted.Screen() != ScreenVibeCheck {
		t.Fatalf("restart screen=%v, want vibe-check", restarted.Screen())
	}
	got, ok := restarted.Blueprint()
	if !ok || !got.Equal(bp) {
		t.Fatalf("blueprint=%+v, want %+v", got, bp)
	}
}

func TestSaveFailureDoesNotBlockOnboarding(t *testing.T) {
	ctx := context.Background()
	w := newTestService(&fakeGen{}, &memProfiles{saveErr: errors.New("read-only")}, nil).StartWizard(ctx)
	if err := w.CompleteOnboarding(ctx, testBlueprint()); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if w.Screen() != ScreenVibeCheck {
		t.Fatalf("screen=%v, want vibe-check", w.Screen())
	}
}

func TestCompleteOnboardingRejectsInvalidBlueprint(t *testing.T) {
	ctx := context.Background()
	profiles := &memProfiles{}
	w := newTestService(&fakeGen{}, profiles, nil).StartWizard(ctx)
	bp := testBlueprint()
	bp.Availability.MinsPerSession = 200
	err := w.CompleteOnboarding(ctx, bp)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if w.Screen() != ScreenOnboarding || profiles.saves != 0 {
		t.Fatalf("invalid blueprint must not transition or persist")
	}
}

func TestSubmitDraft(t *testing.T) {
	ctx := context.Background()
	profiles := &memProfiles{}
	w := newTestService(&fakeGen{}, profiles, nil).StartWizard(ctx)
	d := w.Draft()
	if err := d.SetAge("41"); err != nil {
		t.Fatalf("SetAge: %v", err)
	}
	d.AdjustMaxExercises(2)
	if err := w.SubmitDraft(ctx); err != nil {
		t.Fatalf("SubmitDraft: %v", err)
	}
	if profiles.bp == nil || profiles.bp.Age != 41 || profiles.bp.MaxExercises != 8 {
		t.Fatalf("stored=%+v, want age 41 and 8 exercises", profiles.bp)
	}
	if w.Draft() != nil {
		t.Fatalf("draft should be dropped after onboarding")
	}
}

func TestForwardAndBackTransitions(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{})

	if got := w.Selection().Equipment; len(got) != 1 || got[0] != DefaultEquipment {
		t.Fatalf("equipment=%v, want default [%s]", got, DefaultEquipment)
	}
	if w.Quote() != InfoForVibe(VibeStrong).Quote {
		t.Fatalf("quote=%q", w.Quote())
	}

	if err := w.Back(); err != nil {
		t.Fatalf("Back from equipment: %v", err)
	}
	if w.Screen() != ScreenBodyFocus {
		t.Fatalf("screen=%v, want body-focus", w.Screen())
	}
	if err := w.Back(); err != nil {
		t.Fatalf("Back from focus: %v", err)
	}
	if w.Screen() != ScreenVibeCheck {
		t.Fatalf("screen=%v, want vibe-check", w.Screen())
	}
	var te TransitionError
	if err := w.Back(); !errors.As(err, &te) {
		t.Fatalf("Back from vibe-check err=%v, want TransitionError", err)
	}
	if err := w.SelectFocus(FocusCore); !errors.As(err, &te) {
		t.Fatalf("SelectFocus from vibe-check err=%v, want TransitionError", err)
	}
}

func TestSelectRejectsUnknownValues(t *testing.T) {
	bp := testBlueprint()
	w := newTestService(&fakeGen{}, &memProfiles{bp: &bp}, nil).StartWizard(context.Background())
	var ve ValidationError
	if err := w.SelectVibe("SLEEPY"); !errors.As(err, &ve) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if w.Screen() != ScreenVibeCheck {
		t.Fatalf("screen=%v, want vibe-check", w.Screen())
	}
}

// An empty equipment list is rejected for every vibe and focus.
func TestCompleteEquipmentRejectsEmpty(t *testing.T) {
	for _, v := range Vibes {
		for _, f := range Focuses {
			bp := testBlueprint()
			gen := &fakeGen{exercises: coreWorkout()}
			w := newTestService(gen, &memProfiles{bp: &bp}, nil).StartWizard(context.Background())
			if err := w.SelectVibe(v); err != nil {
				t.Fatalf("SelectVibe: %v", err)
			}
			if err := w.SelectFocus(f); err != nil {
				t.Fatalf("SelectFocus: %v", err)
			}
			for _, in := range [][]string{nil, {}, {"  "}} {
				err := w.CompleteEquipment(context.Background(), in)
				var ve ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("%s/%s: err=%v, want ValidationError", v, f, err)
				}
				if w.Screen() != ScreenEquipment || w.Busy() {
					t.Fatalf("%s/%s: screen=%v busy=%v, want equipment idle", v, f, w.Screen(), w.Busy())
				}
			}
			if gen.calls != 0 {
				t.Fatalf("generator called %d times, want 0", gen.calls)
			}
		}
	}
}

func TestGenerationPreservesOrderAndCount(t *testing.T) {
	for n := 1; n <= 6; n++ {
		exs := coreWorkout()[:n]
		w, _ := wizardAtEquipment(t, &fakeGen{exercises: exs})
		if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
			t.Fatalf("n=%d CompleteEquipment: %v", n, err)
		}
		got := w.Player().Exercises()
		if len(got) != n {
			t.Fatalf("n=%d got %d exercises", n, len(got))
		}
		for i := range got {
			if got[i].ID != exs[i].ID {
				t.Fatalf("n=%d position %d id=%s, want %s", n, i, got[i].ID, exs[i].ID)
			}
		}
	}
}

func TestGenerationFailureKeepsSelection(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGen
		kind GenerationErrorKind
	}{
		{"upstream", &fakeGen{err: UpstreamError(errors.New("503"))}, Upstream},
		{"unclassified", &fakeGen{err: errors.New("dial tcp")}, Upstream},
		{"empty", &fakeGen{exercises: []Exercise{}}, InvalidFormat},
		{"too many", &fakeGen{exercises: append(coreWorkout(), ex("x", CategoryMain))}, InvalidFormat},
		{"bad category", &fakeGen{exercises: []Exercise{ex("a", "Stretch")}}, InvalidFormat},
		{"duplicate id", &fakeGen{exercises: []Exercise{ex("a", CategoryMain), ex("a", CategoryMain)}}, InvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := wizardAtEquipment(t, tc.gen)
			if err := w.ToggleEquipment("dumbbells"); err != nil {
				t.Fatalf("ToggleEquipment: %v", err)
			}
			before := w.Selection()

			err := w.CompleteEquipment(context.Background(), before.Equipment)
			if GenerationKind(err) != tc.kind {
				t.Fatalf("err=%v, want kind %v", err, tc.kind)
			}
			if w.Screen() != ScreenEquipment {
				t.Fatalf("screen=%v, want equipment", w.Screen())
			}
			if !sameSelection(before, w.Selection()) {
				t.Fatalf("selection changed: %+v -> %+v", before, w.Selection())
			}
			if w.Notice() != NoticeGenerationFailed {
				t.Fatalf("notice=%q", w.Notice())
			}
			if w.Player() != nil {
				t.Fatalf("no partial workout may be exposed")
			}
			if tc.gen.calls != 1 {
				t.Fatalf("calls=%d, want exactly 1 (no automatic retry)", tc.gen.calls)
			}
		})
	}
}

func TestCoreStrongScenario(t *testing.T) {
	gen := &fakeGen{exercises: coreWorkout()}
	w, _ := wizardAtEquipment(t, gen)

	if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
		t.Fatalf("CompleteEquipment: %v", err)
	}
	if w.Screen() != ScreenWorkout {
		t.Fatalf("screen=%v, want workout", w.Screen())
	}
	if gen.lastReq.Vibe != VibeStrong || gen.lastReq.Focus != FocusCore || gen.lastReq.Blueprint.MaxExercises != 6 {
		t.Fatalf("request=%+v", gen.lastReq)
	}
	want := []Category{CategoryWarmup, CategoryMain, CategoryMain, CategoryMain, CategoryMain, CategoryCooldown}
	got := w.Player().Exercises()
	if len(got) != len(want) {
		t.Fatalf("got %d exercises, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Category != want[i] {
			t.Fatalf("position %d category=%s, want %s", i, got[i].Category, want[i])
		}
	}
	if w.Player().CompletedCount() != 0 || w.Player().IsSessionComplete() {
		t.Fatalf("fresh session must have nothing completed")
	}
}

func TestBusyWhileGenerating(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{exercises: coreWorkout()})
	job, err := w.BeginGeneration(context.Background(), []string{"bodyweight"})
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if w.Screen() != ScreenGenerating || !w.Busy() {
		t.Fatalf("screen=%v busy=%v, want generating", w.Screen(), w.Busy())
	}
	if _, err := w.BeginGeneration(context.Background(), []string{"bodyweight"}); !errors.Is(err, ErrBusy) {
		t.Fatalf("second BeginGeneration err=%v, want ErrBusy", err)
	}
	if _, err := w.BeginScan(context.Background(), []byte{1}, ""); !errors.Is(err, ErrBusy) {
		t.Fatalf("BeginScan err=%v, want ErrBusy", err)
	}
	if err := w.Back(); !errors.Is(err, ErrBusy) {
		t.Fatalf("Back err=%v, want ErrBusy", err)
	}
	if err := w.Resolve(job.Run()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.Screen() != ScreenWorkout {
		t.Fatalf("screen=%v, want workout", w.Screen())
	}
}

func TestCancelDiscardsLateResult(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{exercises: coreWorkout()})
	job, err := w.BeginGeneration(context.Background(), []string{"bodyweight"})
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if err := w.CancelPending(); err != nil {
		t.Fatalf("CancelPending: %v", err)
	}
	if w.Screen() != ScreenEquipment || w.Busy() {
		t.Fatalf("screen=%v busy=%v, want equipment idle", w.Screen(), w.Busy())
	}
	if job.ctx.Err() == nil {
		t.Fatalf("job context should be cancelled")
	}

	late := Outcome{Ticket: job.Ticket, Kind: JobGenerate, Exercises: coreWorkout()}
	if err := w.Resolve(late); !errors.Is(err, ErrStaleResult) {
		t.Fatalf("late Resolve err=%v, want ErrStaleResult", err)
	}
	if w.Screen() != ScreenEquipment || w.Player() != nil {
		t.Fatalf("late result must not change state")
	}

	// A new request gets a new ticket; the old outcome still cannot land.
	job2, err := w.BeginGeneration(context.Background(), []string{"bodyweight"})
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if err := w.Resolve(late); !errors.Is(err, ErrStaleResult) {
		t.Fatalf("superseded Resolve err=%v, want ErrStaleResult", err)
	}
	if err := w.Resolve(job2.Run()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

func TestCancelWithoutPending(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{})
	var te TransitionError
	if err := w.CancelPending(); !errors.As(err, &te) {
		t.Fatalf("err=%v, want TransitionError", err)
	}
}

func TestEquipmentEditing(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{})
	if err := w.ToggleEquipment("bodyweight"); err != nil {
		t.Fatalf("ToggleEquipment: %v", err)
	}
	if len(w.Selection().Equipment) != 0 {
		t.Fatalf("equipment=%v, want empty", w.Selection().Equipment)
	}
	if err := w.AddCustomEquipment("  Yoga Mat "); err != nil {
		t.Fatalf("AddCustomEquipment: %v", err)
	}
	if err := w.AddCustomEquipment("yoga mat"); err != nil {
		t.Fatalf("AddCustomEquipment dup: %v", err)
	}
	if got := w.Selection().Equipment; len(got) != 1 || got[0] != "Yoga Mat" {
		t.Fatalf("equipment=%v, want [Yoga Mat]", got)
	}
	var ve ValidationError
	if err := w.AddCustomEquipment(" "); !errors.As(err, &ve) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}

func TestScanMergesEquipment(t *testing.T) {
	gen := &fakeGen{scan: []string{"Chair", "bodyweight", "Stairs", "stairs"}}
	w, _ := wizardAtEquipment(t, gen)
	if err := w.ToggleEquipment("chair"); err != nil {
		t.Fatalf("ToggleEquipment: %v", err)
	}
	if err := w.ScanRoom(context.Background(), []byte{0xff, 0xd8}, ""); err != nil {
		t.Fatalf("ScanRoom: %v", err)
	}
	got := w.Selection().Equipment
	want := []string{"bodyweight", "chair", "Stairs"}
	if len(got) != len(want) {
		t.Fatalf("equipment=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equipment=%v, want %v", got, want)
		}
	}
	if w.Screen() != ScreenEquipment {
		t.Fatalf("screen=%v, want equipment", w.Screen())
	}
}

func TestScanFailureKeepsSelection(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{scanErr: errors.New("timeout")})
	before := w.Selection()
	err := w.ScanRoom(context.Background(), []byte{1}, "image/png")
	if GenerationKind(err) != Upstream {
		t.Fatalf("err=%v, want upstream", err)
	}
	if !sameSelection(before, w.Selection()) || w.Notice() != NoticeScanFailed {
		t.Fatalf("selection=%+v notice=%q", w.Selection(), w.Notice())
	}
}

func TestSwapReplacesInPlace(t *testing.T) {
	gen := &swapGen{fakeGen: fakeGen{exercises: coreWorkout()}}
	gen.rep = Exercise{Name: "Dead Bug", Reps: "10", Sets: 3, Category: CategoryMain}
	w, _ := wizardAtEquipment(t, gen)
	if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
		t.Fatalf("CompleteEquipment: %v", err)
	}
	w.Player().ToggleComplete("m2")

	if err := w.SwapExercise(context.Background(), "m2"); err != nil {
		t.Fatalf("SwapExercise: %v", err)
	}
	got := w.Player().Exercises()
	if got[2].ID != "m2" || got[2].Name != "Dead Bug" || got[2].Alternate {
		t.Fatalf("position 2=%+v, want Dead Bug with id m2", got[2])
	}
	if w.Player().IsCompleted("m2") {
		t.Fatalf("swapped exercise should start uncompleted")
	}
	if gen.lastSwp.Current.ID != "m2" || len(gen.lastSwp.Keep) != 6 {
		t.Fatalf("swap request=%+v", gen.lastSwp)
	}
}

func TestSwapFallsBackToAlternate(t *testing.T) {
	cases := []struct {
		name string
		gen  Generator
	}{
		{"no swapper", &fakeGen{exercises: coreWorkout()}},
		{"swap error", &swapGen{fakeGen: fakeGen{exercises: coreWorkout()}, swapErr: errors.New("quota")}},
		{"wrong category", &swapGen{fakeGen: fakeGen{exercises: coreWorkout()}, rep: Exercise{Name: "Jog", Sets: 1, Category: CategoryWarmup}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := wizardAtEquipment(t, tc.gen)
			if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
				t.Fatalf("CompleteEquipment: %v", err)
			}
			w.Player().ToggleComplete("m1")
			if err := w.SwapExercise(context.Background(), "m1"); err == nil {
				t.Fatalf("expected swap error")
			}
			e, _ := w.Player().Exercise("m1")
			if !e.Alternate || e.Name != "Move m1" {
				t.Fatalf("exercise=%+v, want original marked alternate", e)
			}
			if !w.Player().IsCompleted("m1") {
				t.Fatalf("fallback must keep completion")
			}
			if w.Screen() != ScreenWorkout || w.Notice() != NoticeSwapFallback {
				t.Fatalf("screen=%v notice=%q", w.Screen(), w.Notice())
			}
		})
	}
}

func TestSwapUnknownID(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{exercises: coreWorkout()})
	if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
		t.Fatalf("CompleteEquipment: %v", err)
	}
	var ve ValidationError
	if _, err := w.BeginSwap(context.Background(), "nope"); !errors.As(err, &ve) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if w.Screen() != ScreenWorkout {
		t.Fatalf("screen=%v, want workout", w.Screen())
	}
}

func TestFinishSessionResetsAndLogs(t *testing.T) {
	w, sessions := wizardAtEquipment(t, &fakeGen{exercises: coreWorkout()})
	if err := w.CompleteEquipment(context.Background(), []string{"bodyweight", "Chair"}); err != nil {
		t.Fatalf("CompleteEquipment: %v", err)
	}
	w.Player().ToggleComplete("w1")
	w.Player().ToggleComplete("c1")

	rec, err := w.FinishSession(context.Background())
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if w.Screen() != ScreenVibeCheck {
		t.Fatalf("screen=%v, want vibe-check", w.Screen())
	}
	sel := w.Selection()
	if sel.Vibe != "" || sel.Focus != "" || len(sel.Equipment) != 0 || w.Player() != nil {
		t.Fatalf("selection not cleared: %+v", sel)
	}
	if _, ok := w.Blueprint(); !ok {
		t.Fatalf("blueprint must survive finishing")
	}
	if len(sessions.recs) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(sessions.recs))
	}
	if rec.Vibe != VibeStrong || rec.Focus != FocusCore || len(rec.CompletedIDs) != 2 || rec.Completed() {
		t.Fatalf("record=%+v", rec)
	}
	if w.Notice() != NoticeSessionLogged {
		t.Fatalf("notice=%q", w.Notice())
	}
}

func TestFinishSessionIgnoresLogFailure(t *testing.T) {
	bp := testBlueprint()
	sessions := &memSessions{err: errors.New("disk full")}
	w := newTestService(&fakeGen{exercises: coreWorkout()}, &memProfiles{bp: &bp}, sessions).StartWizard(context.Background())
	_ = w.SelectVibe(VibeLow)
	_ = w.SelectFocus(FocusFullBody)
	if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
		t.Fatalf("CompleteEquipment: %v", err)
	}
	if _, err := w.FinishSession(context.Background()); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if w.Screen() != ScreenVibeCheck {
		t.Fatalf("screen=%v, want vibe-check", w.Screen())
	}
}

func TestWorkoutHasNoBack(t *testing.T) {
	w, _ := wizardAtEquipment(t, &fakeGen{exercises: coreWorkout()})
	if err := w.CompleteEquipment(context.Background(), []string{"bodyweight"}); err != nil {
		t.Fatalf("CompleteEquipment: %v", err)
	}
	var te TransitionError
	if err := w.Back(); !errors.As(err, &te) {
		t.Fatalf("err=%v, want TransitionError", err)
	}
}
