package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	NoticeGenerationFailed = "Something went wrong generating your workout. Let's try again."
	NoticeScanFailed       = "Couldn't scan the room. Pick your gear manually."
	NoticeSwapFallback     = "No fresh alternative right now. Marked it as an alternate."
	NoticeCancelled        = "Cancelled."
	NoticeSessionLogged    = "Incredible work! Session logged."
)

var errSwapUnsupported = errors.New("generator cannot swap exercises")

type JobKind int

const (
	JobGenerate JobKind = iota + 1
	JobScan
	JobSwap
)

func (k JobKind) String() string {
	switch k {
	case JobGenerate:
		return "generate"
	case JobScan:
		return "scan"
	case JobSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Job is a gateway request started by the wizard. Run performs the call and
// touches no wizard state, so it may execute on any goroutine. Its Outcome
// must be handed back to Wizard.Resolve.
type Job struct {
	Ticket uint64
	Kind   JobKind
	ctx    context.Context
	run    func(ctx context.Context) Outcome
}

func (j Job) Run() Outcome {
	var o Outcome
	if j.run == nil {
		o.Err = errors.New("empty job")
	} else {
		o = j.run(j.ctx)
	}
	o.Ticket = j.Ticket
	o.Kind = j.Kind
	return o
}

type Outcome struct {
	Ticket      uint64
	Kind        JobKind
	Exercises   []Exercise
	Equipment   []string
	Replacement *Exercise
	Err         error
}

type pending struct {
	ticket   uint64
	kind     JobKind
	returnTo Screen
	cancel   context.CancelFunc
	swapID   string
}

// Selection is the per-session choice of vibe, focus and equipment.
type Selection struct {
	Vibe      Vibe
	Focus     BodyFocus
	Equipment []string
}

// Wizard is the screen state machine. It is owned by a single goroutine; only
// Job.Run may run elsewhere.
type Wizard struct {
	svc *Service

	screen    Screen
	draft     *BlueprintDraft
	blueprint *Blueprint

	vibe      Vibe
	quote     string
	focus     BodyFocus
	equipment []string

	player  *Player
	pending *pending
	ticket  uint64
	notice  string
}

func (w *Wizard) Screen() Screen { return w.screen }
func (w *Wizard) Notice() string { return w.notice }
func (w *Wizard) Quote() string  { return w.quote }
func (w *Wizard) Busy() bool     { return w.pending != nil }

// Draft is the onboarding form; nil outside Onboarding.
func (w *Wizard) Draft() *BlueprintDraft { return w.draft }

// Player is the active session; nil outside Workout and Swapping.
func (w *Wizard) Player() *Player { return w.player }

func (w *Wizard) Blueprint() (Blueprint, bool) {
	if w.blueprint == nil {
		return Blueprint{}, false
	}
	return w.blueprint.Clone(), true
}

func (w *Wizard) Selection() Selection {
	return Selection{
		Vibe:      w.vibe,
		Focus:     w.focus,
		Equipment: append([]string(nil), w.equipment...),
	}
}

func (w *Wizard) HasEquipment(id string) bool {
	for _, e := range w.equipment {
		if strings.EqualFold(e, id) {
			return true
		}
	}
	return false
}

// ClearNotice dismisses the current notice.
func (w *Wizard) ClearNotice() { w.notice = "" }

func (w *Wizard) guard(action string, screens ...Screen) error {
	if w.pending != nil {
		return ErrBusy
	}
	for _, s := range screens {
		if w.screen == s {
			return nil
		}
	}
	return TransitionError{From: w.screen, Action: action}
}

// CompleteOnboarding stores bp and moves to VibeCheck. A failed save is logged
// and does not block the transition.
func (w *Wizard) CompleteOnboarding(ctx context.Context, bp Blueprint) error {
	if err := w.guard("complete onboarding", ScreenOnboarding); err != nil {
		return err
	}
	if err := bp.Validate(); err != nil {
		return err
	}
	bp = bp.Clone()
	w.svc.saveProfile(ctx, bp)
	w.blueprint = &bp
	w.draft = nil
	w.resetSelection()
	w.notice = ""
	w.screen = ScreenVibeCheck
	return nil
}

// SubmitDraft completes onboarding with the current draft.
func (w *Wizard) SubmitDraft(ctx context.Context) error {
	if w.draft == nil {
		return TransitionError{From: w.screen, Action: "submit onboarding"}
	}
	bp, err := w.draft.Build()
	if err != nil {
		return err
	}
	return w.CompleteOnboarding(ctx, bp)
}

func (w *Wizard) SelectVibe(v Vibe) error {
	if err := w.guard("select vibe", ScreenVibeCheck); err != nil {
		return err
	}
	if !v.IsValid() {
		return ValidationError{Field: "vibe", Reason: fmt.Sprintf("unknown vibe %q", v)}
	}
	w.vibe = v
	w.quote = InfoForVibe(v).Quote
	w.notice = ""
	w.screen = ScreenBodyFocus
	return nil
}

func (w *Wizard) SelectFocus(f BodyFocus) error {
	if err := w.guard("select focus", ScreenBodyFocus); err != nil {
		return err
	}
	if !f.IsValid() {
		return ValidationError{Field: "focus", Reason: fmt.Sprintf("unknown focus %q", f)}
	}
	w.focus = f
	if len(w.equipment) == 0 {
		w.equipment = []string{DefaultEquipment}
	}
	w.notice = ""
	w.screen = ScreenEquipment
	return nil
}

// Back is available from BodyFocus and Equipment only.
func (w *Wizard) Back() error {
	if w.pending != nil {
		return ErrBusy
	}
	switch w.screen {
	case ScreenBodyFocus:
		w.screen = ScreenVibeCheck
	case ScreenEquipment:
		w.screen = ScreenBodyFocus
	default:
		return TransitionError{From: w.screen, Action: "go back"}
	}
	w.notice = ""
	return nil
}

func (w *Wizard) ToggleEquipment(id string) error {
	if err := w.guard("toggle equipment", ScreenEquipment); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ValidationError{Field: "equipment", Reason: "name is required"}
	}
	for i, e := range w.equipment {
		if strings.EqualFold(e, id) {
			w.equipment = append(w.equipment[:i:i], w.equipment[i+1:]...)
			return nil
		}
	}
	w.equipment = append(w.equipment, id)
	return nil
}

// AddCustomEquipment adds a free-form item; adding a present item is a no-op.
func (w *Wizard) AddCustomEquipment(name string) error {
	if err := w.guard("add equipment", ScreenEquipment); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "equipment", Reason: "name is required"}
	}
	w.equipment = mergeEquipment(w.equipment, name)
	return nil
}

func (w *Wizard) request() WorkoutRequest {
	req := WorkoutRequest{
		Vibe:      w.vibe,
		Focus:     w.focus,
		Equipment: append([]string(nil), w.equipment...),
	}
	if w.blueprint != nil {
		req.Blueprint = w.blueprint.Clone()
	}
	return req
}

func (w *Wizard) start(ctx context.Context, kind JobKind, returnTo, screen Screen, run func(ctx context.Context) Outcome) Job {
	w.ticket++
	jctx, cancel := w.svc.requestContext(ctx)
	w.pending = &pending{ticket: w.ticket, kind: kind, returnTo: returnTo, cancel: cancel}
	w.screen = screen
	w.notice = ""
	return Job{Ticket: w.ticket, Kind: kind, ctx: jctx, run: run}
}

// BeginGeneration validates the equipment list, records it as the selection
// and enters Generating. An empty list is rejected with no transition.
func (w *Wizard) BeginGeneration(ctx context.Context, equipment []string) (Job, error) {
	if err := w.guard("generate", ScreenEquipment); err != nil {
		return Job{}, err
	}
	eq := mergeEquipment(nil, equipment...)
	if len(eq) == 0 {
		return Job{}, ValidationError{Field: "equipment", Reason: "select at least one item"}
	}
	if w.blueprint == nil {
		return Job{}, ErrNoProfile
	}
	w.equipment = eq
	req := w.request()
	gen := w.svc.gen
	job := w.start(ctx, JobGenerate, ScreenEquipment, ScreenGenerating, func(ctx context.Context) Outcome {
		if gen == nil {
			return Outcome{Err: UpstreamError(errors.New("no generator configured"))}
		}
		exs, err := gen.GenerateWorkout(ctx, req)
		return Outcome{Exercises: exs, Err: err}
	})
	w.svc.log.Info("generating workout", "ticket", job.Ticket, "vibe", req.Vibe, "focus", req.Focus, "equipment", strings.Join(req.Equipment, ","))
	return job, nil
}

// BeginScan enters Scanning for a room photo.
func (w *Wizard) BeginScan(ctx context.Context, image []byte, mimeType string) (Job, error) {
	if err := w.guard("scan", ScreenEquipment); err != nil {
		return Job{}, err
	}
	if len(image) == 0 {
		return Job{}, ValidationError{Field: "image", Reason: "is empty"}
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	img := append([]byte(nil), image...)
	gen := w.svc.gen
	job := w.start(ctx, JobScan, ScreenEquipment, ScreenScanning, func(ctx context.Context) Outcome {
		if gen == nil {
			return Outcome{Err: UpstreamError(errors.New("no generator configured"))}
		}
		names, err := gen.ScanEquipment(ctx, img, mimeType)
		return Outcome{Equipment: names, Err: err}
	})
	w.svc.log.Info("scanning room", "ticket", job.Ticket, "bytes", len(img), "mime", mimeType)
	return job, nil
}

// BeginSwap enters Swapping for the exercise id.
func (w *Wizard) BeginSwap(ctx context.Context, id string) (Job, error) {
	if err := w.guard("swap exercise", ScreenWorkout); err != nil {
		return Job{}, err
	}
	cur, ok := w.player.Exercise(id)
	if !ok {
		return Job{}, ValidationError{Field: "exercise", Reason: fmt.Sprintf("unknown id %q", id)}
	}
	req := SwapRequest{WorkoutRequest: w.request(), Current: cur}
	for _, e := range w.player.Exercises() {
		req.Keep = append(req.Keep, e.Name)
	}
	gen := w.svc.gen
	job := w.start(ctx, JobSwap, ScreenWorkout, ScreenSwapping, func(ctx context.Context) Outcome {
		sw, ok := gen.(Swapper)
		if !ok {
			return Outcome{Err: errSwapUnsupported}
		}
		rep, err := sw.SwapExercise(ctx, req)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Replacement: &rep}
	})
	w.pending.swapID = id
	w.svc.log.Info("swapping exercise", "ticket", job.Ticket, "id", id, "name", cur.Name)
	return job, nil
}

// CancelPending abandons the in-flight request and returns to the screen it
// was started from. Its result, if it still arrives, is discarded.
func (w *Wizard) CancelPending() error {
	p := w.pending
	if p == nil {
		return TransitionError{From: w.screen, Action: "cancel"}
	}
	p.cancel()
	w.pending = nil
	w.screen = p.returnTo
	w.notice = NoticeCancelled
	w.svc.log.Info("request cancelled", "ticket", p.ticket, "kind", p.kind)
	return nil
}

// Resolve applies the outcome of the current job. Outcomes of cancelled or
// superseded jobs return ErrStaleResult and change nothing. A failed outcome
// returns its error after moving back to the originating screen.
func (w *Wizard) Resolve(o Outcome) error {
	p := w.pending
	if p == nil || p.ticket != o.Ticket || p.kind != o.Kind {
		w.svc.log.Debug("discarding stale result", "ticket", o.Ticket, "kind", o.Kind)
		return ErrStaleResult
	}
	w.pending = nil
	p.cancel()

	switch o.Kind {
	case JobGenerate:
		return w.resolveGeneration(o)
	case JobScan:
		return w.resolveScan(o)
	case JobSwap:
		return w.resolveSwap(p.swapID, o)
	default:
		w.screen = p.returnTo
		return fmt.Errorf("unknown job kind %d", o.Kind)
	}
}

func (w *Wizard) resolveGeneration(o Outcome) error {
	err := classify(o.Err)
	if err == nil {
		err = ValidateWorkout(o.Exercises, w.blueprint.MaxExercises)
	}
	if err != nil {
		w.screen = ScreenEquipment
		w.notice = NoticeGenerationFailed
		w.svc.log.Warn("workout generation failed", "ticket", o.Ticket, "kind", GenerationKind(err), "error", err)
		return err
	}
	for _, warn := range QualityWarnings(o.Exercises) {
		w.svc.log.Info("workout quality", "ticket", o.Ticket, "warning", warn)
	}
	w.player = NewPlayer(o.Exercises)
	w.screen = ScreenWorkout
	w.svc.log.Info("workout ready", "ticket", o.Ticket, "exercises", len(o.Exercises))
	return nil
}

func (w *Wizard) resolveScan(o Outcome) error {
	w.screen = ScreenEquipment
	if err := classify(o.Err); err != nil {
		w.notice = NoticeScanFailed
		w.svc.log.Warn("room scan failed", "ticket", o.Ticket, "kind", GenerationKind(err), "error", err)
		return err
	}
	before := len(w.equipment)
	w.equipment = mergeEquipment(w.equipment, o.Equipment...)
	added := len(w.equipment) - before
	switch added {
	case 0:
		w.notice = "Scan found nothing new."
	case 1:
		w.notice = "Scan added 1 item."
	default:
		w.notice = fmt.Sprintf("Scan added %d items.", added)
	}
	w.svc.log.Info("room scanned", "ticket", o.Ticket, "found", len(o.Equipment), "added", added)
	return nil
}

func (w *Wizard) resolveSwap(id string, o Outcome) error {
	w.screen = ScreenWorkout
	err := o.Err
	if err == nil {
		err = w.checkReplacement(id, o.Replacement)
	}
	if err != nil {
		_ = w.player.MarkAlternate(id)
		w.notice = NoticeSwapFallback
		w.svc.log.Warn("swap fell back to alternate", "ticket", o.Ticket, "id", id, "error", err)
		return err
	}
	if err := w.player.Replace(id, *o.Replacement); err != nil {
		return err
	}
	w.notice = "Swapped in " + o.Replacement.Name + "."
	w.svc.log.Info("exercise swapped", "ticket", o.Ticket, "id", id, "name", o.Replacement.Name)
	return nil
}

func (w *Wizard) checkReplacement(id string, rep *Exercise) error {
	if rep == nil {
		return InvalidFormatError(errors.New("no replacement returned"))
	}
	cur, ok := w.player.Exercise(id)
	if !ok {
		return fmt.Errorf("exercise %q left the session", id)
	}
	rep.ID = id
	if err := ValidateExercise(*rep); err != nil {
		return InvalidFormatError(err)
	}
	if rep.Category != cur.Category {
		return InvalidFormatError(fmt.Errorf("replacement category %q, want %q", rep.Category, cur.Category))
	}
	return nil
}

// FinishSession logs the session, clears the selection and returns to
// VibeCheck. It is allowed whether or not every exercise was completed.
func (w *Wizard) FinishSession(ctx context.Context) (SessionRecord, error) {
	if err := w.guard("finish session", ScreenWorkout); err != nil {
		return SessionRecord{}, err
	}
	rec := SessionRecord{
		FinishedAt: w.svc.now(),
		Vibe:       w.vibe,
		Focus:      w.focus,
		Equipment:  append([]string(nil), w.equipment...),
	}
	if w.player != nil {
		rec.Exercises = w.player.Exercises()
		rec.CompletedIDs = w.player.CompletedIDs()
	}
	w.svc.recordSession(ctx, rec)

	w.resetSelection()
	w.screen = ScreenVibeCheck
	w.notice = NoticeSessionLogged
	return rec, nil
}

func (w *Wizard) resetSelection() {
	w.vibe = ""
	w.quote = ""
	w.focus = ""
	w.equipment = nil
	w.player = nil
}

// CompleteEquipment runs generation synchronously.
func (w *Wizard) CompleteEquipment(ctx context.Context, equipment []string) error {
	job, err := w.BeginGeneration(ctx, equipment)
	if err != nil {
		return err
	}
	return w.Resolve(job.Run())
}

// ScanRoom runs a room scan synchronously.
func (w *Wizard) ScanRoom(ctx context.Context, image []byte, mimeType string) error {
	job, err := w.BeginScan(ctx, image, mimeType)
	if err != nil {
		return err
	}
	return w.Resolve(job.Run())
}

// SwapExercise runs a swap synchronously.
func (w *Wizard) SwapExercise(ctx context.Context, id string) error {
	job, err := w.BeginSwap(ctx, id)
	if err != nil {
		return err
	}
	return w.Resolve(job.Run())
}
