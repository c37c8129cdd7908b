package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Options struct {
	Profiles  ProfileStore
	Sessions  SessionLog
	Generator Generator
	Logger    *slog.Logger
	// Timeout bounds every gateway request. Zero means no limit beyond ctx.
	Timeout time.Duration
	Now     func() time.Time
}

// Service wires the stores and the generator and hands out wizards.
type Service struct {
	profiles ProfileStore
	sessions SessionLog
	gen      Generator
	log      *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		profiles: opts.Profiles,
		sessions: opts.Sessions,
		gen:      opts.Generator,
		log:      log,
		timeout:  opts.Timeout,
		now:      now,
	}
}

func (s *Service) Logger() *slog.Logger { return s.log }

// LoadProfile reads the stored blueprint. Unreadable or invalid data counts as
// no profile; the cause is logged.
func (s *Service) LoadProfile(ctx context.Context) *Blueprint {
	if s.profiles == nil {
		return nil
	}
	bp, err := s.profiles.LoadBlueprint(ctx)
	if err != nil {
		s.log.Warn("blueprint load failed, starting onboarding", "error", &PersistenceError{Op: "load", Err: err})
		return nil
	}
	if bp == nil {
		return nil
	}
	if err := bp.Validate(); err != nil {
		s.log.Warn("stored blueprint rejected, starting onboarding", "error", err)
		return nil
	}
	return bp
}

func (s *Service) saveProfile(ctx context.Context, bp Blueprint) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.SaveBlueprint(ctx, bp); err != nil {
		s.log.Warn("blueprint save failed", "error", &PersistenceError{Op: "save", Err: err})
		return
	}
	s.log.Info("blueprint saved", "goal", bp.Goal, "max_exercises", bp.MaxExercises)
}

func (s *Service) recordSession(ctx context.Context, rec SessionRecord) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RecordSession(ctx, rec); err != nil {
		s.log.Warn("session log failed", "error", &PersistenceError{Op: "record session", Err: err})
		return
	}
	s.log.Info("session logged", "exercises", len(rec.Exercises), "completed", len(rec.CompletedIDs))
}

// StartWizard builds a wizard positioned at VibeCheck when a valid blueprint
// is stored, otherwise at Onboarding.
func (s *Service) StartWizard(ctx context.Context) *Wizard {
	w := &Wizard{svc: s}
	if bp := s.LoadProfile(ctx); bp != nil {
		clone := bp.Clone()
		w.blueprint = &clone
		w.screen = ScreenVibeCheck
	} else {
		w.screen = ScreenOnboarding
		w.draft = NewBlueprintDraft()
	}
	s.log.Debug("wizard started", "screen", w.screen)
	return w
}

// ScanImage runs a one-off equipment scan outside the wizard.
func (s *Service) ScanImage(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	if len(image) == 0 {
		return nil, ValidationError{Field: "image", Reason: "is empty"}
	}
	if s.gen == nil {
		return nil, UpstreamError(errors.New("no generator configured"))
	}
	ctx, cancel := s.requestContext(ctx)
	defer cancel()
	names, err := s.gen.ScanEquipment(ctx, image, mimeType)
	if err != nil {
		return nil, classify(err)
	}
	return mergeEquipment(nil, names...), nil
}

func (s *Service) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// classify maps an unclassified generator error to Upstream.
func classify(err error) error {
	if err == nil || GenerationKind(err) != 0 {
		return err
	}
	return UpstreamError(err)
}
