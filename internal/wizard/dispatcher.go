package wizard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hotel-ob/internal/api"
)

// Backend is the set of REST calls the dispatcher needs. *api.Client
// implements it.
type Backend interface {
	CreateHotel(ctx context.Context, input api.Hotel) (*api.CreateHotelResponse, error)
	UpdateHotel(ctx context.Context, id int64, input api.Hotel) error
	GetHotelByID(ctx context.Context, id int64) (*api.Hotel, error)

	CreateRoom(ctx context.Context, input api.RoomConfig) (*api.CreateRoomResponse, error)
	AddCategoriesToRoom(ctx context.Context, roomID int64, categories []api.RoomCategory) (*api.AddCategoriesResponse, error)
	CreateOrUpdateRoomOperationalHandling(ctx context.Context, roomID int64, input api.RoomOperationalHandling) error

	CreateEvent(ctx context.Context, input api.Event) (*api.CreateEventResponse, error)
	UpdateEvent(ctx context.Context, id int64, input api.Event) error
	UpsertBooking(ctx context.Context, eventID int64, data api.EventBooking) error
	UpsertOperations(ctx context.Context, eventID int64, data api.EventOperations) error
	UpsertFinancials(ctx context.Context, eventID int64, data api.EventFinancials) error
	UpsertEquipment(ctx context.Context, eventID int64, data api.EventEquipment) error
	UpsertSpaces(ctx context.Context, eventID int64, spaces []api.EventSpace) error

	UpsertFoodBeverageDetails(ctx context.Context, hotelID int64, payload api.FoodBeverage) error
	CreateInformationPolicy(ctx context.Context, policy api.InformationPolicy) error

	SubmitChanges(ctx context.Context, entityID int64, entityType string, newData, originalData any) error
	AssignTemporaryFiles(ctx context.Context, entityType string, entityID int64) (*api.AssignFilesResponse, error)
}

// Call is one backend request planned for a step. Run performs no work until
// the dispatcher executes it.
type Call struct {
	Name string
	Run  func(ctx context.Context, b Backend) (any, error)
}

// Result is the outcome of one executed Call.
type Result struct {
	Call  string
	Value any
	Err   error
}

// Observer receives dispatch events, e.g. for metrics.
type Observer interface {
	StepDispatched(step Step, outcome string)
	CallFailed(step Step, call string, blocking bool)
}

// Dispatch outcomes reported to the Observer.
const (
	OutcomeSuccess      = "success"
	OutcomePrecondition = "precondition"
	OutcomeFailed       = "failed"
)

type nopObserver struct{}

func (nopObserver) StepDispatched(Step, string)   {}
func (nopObserver) CallFailed(Step, string, bool) {}

// Outcome describes what a submission did to the session.
type Outcome struct {
	Step     Step     `json:"step"`
	Success  bool     `json:"success"`
	Active   Step     `json:"activeStep"`
	Advanced bool     `json:"advanced"`
	Finished bool     `json:"finished"`
	HotelID  int64    `json:"hotelId,omitempty"`
	Notices  []Notice `json:"notices"`
}

func (o *Outcome) notice(level Level, msg string) {
	o.Notices = append(o.Notices, Notice{Level: level, Step: o.Step, Message: msg})
}

// Dispatcher persists submitted steps through a Backend.
type Dispatcher struct {
	backend  Backend
	logger   *zap.SugaredLogger
	observer Observer
	handlers map[Step]handler
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for call tracing.
func WithLogger(logger *zap.SugaredLogger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithObserver registers an observer for dispatch events.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observer = o }
}

// NewDispatcher creates a dispatcher bound to backend.
func NewDispatcher(backend Backend, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		backend:  backend,
		logger:   zap.NewNop().Sugar(),
		observer: nopObserver{},
		handlers: handlers,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Plan returns the primary calls a submission of step would issue for the
// current session, without executing anything. A missing parent id yields a
// *PreconditionError and no calls.
func Plan(s *Session, step Step) ([]Call, error) {
	h, ok := handlers[step]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	if h.requires != nil {
		if missing := h.requires(s); missing != "" {
			return nil, &PreconditionError{Step: step, Missing: missing}
		}
	}
	return h.plan(s), nil
}

// IsBlocking reports whether failures of step's secondary calls fail the step.
func IsBlocking(step Step) bool {
	return handlers[step].blocking
}

// Submit commits value as the data of step and persists it. On success the
// completion flag is set and the cursor advances; on failure the flag is
// cleared, the cursor stays and the returned error is a *PreconditionError or
// *StepError. The Outcome is non-nil whenever the step was attempted.
func (d *Dispatcher) Submit(ctx context.Context, s *Session, step Step, value any) (*Outcome, error) {
	h, ok := d.handlers[step]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.settle(ctx)

	if err := s.Data.Set(step, value); err != nil {
		return nil, err
	}

	out := &Outcome{Step: step, Active: s.ActiveStep}
	log := d.logger.With("session", s.ID, "step", string(step))

	if h.requires != nil {
		if missing := h.requires(s); missing != "" {
			return d.fail(s, out, &PreconditionError{Step: step, Missing: missing}, log)
		}
	}

	results, err := d.runSequential(ctx, step, h.plan(s), log)
	if err == nil && h.settle != nil {
		err = h.settle(s, results)
	}
	if err != nil {
		return d.fail(s, out, err, log)
	}

	if h.followUps != nil {
		for _, r := range d.runConcurrent(ctx, h.followUps(s), log) {
			if r.Err == nil {
				continue
			}
			d.observer.CallFailed(step, r.Call, h.blocking)
			if h.blocking {
				return d.fail(s, out, &StepError{Step: step, Call: r.Call, Err: r.Err}, log)
			}
			log.Warnw("secondary call failed", "call", r.Call, "error", r.Err)
			out.notice(LevelWarning, fmt.Sprintf("%s could not be saved: %s", r.Call, reason(r.Err)))
		}
	}

	s.Completion.MarkComplete(step)
	d.observer.StepDispatched(step, OutcomeSuccess)
	d.advance(s, step, h, out)
	log.Infow("step saved", "active", string(out.Active), "finished", out.Finished)
	return out, nil
}

// runSequential executes calls in order and stops at the first failure. No
// call is retried and earlier successes are not rolled back.
func (d *Dispatcher) runSequential(ctx context.Context, step Step, calls []Call, log *zap.SugaredLogger) ([]Result, error) {
	results := make([]Result, 0, len(calls))
	for _, call := range calls {
		log.Debugw("calling backend", "call", call.Name)
		v, err := call.Run(ctx, d.backend)
		results = append(results, Result{Call: call.Name, Value: v, Err: err})
		if err != nil {
			d.observer.CallFailed(step, call.Name, true)
			return results, &StepError{Step: step, Call: call.Name, Err: err}
		}
	}
	return results, nil
}

// runConcurrent fans calls out and waits for all of them regardless of
// individual failures.
func (d *Dispatcher) runConcurrent(ctx context.Context, calls []Call, log *zap.SugaredLogger) []Result {
	results := make([]Result, len(calls))
	var g errgroup.Group
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			log.Debugw("calling backend", "call", call.Name)
			v, err := call.Run(ctx, d.backend)
			results[i] = Result{Call: call.Name, Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (d *Dispatcher) fail(s *Session, out *Outcome, err error, log *zap.SugaredLogger) (*Outcome, error) {
	s.Completion.MarkIncomplete(out.Step)
	out.Success = false
	out.Active = s.ActiveStep

	var pre *PreconditionError
	if errors.As(err, &pre) {
		d.observer.StepDispatched(out.Step, OutcomePrecondition)
		log.Infow("step blocked by missing parent", "missing", pre.Missing)
		out.notice(LevelError, fmt.Sprintf("%s first (%s is missing)", ErrMissingParent, pre.Missing))
		return out, err
	}

	d.observer.StepDispatched(out.Step, OutcomeFailed)
	log.Errorw("step failed", "error", err)
	out.notice(LevelError, fmt.Sprintf("saving %s failed: %s", out.Step, reason(err)))
	return out, err
}

// advance moves the cursor after a successful step. In add mode the session
// finishes after a terminal step or the last step and is reset; in edit mode
// it stays on the last step.
func (d *Dispatcher) advance(s *Session, step Step, h handler, out *Outcome) {
	out.Success = true
	out.HotelID = s.IDs.HotelID

	next, ok := Advance(step)
	if s.Mode == ModeAdd && (h.terminal || !ok) {
		s.Reset()
		out.Finished = true
		out.Active = s.ActiveStep
		out.notice(LevelInfo, "hotel onboarding finished")
		return
	}
	if ok {
		s.ActiveStep = next
		out.Advanced = true
	} else {
		s.ActiveStep = step
	}
	out.Active = s.ActiveStep
	out.notice(LevelInfo, fmt.Sprintf("%s saved", step))
}
