// Package orchestration runs wizard sessions on behalf of the CLI and the
// HTTP host. It loads a session from the data store, applies one operation
// while holding the session's lock, and saves the result back.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"hotel-ob/internal/datastore"
	"hotel-ob/internal/store"
	"hotel-ob/internal/wizard"
)

// Backend is the REST surface the orchestrator needs: the dispatcher calls
// plus the aggregate read used to open edit sessions.
type Backend interface {
	wizard.Backend
	wizard.AggregateSource
}

// Orchestrator coordinates sessions, the dispatcher and the data store.
type Orchestrator struct {
	store      datastore.DataStore
	backend    Backend
	dispatcher *wizard.Dispatcher
	config     *OrchestratorConfig

	// locks holds one *sync.Mutex per session id.
	locks sync.Map
}

// OrchestratorConfig configures an Orchestrator.
type OrchestratorConfig struct {
	Permissions wizard.Permissions
	Logger      *zap.SugaredLogger
	Observer    wizard.Observer
}

// DefaultOrchestratorConfig returns a config with full edit rights and no
// logging.
func DefaultOrchestratorConfig() *OrchestratorConfig {
	return &OrchestratorConfig{
		Permissions: wizard.Permissions{wizard.PermEditAll},
		Logger:      zap.NewNop().Sugar(),
	}
}

// NewOrchestrator creates an orchestrator. A nil config uses the defaults.
func NewOrchestrator(ds datastore.DataStore, backend Backend, config *OrchestratorConfig) *Orchestrator {
	if config == nil {
		config = DefaultOrchestratorConfig()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop().Sugar()
	}

	opts := []wizard.DispatcherOption{wizard.WithLogger(config.Logger.Named("dispatcher"))}
	if config.Observer != nil {
		opts = append(opts, wizard.WithObserver(config.Observer))
	}

	return &Orchestrator{
		store:      ds,
		backend:    backend,
		dispatcher: wizard.NewDispatcher(backend, opts...),
		config:     config,
	}
}

// StartRequest opens a new session. HotelID is required in edit mode.
type StartRequest struct {
	Mode    wizard.Mode `json:"mode"`
	HotelID int64       `json:"hotelId"`
}

var (
	// ErrHotelIDRequired is returned when an edit session is started without a hotel.
	ErrHotelIDRequired = errors.New("editing requires a hotel id")
	// ErrInvalidPayload wraps step payloads that do not decode.
	ErrInvalidPayload = errors.New("invalid step payload")
	// ErrUnknownMode is returned for session modes other than add and edit.
	ErrUnknownMode = errors.New("unknown session mode")
)

// StartSession creates and stores a new session. Edit sessions are hydrated
// from the backend aggregate of the hotel.
func (o *Orchestrator) StartSession(ctx context.Context, req StartRequest) (*wizard.Session, error) {
	var (
		sess *wizard.Session
		err  error
	)
	switch req.Mode {
	case wizard.ModeEdit:
		if req.HotelID == 0 {
			return nil, ErrHotelIDRequired
		}
		sess, err = wizard.LoadForEdit(ctx, o.backend, req.HotelID, o.config.Permissions)
		if err != nil {
			return nil, err
		}
	case wizard.ModeAdd, "":
		sess = wizard.NewSession(wizard.ModeAdd, o.config.Permissions)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	if err := o.store.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	o.config.Logger.Infow("session started", "session", sess.ID, "mode", string(sess.Mode), "hotel", sess.IDs.HotelID)
	return sess, nil
}

// GetSession loads a session.
func (o *Orchestrator) GetSession(ctx context.Context, id string) (*wizard.Session, error) {
	return o.store.GetSession(ctx, id)
}

// ListSessions lists stored sessions.
func (o *Orchestrator) ListSessions(ctx context.Context) ([]store.SessionSummary, error) {
	return o.store.ListSessions(ctx)
}

// DeleteSession removes a session.
func (o *Orchestrator) DeleteSession(ctx context.Context, id string) error {
	unlock := o.lock(id)
	defer unlock()

	if err := o.store.DeleteSession(ctx, id); err != nil {
		return err
	}
	o.locks.Delete(id)
	return nil
}

// CleanupStaleSessions removes sessions idle for longer than maxAge.
func (o *Orchestrator) CleanupStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	return o.store.CleanupStaleSessions(ctx, time.Now().Add(-maxAge))
}

// Submit decodes a JSON payload for step and dispatches it. The session is
// saved whether or not the step succeeded, since the committed value and the
// completion flag change either way.
func (o *Orchestrator) Submit(ctx context.Context, id string, step wizard.Step, payload []byte) (*wizard.Outcome, error) {
	value, err := decode(step, payload)
	if err != nil {
		return nil, err
	}

	var out *wizard.Outcome
	err = o.update(ctx, id, func(sess *wizard.Session) error {
		var dispatchErr error
		out, dispatchErr = o.dispatcher.Submit(ctx, sess, step, value)
		if out == nil {
			return dispatchErr
		}
		if saveErr := o.store.SaveSession(ctx, sess); saveErr != nil {
			return saveErr
		}
		return dispatchErr
	})
	return out, err
}

// SetLive updates the preview value of step.
func (o *Orchestrator) SetLive(ctx context.Context, id string, step wizard.Step, payload []byte) (*wizard.Session, error) {
	value, err := decode(step, payload)
	if err != nil {
		return nil, err
	}
	return o.mutate(ctx, id, func(sess *wizard.Session) error {
		return sess.SetLive(step, value)
	})
}

// Back moves the session cursor one step back.
func (o *Orchestrator) Back(ctx context.Context, id string) (*wizard.Session, error) {
	return o.mutate(ctx, id, func(sess *wizard.Session) error {
		sess.Back()
		return nil
	})
}

// JumpTo moves the session cursor to step.
func (o *Orchestrator) JumpTo(ctx context.Context, id string, step wizard.Step) (*wizard.Session, error) {
	return o.mutate(ctx, id, func(sess *wizard.Session) error {
		return sess.JumpTo(step)
	})
}

// PlanStep returns the names of the primary calls a submission of step would
// make right now. Nothing is sent to the backend.
func (o *Orchestrator) PlanStep(ctx context.Context, id string, step wizard.Step) ([]string, error) {
	sess, err := o.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	calls, err := wizard.Plan(sess, step)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(calls))
	for _, c := range calls {
		names = append(names, c.Name)
	}
	return names, nil
}

// StepData is the committed and live value of one step.
type StepData struct {
	Step      wizard.Step `json:"step"`
	Committed any         `json:"committed"`
	Live      any         `json:"live"`
	Complete  bool        `json:"complete"`
}

// GetStepData returns the stored values of step.
func (o *Orchestrator) GetStepData(ctx context.Context, id string, step wizard.Step) (*StepData, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("%w: %q", wizard.ErrUnknownStep, step)
	}
	sess, err := o.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StepData{
		Step:      step,
		Committed: sess.Data.Committed(step),
		Live:      sess.Data.Live(step),
		Complete:  sess.Completion.IsComplete(step),
	}, nil
}

// SessionStatus summarizes the progress of a session.
type SessionStatus struct {
	SessionID  string       `json:"sessionId"`
	Mode       wizard.Mode  `json:"mode"`
	ActiveStep wizard.Step  `json:"activeStep"`
	IDs        wizard.IDs   `json:"ids"`
	Done       int          `json:"done"`
	Total      int          `json:"total"`
	Steps      []StepStatus `json:"steps"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// StepStatus is one row of a SessionStatus.
type StepStatus struct {
	Step     wizard.Step `json:"step"`
	Complete bool        `json:"complete"`
	Active   bool        `json:"active"`
	Blocking bool        `json:"blocking"`
}

// GetSessionStatus returns the progress of a session.
func (o *Orchestrator) GetSessionStatus(ctx context.Context, id string) (*SessionStatus, error) {
	sess, err := o.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return StatusOf(sess), nil
}

// StatusOf builds the status view of sess.
func StatusOf(sess *wizard.Session) *SessionStatus {
	done, total := sess.Completion.Progress()
	status := &SessionStatus{
		SessionID:  sess.ID,
		Mode:       sess.Mode,
		ActiveStep: sess.ActiveStep,
		IDs:        sess.IDs,
		Done:       done,
		Total:      total,
		UpdatedAt:  sess.UpdatedAt,
	}
	for _, step := range wizard.Steps() {
		status.Steps = append(status.Steps, StepStatus{
			Step:     step,
			Complete: sess.Completion.IsComplete(step),
			Active:   step == sess.ActiveStep,
			Blocking: wizard.IsBlocking(step),
		})
	}
	return status
}

func decode(step wizard.Step, payload []byte) (any, error) {
	value, err := wizard.DecodeValue(step, payload)
	if err != nil && !errors.Is(err, wizard.ErrUnknownStep) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return value, err
}

func (o *Orchestrator) lock(id string) func() {
	v, _ := o.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// update runs fn on the stored session while holding its lock.
func (o *Orchestrator) update(ctx context.Context, id string, fn func(*wizard.Session) error) error {
	unlock := o.lock(id)
	defer unlock()

	sess, err := o.store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	return fn(sess)
}

// mutate is update for operations that save on success and return the session.
func (o *Orchestrator) mutate(ctx context.Context, id string, fn func(*wizard.Session) error) (*wizard.Session, error) {
	var out *wizard.Session
	err := o.update(ctx, id, func(sess *wizard.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		if err := o.store.SaveSession(ctx, sess); err != nil {
			return err
		}
		out = sess
		return nil
	})
	return out, err
}
