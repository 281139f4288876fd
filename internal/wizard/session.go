package wizard

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// Mode tells whether a session creates a new hotel or edits an existing one.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Permission is a capability of the operator driving the session.
type Permission string

const (
	PermEditAll          Permission = "edit_all"
	PermEditWithApproval Permission = "edit_with_approval"
)

// Permissions is the permission set of the operator.
type Permissions []Permission

// Has reports whether p contains perm.
func (p Permissions) Has(perm Permission) bool { return slices.Contains(p, perm) }

// NeedsApproval reports whether updates must go through the approval workflow.
func (p Permissions) NeedsApproval() bool {
	return p.Has(PermEditWithApproval) && !p.Has(PermEditAll)
}

// ParsePermissions splits a comma separated permission list.
func ParsePermissions(s string) Permissions {
	var out Permissions
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, Permission(part))
		}
	}
	return out
}

// IDs tracks the backend ids created by earlier steps. Zero means not yet
// created.
type IDs struct {
	HotelID      int64 `json:"createdHotelId,omitempty"`
	RoomConfigID int64 `json:"createdRoomConfigId,omitempty"`
	EventID      int64 `json:"createdEventId,omitempty"`
}

// Lifecycle states and events of a session.
const (
	StateIdle        = "idle"
	StateDispatching = "dispatching"

	eventBegin  = "begin"
	eventSettle = "settle"
)

// Session is the state of one wizard run.
type Session struct {
	ID          string
	Mode        Mode
	ActiveStep  Step
	IDs         IDs
	Data        *Data
	Completion  Completion
	Permissions Permissions
	CreatedAt   time.Time
	UpdatedAt   time.Time

	lifecycle *fsm.FSM
}

// NewSession creates an empty session positioned on the first step.
func NewSession(mode Mode, perms Permissions) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.New().String(),
		Mode:        mode,
		ActiveStep:  FirstStep(),
		Data:        NewData(),
		Completion:  make(Completion),
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
		lifecycle:   newLifecycle(),
	}
}

func newLifecycle() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventBegin, Src: []string{StateIdle}, Dst: StateDispatching},
			{Name: eventSettle, Src: []string{StateDispatching}, Dst: StateIdle},
		},
		fsm.Callbacks{},
	)
}

// State returns the lifecycle state of the session.
func (s *Session) State() string {
	return s.lifecycle.Current()
}

// begin moves the session into the dispatching state. A second dispatch while
// one is running is rejected.
func (s *Session) begin(ctx context.Context) error {
	if err := s.lifecycle.Event(ctx, eventBegin); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchInFlight, err)
	}
	return nil
}

func (s *Session) settle(ctx context.Context) {
	// settle only fails when not dispatching, which begin rules out.
	_ = s.lifecycle.Event(ctx, eventSettle)
	s.touch()
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// JumpTo moves the cursor to step. Navigation is never gated on completion
// and never touches data or completion flags.
func (s *Session) JumpTo(step Step) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	s.ActiveStep = step
	s.touch()
	return nil
}

// Back moves the cursor to the previous step.
func (s *Session) Back() Step {
	s.ActiveStep = Retreat(s.ActiveStep)
	s.touch()
	return s.ActiveStep
}

// SetLive updates the preview value of step without committing it.
func (s *Session) SetLive(step Step, value any) error {
	if err := s.Data.SetLive(step, value); err != nil {
		return err
	}
	s.touch()
	return nil
}

// Reset returns the session to its initial empty state. Identity, mode and
// permissions are kept.
func (s *Session) Reset() {
	s.ActiveStep = FirstStep()
	s.IDs = IDs{}
	s.Data = NewData()
	s.Completion = make(Completion)
	s.touch()
}

// Clone returns a deep copy of s with an idle lifecycle.
func (s *Session) Clone() *Session {
	out := *s
	out.Data = s.Data.Clone()
	out.Completion = s.Completion.clone()
	out.Permissions = slices.Clone(s.Permissions)
	out.lifecycle = newLifecycle()
	return &out
}

type sessionJSON struct {
	ID          string      `json:"id"`
	Mode        Mode        `json:"mode"`
	ActiveStep  Step        `json:"activeStep"`
	IDs         IDs         `json:"ids"`
	Data        *Data       `json:"data"`
	Completion  Completion  `json:"completion"`
	Permissions Permissions `json:"permissions"`
	State       string      `json:"state"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// MarshalJSON implements json.Marshaler.
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		ID:          s.ID,
		Mode:        s.Mode,
		ActiveStep:  s.ActiveStep,
		IDs:         s.IDs,
		Data:        s.Data,
		Completion:  s.Completion,
		Permissions: s.Permissions,
		State:       s.State(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A restored session is always
// idle; a dispatch interrupted by a crash is not resumed.
func (s *Session) UnmarshalJSON(raw []byte) error {
	in := sessionJSON{Data: NewData()}
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	if !in.ActiveStep.Valid() {
		in.ActiveStep = FirstStep()
	}
	if in.Data == nil {
		in.Data = NewData()
	}
	if in.Completion == nil {
		in.Completion = make(Completion)
	}
	*s = Session{
		ID:          in.ID,
		Mode:        in.Mode,
		ActiveStep:  in.ActiveStep,
		IDs:         in.IDs,
		Data:        in.Data,
		Completion:  in.Completion,
		Permissions: in.Permissions,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
		lifecycle:   newLifecycle(),
	}
	return nil
}
