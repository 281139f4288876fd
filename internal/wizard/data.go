package wizard

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Data holds the per-step values of a session. Committed values are the ones
// submitted to the backend; live values follow every edit for previews.
// Values are replaced wholesale and copied on the way in and out.
type Data struct {
	committed map[Step]any
	live      map[Step]any
}

// NewData returns an empty data store.
func NewData() *Data {
	return &Data{
		committed: make(map[Step]any),
		live:      make(map[Step]any),
	}
}

// Set replaces the committed and live value of step.
func (d *Data) Set(step Step, value any) error {
	v, err := checkedCopy(step, value)
	if err != nil {
		return err
	}
	live, err := cloneValue(v)
	if err != nil {
		return err
	}
	d.committed[step] = v
	d.live[step] = live
	return nil
}

// SetLive replaces only the live value of step.
func (d *Data) SetLive(step Step, value any) error {
	v, err := checkedCopy(step, value)
	if err != nil {
		return err
	}
	d.live[step] = v
	return nil
}

// Committed returns a copy of the committed value of step, or its empty value.
func (d *Data) Committed(step Step) any { return read(d.committed, step) }

// Live returns a copy of the live value of step, or its empty value.
func (d *Data) Live(step Step) any { return read(d.live, step) }

// HasCommitted reports whether step has been submitted at least once.
func (d *Data) HasCommitted(step Step) bool {
	_, ok := d.committed[step]
	return ok
}

// update rewrites the committed and live value of step in place. Used to read
// backend assigned ids back into the form data.
func (d *Data) update(step Step, fn func(any) any) {
	for _, m := range []map[Step]any{d.committed, d.live} {
		if v, ok := m[step]; ok {
			m[step] = fn(v)
		}
	}
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	out := NewData()
	for step := range d.committed {
		out.committed[step] = read(d.committed, step)
	}
	for step := range d.live {
		out.live[step] = read(d.live, step)
	}
	return out
}

// LiveAs returns the live value of step as T.
func LiveAs[T any](d *Data, step Step) T {
	v, _ := d.Live(step).(T)
	return v
}

// CommittedAs returns the committed value of step as T.
func CommittedAs[T any](d *Data, step Step) T {
	v, _ := d.Committed(step).(T)
	return v
}

func checkedCopy(step Step, value any) (any, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	owner, ok := stepOf(value)
	if !ok || owner != step {
		return nil, fmt.Errorf("value of type %T does not belong to step %s", value, step)
	}
	return cloneValue(value)
}

func read(m map[Step]any, step Step) any {
	v, ok := m[step]
	if !ok {
		empty, _ := EmptyValue(step)
		return empty
	}
	out, err := cloneValue(v)
	if err != nil {
		return v
	}
	return out
}

type dataJSON struct {
	Committed map[Step]json.RawMessage `json:"committed"`
	Live      map[Step]json.RawMessage `json:"live"`
}

// MarshalJSON implements json.Marshaler.
func (d *Data) MarshalJSON() ([]byte, error) {
	out := dataJSON{
		Committed: make(map[Step]json.RawMessage, len(d.committed)),
		Live:      make(map[Step]json.RawMessage, len(d.live)),
	}
	for step, v := range d.committed {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding committed %s: %w", step, err)
		}
		out.Committed[step] = raw
	}
	for step, v := range d.live {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding live %s: %w", step, err)
		}
		out.Live[step] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Data) UnmarshalJSON(raw []byte) error {
	var in dataJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	d.committed = make(map[Step]any, len(in.Committed))
	d.live = make(map[Step]any, len(in.Live))
	for step, msg := range in.Committed {
		v, err := DecodeValue(step, msg)
		if err != nil {
			return fmt.Errorf("decoding committed %s: %w", step, err)
		}
		d.committed[step] = v
	}
	for step, msg := range in.Live {
		v, err := DecodeValue(step, msg)
		if err != nil {
			return fmt.Errorf("decoding live %s: %w", step, err)
		}
		d.live[step] = v
	}
	return nil
}
