package wizard

// Completion records which steps were persisted successfully.
type Completion map[Step]bool

// MarkComplete flags step as persisted.
func (c Completion) MarkComplete(step Step) { c[step] = true }

// MarkIncomplete clears the flag of step.
func (c Completion) MarkIncomplete(step Step) { c[step] = false }

// IsComplete reports whether step is flagged as persisted.
func (c Completion) IsComplete(step Step) bool { return c[step] }

// Progress returns how many steps of the sequence are complete.
func (c Completion) Progress() (done, total int) {
	for _, step := range sequence {
		if c[step] {
			done++
		}
	}
	return done, len(sequence)
}

func (c Completion) clone() Completion {
	out := make(Completion, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
