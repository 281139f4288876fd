// Package wizard implements the hotel onboarding wizard: the ordered step
// sequence, per-step data with a live preview copy, the entity ids created
// along the way, completion flags, and the dispatcher that persists each step
// to the backend.
package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// Step names one stage of the onboarding wizard.
type Step string

const (
	StepHotel               Step = "hotel"
	StepRoomInfo            Step = "roomInfo"
	StepRoomCategories      Step = "roomCategories"
	StepRoomHandling        Step = "roomHandling"
	StepEventsInfo          Step = "eventsInfo"
	StepEventSpaces         Step = "eventSpaces"
	StepFoodBeverage        Step = "foodBeverage"
	StepInformationPolicies Step = "informationPolicies"
)

// sequence is the fixed rendering and navigation order.
var sequence = [...]Step{
	StepHotel,
	StepRoomInfo,
	StepRoomCategories,
	StepRoomHandling,
	StepEventsInfo,
	StepEventSpaces,
	StepFoodBeverage,
	StepInformationPolicies,
}

// ErrUnknownStep is returned for step names outside the sequence.
var ErrUnknownStep = errors.New("unknown wizard step")

// Steps returns the step sequence in order.
func Steps() []Step {
	out := make([]Step, len(sequence))
	copy(out, sequence[:])
	return out
}

// FirstStep returns the first step of the sequence.
func FirstStep() Step { return sequence[0] }

// LastStep returns the last step of the sequence.
func LastStep() Step { return sequence[len(sequence)-1] }

// Index returns the position of s in the sequence, or -1.
func (s Step) Index() int {
	for i, step := range sequence {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is part of the sequence.
func (s Step) Valid() bool { return s.Index() >= 0 }

func (s Step) String() string { return string(s) }

// ParseStep resolves a step name case-insensitively. Dashes and underscores
// are ignored so "room-info" and "room_info" both resolve to roomInfo.
func ParseStep(name string) (Step, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	for _, step := range sequence {
		if strings.ToLower(string(step)) == norm {
			return step, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

// Advance returns the step after s. The boolean is false when s is the last
// step (or unknown) and there is nowhere to go.
func Advance(s Step) (Step, bool) {
	i := s.Index()
	if i < 0 || i == len(sequence)-1 {
		return s, false
	}
	return sequence[i+1], true
}

// Retreat returns the step before s, or s itself when s is the first step.
func Retreat(s Step) Step {
	i := s.Index()
	if i <= 0 {
		return s
	}
	return sequence[i-1]
}
