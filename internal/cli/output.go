package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"hotel-ob/internal/orchestration"
	"hotel-ob/internal/wizard"
)

func printStatus(w io.Writer, status *orchestration.SessionStatus) {
	fmt.Fprintf(w, "Session:  %s (%s)\n", status.SessionID, status.Mode)
	if status.IDs.HotelID != 0 {
		fmt.Fprintf(w, "Hotel:    %d\n", status.IDs.HotelID)
	}
	fmt.Fprintf(w, "Progress: %d/%d steps complete\n", status.Done, status.Total)
	for i, step := range status.Steps {
		mark := "[ ]"
		if step.Complete {
			mark = "[x]"
		}
		cursor := "  "
		if step.Active {
			cursor = "->"
		}
		fmt.Fprintf(w, "%s %d. %s %s\n", cursor, i+1, mark, step.Step)
	}
}

func printOutcome(w io.Writer, out *wizard.Outcome) {
	for _, n := range out.Notices {
		fmt.Fprintf(w, "%s %s\n", noticeIcon(n.Level), n.Message)
	}
	switch {
	case out.Finished:
		fmt.Fprintln(w, "🏁 Onboarding finished, the session starts over at the first step.")
	case out.Success:
		fmt.Fprintf(w, "Next step: %s\n", out.Active)
	}
}

func noticeIcon(level wizard.Level) string {
	switch level {
	case wizard.LevelWarning:
		return "⚠️ "
	case wizard.LevelError:
		return "❌"
	default:
		return "✅"
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func joinCalls(calls []string) string {
	if len(calls) == 0 {
		return "(none)"
	}
	return strings.Join(calls, " -> ")
}
