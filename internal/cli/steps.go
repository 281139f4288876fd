package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hotel-ob/internal/orchestration"
	"hotel-ob/internal/wizard"
)

// stepFlags are shared by the commands that act on one step of a session.
type stepFlags struct {
	step   string
	file   string
	format string
}

func (f *stepFlags) bindStep(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.step, "step", "", "Step to act on (defaults to the active step)")
}

func (f *stepFlags) bindPayload(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "JSON or YAML file with the step value, - for stdin")
	cmd.Flags().StringVar(&f.format, "format", "", "Payload format (json or yaml); detected from the file name if empty")
	_ = cmd.MarkFlagRequired("file")
}

// resolveStep returns the --step flag, or the active step of the session.
func (f *stepFlags) resolveStep(cmd *cobra.Command, orch *orchestration.Orchestrator, id string) (wizard.Step, error) {
	if f.step != "" {
		return wizard.ParseStep(f.step)
	}
	sess, err := orch.GetSession(cmd.Context(), id)
	if err != nil {
		return "", err
	}
	return sess.ActiveStep, nil
}

// readPayload loads the step value and converts it to JSON.
func (f *stepFlags) readPayload(cmd *cobra.Command) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if f.file == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(f.file)
	}
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	format := orchestration.PayloadFormat(f.format)
	if format == "" {
		format = orchestration.FormatForFile(f.file)
	}
	return orchestration.NormalizePayload(raw, format)
}

// SubmitCommand creates the submit command
func SubmitCommand(app *App) *cobra.Command {
	var flags stepFlags

	cmd := &cobra.Command{
		Use:   "submit <session>",
		Short: "Save a step to the hotel backend",
		Long: `Commit a step value and persist it through the hotel backend. On success the
step is marked complete and the session moves to the next step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			step, err := flags.resolveStep(cmd, orch, args[0])
			if err != nil {
				return err
			}
			payload, err := flags.readPayload(cmd)
			if err != nil {
				return err
			}
			out, err := orch.Submit(cmd.Context(), args[0], step, payload)
			if out != nil {
				printOutcome(cmd.OutOrStdout(), out)
			}
			return err
		},
	}

	flags.bindStep(cmd)
	flags.bindPayload(cmd)
	return cmd
}

// LiveCommand creates the live command
func LiveCommand(app *App) *cobra.Command {
	var flags stepFlags

	cmd := &cobra.Command{
		Use:   "live <session>",
		Short: "Store a draft value for a step without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			step, err := flags.resolveStep(cmd, orch, args[0])
			if err != nil {
				return err
			}
			payload, err := flags.readPayload(cmd)
			if err != nil {
				return err
			}
			if _, err := orch.SetLive(cmd.Context(), args[0], step, payload); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft of %s updated.\n", step)
			return nil
		},
	}

	flags.bindStep(cmd)
	flags.bindPayload(cmd)
	return cmd
}

// ShowCommand creates the show command
func ShowCommand(app *App) *cobra.Command {
	var flags stepFlags

	cmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Print the saved and draft values of a step as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			step, err := flags.resolveStep(cmd, orch, args[0])
			if err != nil {
				return err
			}
			data, err := orch.GetStepData(cmd.Context(), args[0], step)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	flags.bindStep(cmd)
	return cmd
}

// PlanCommand creates the plan command
func PlanCommand(app *App) *cobra.Command {
	var flags stepFlags

	cmd := &cobra.Command{
		Use:   "plan <session>",
		Short: "Show the backend calls a submission of a step would make",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			step, err := flags.resolveStep(cmd, orch, args[0])
			if err != nil {
				return err
			}
			calls, err := orch.PlanStep(cmd.Context(), args[0], step)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", step, joinCalls(calls))
			return nil
		},
	}

	flags.bindStep(cmd)
	return cmd
}

// BackCommand creates the back command
func BackCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "back <session>",
		Short: "Move the session to the previous step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			sess, err := orch.Back(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active step: %s\n", sess.ActiveStep)
			return nil
		},
	}
}

// JumpCommand creates the jump command
func JumpCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "jump <session> <step>",
		Short: "Move the session to any step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := wizard.ParseStep(args[1])
			if err != nil {
				return err
			}
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			sess, err := orch.JumpTo(cmd.Context(), args[0], step)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active step: %s\n", sess.ActiveStep)
			return nil
		},
	}
}
