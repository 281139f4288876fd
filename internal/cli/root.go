// Package cli implements the hotel-ob command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "hotel-ob",
		Short: "Drive the hotel onboarding wizard against the hotel backend",
		Long: `hotel-ob walks a hotel through the eight onboarding steps and saves each
step to the hotel backend. Sessions are stored between invocations.

Examples:
  # Start onboarding a new hotel
  hotel-ob start

  # Edit an existing hotel
  hotel-ob start --edit --hotel-id 42

  # Save the active step of a session from a YAML file
  hotel-ob submit <session> --file hotel.yaml

  # Serve the wizard over HTTP
  hotel-ob serve --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		StartCommand(app),
		StatusCommand(app),
		ListCommand(app),
		DeleteCommand(app),
		PruneCommand(app),
		SubmitCommand(app),
		LiveCommand(app),
		ShowCommand(app),
		PlanCommand(app),
		BackCommand(app),
		JumpCommand(app),
		ServeCommand(app),
		InitDBCommand(app),
	)
	return root
}
