package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	var opts drawOptions

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a command script and print the result",
		Long: `Replay validates a YAML command script, applies every step to a fresh
editing session and prints the resulting draw commands or full state as JSON.

Examples:
  clipedit replay clip.yaml
  clipedit replay clip.yaml --output state`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engineOpts, err := opts.engineOptions()
			if err != nil {
				return err
			}

			script, err := LoadScript(args[0])
			if err != nil {
				return err
			}

			st, err := script.Replay(engineOpts)
			if err != nil {
				return err
			}
			slog.Debug("script replayed", "name", script.Name, "steps", len(script.Steps), "seq", st.Seq())

			return writeOutput(cmd.OutOrStdout(), st, opts.output)
		},
	}

	opts.bind(cmd)
	return cmd
}
