package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <script.yaml>",
		Short: "Validate a command script",
		Long: `Validate checks a script against the script schema and decodes every
step without applying it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := LoadScript(args[0])
			if err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Script invalid")
				return err
			}

			name := script.Name
			if name == "" {
				name = args[0]
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d steps\n", name, len(script.Steps))
			return nil
		},
	}

	return cmd
}
