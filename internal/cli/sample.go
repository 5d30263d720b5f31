package cli

import (
	"github.com/spf13/cobra"

	"github.com/vectorlab/clipedit/internal/session"
	"github.com/vectorlab/clipedit/internal/typeid"
)

// NewSampleCommand creates the sample command
func NewSampleCommand() *cobra.Command {
	var opts drawOptions

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engineOpts, err := opts.engineOptions()
			if err != nil {
				return err
			}

			st := session.NewState(typeid.NewSessionID(), engineOpts)
			if _, err := st.Apply(session.Command{Type: session.CmdSceneSample}); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), st, opts.output)
		},
	}

	opts.bind(cmd)
	return cmd
}
