package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/scene"
	"github.com/vectorlab/clipedit/internal/session"
)

const (
	// Version is the current version of clipedit
	Version = "0.3.0"

	outputRender = "render"
	outputState  = "state"
)

// Config holds the global flags of the clipedit CLI
type Config struct {
	Debug bool
}

// NewRootCommand creates the root cobra command for clipedit
func NewRootCommand() *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "clipedit",
		Short: "clipedit - 2D vector scene editor with a clip window",
		Long: `clipedit drives the vector scene editor from the command line.
Scripts are YAML files listing the same commands the editor server accepts.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(NewReplayCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewSampleCommand())

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

type drawOptions struct {
	output    string
	color     string
	thickness float64
}

func (o *drawOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", outputRender, "Output: render or state")
	cmd.Flags().StringVar(&o.color, "color", "red", "Default drawing color")
	cmd.Flags().Float64Var(&o.thickness, "thickness", 1.0, "Default line thickness")
}

func (o *drawOptions) engineOptions() (engine.Options, error) {
	if o.output != outputRender && o.output != outputState {
		return engine.Options{}, fmt.Errorf("unknown output %q (want %s or %s)", o.output, outputRender, outputState)
	}
	color, err := scene.ParseColor(o.color)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{Color: color, Thickness: scene.ClampThickness(o.thickness)}, nil
}

func writeOutput(w io.Writer, st *session.State, output string) error {
	var v any
	if output == outputState {
		v = st.Snapshot()
	} else {
		commands, _ := st.Render()
		v = commands
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
