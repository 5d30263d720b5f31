package cli

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/session"
	"github.com/vectorlab/clipedit/internal/typeid"
)

//go:embed schema/script.json
var scriptSchema []byte

// Script is a recorded sequence of editor commands.
type Script struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Steps       []session.Command `yaml:"steps"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript validates YAML bytes against the script schema and decodes
// them.
func ParseScript(data []byte) (*Script, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("empty script")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script YAML: %w", err)
	}
	if err := validateAgainstSchema(doc); err != nil {
		return nil, err
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

func validateAgainstSchema(doc any) error {
	schemaLoader := gojsonschema.NewBytesLoader(scriptSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Replay applies every step of the script to a fresh session and returns it.
func (s *Script) Replay(opts engine.Options) (*session.State, error) {
	st := session.NewState(typeid.NewSessionID(), opts)
	for i, cmd := range s.Steps {
		if _, err := st.Apply(cmd); err != nil {
			return st, fmt.Errorf("step %d (%s): %w", i+1, cmd.Type, err)
		}
	}
	return st, nil
}
