// SPDX-License-Identifier: MPL-2.0

package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runwith/runwith/internal/issue"
	"github.com/runwith/runwith/pkg/cueutil"
	"github.com/runwith/runwith/pkg/runconfig"
)

const (
	// DefaultFileName is the registry file looked up in the project directory.
	DefaultFileName = "runconfigs.cue"

	schemaRoot = "#RunConfigs"
)

//go:embed runconfigs_schema.cue
var schemaBytes []byte

type (
	fileEntry struct {
		Name             string            `json:"name" toml:"name"`
		Type             string            `json:"type" toml:"type"`
		EntryPoint       string            `json:"entry_point,omitempty" toml:"entry_point,omitempty"`
		ProgramArguments string            `json:"program_arguments,omitempty" toml:"program_arguments,omitempty"`
		WorkingDirectory string            `json:"working_directory,omitempty" toml:"working_directory,omitempty"`
		Env              map[string]string `json:"env,omitempty" toml:"env,omitempty"`
		PassParentEnv    bool              `json:"pass_parent_env" toml:"pass_parent_env"`
		Module           string            `json:"module,omitempty" toml:"module,omitempty"`
		Script           string            `json:"script,omitempty" toml:"script,omitempty"`
		Interpreter      string            `json:"interpreter,omitempty" toml:"interpreter,omitempty"`
		Members          []string          `json:"members,omitempty" toml:"members,omitempty"`
	}

	registryFile struct {
		Configurations []fileEntry `json:"configurations" toml:"configurations"`
	}
)

// Load reads a registry file, choosing the decoder by extension (.cue or .toml).
func Load(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load run configurations").
			WithResource(path).
			WithSuggestion("Create a " + DefaultFileName + " file in the project directory").
			WithSuggestion("Pass --registry to point at an existing file").
			Wrap(err).
			BuildError()
	}

	var parsed *registryFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		parsed, err = parseCUE(data, path)
	case ".toml":
		parsed, err = parseTOML(data, path)
	default:
		err = fmt.Errorf("unsupported registry file extension %q (want .cue or .toml)", ext)
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse run configurations").
			WithResource(path).
			WithSuggestion("Check the file against the documented runconfigs schema").
			Wrap(err).
			BuildError()
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registry directory: %w", err)
	}
	return parsed.build(baseDir)
}

// parseCUE validates CUE registry data against the embedded schema.
func parseCUE(data []byte, filename string) (*registryFile, error) {
	result, err := cueutil.ParseAndDecode[registryFile](schemaBytes, data, schemaRoot, cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// parseTOML decodes TOML registry data and validates it against the same
// schema as the CUE format. JSON is valid CUE, so the decoded document is
// re-encoded as JSON before unification.
func parseTOML(data []byte, filename string) (*registryFile, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to re-encode TOML document: %w", filename, err)
	}
	return parseCUE(asJSON, filename)
}

func (f *registryFile) build(baseDir string) (*Memory, error) {
	configs := make([]runconfig.Configuration, 0, len(f.Configurations))
	for _, e := range f.Configurations {
		cfg, err := e.toConfiguration(baseDir)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return NewMemory(configs...)
}

func (e fileEntry) toConfiguration(baseDir string) (runconfig.Configuration, error) {
	typ, err := runconfig.ParseTypeID(e.Type)
	if err != nil {
		return nil, fmt.Errorf("configuration %q: %w", e.Name, err)
	}
	workDir := resolveDir(baseDir, e.WorkingDirectory)

	switch typ {
	case runconfig.TypeApplication:
		return &runconfig.ApplicationConfiguration{
			ConfigName:       e.Name,
			EntryPoint:       e.EntryPoint,
			Arguments:        e.ProgramArguments,
			WorkingDirectory: workDir,
			Env:              e.Env,
			PassParentEnv:    e.PassParentEnv,
			Module:           e.Module,
		}, nil
	case runconfig.TypeScript:
		return &runconfig.ScriptConfiguration{
			ConfigName: e.Name,
			Opts: &runconfig.ScriptOptions{
				Script:           e.Script,
				Interpreter:      e.Interpreter,
				Arguments:        e.ProgramArguments,
				WorkingDirectory: workDir,
				Env:              e.Env,
			},
		}, nil
	default:
		return &runconfig.CompoundConfiguration{ConfigName: e.Name, Members: e.Members}, nil
	}
}

// resolveDir anchors a relative working directory at the registry file's
// directory. An empty value means the registry directory itself.
func resolveDir(baseDir, dir string) string {
	if dir == "" {
		return baseDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}
