// Package config loads a project's starling.toml: its source root, default
// pipeline stage, and diagnostic verbosity.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the config file a project root is searched for.
const FileName = "starling.toml"

// Project is a project's resolved configuration.
type Project struct {
	SourceRoot string
	Stage      string
	Verbosity  string
}

// tomlProject mirrors Project's TOML encoding. Its tags never leak onto the
// exported struct -- Load copies field-by-field after decoding,
// following `mods.LoadModule`'s shape.
type tomlProject struct {
	SourceRoot string `toml:"source-root"`
	Stage      string `toml:"stage"`
	Verbosity  string `toml:"verbosity"`
}

var validStages = map[string]bool{
	"parse": true, "collate": true, "model": true, "guard": true, "graph": true,
}

var validVerbosities = map[string]bool{
	"silent": true, "error": true, "warning": true, "verbose": true,
}

// Load reads starling.toml from dir, defaulting Stage to "graph" and
// Verbosity to "warning" when the file omits them.
func Load(dir string) (*Project, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tp := &tomlProject{}
	if err := toml.Unmarshal(buf, tp); err != nil {
		return nil, err
	}

	proj := &Project{
		SourceRoot: tp.SourceRoot,
		Stage:      tp.Stage,
		Verbosity:  tp.Verbosity,
	}
	if proj.SourceRoot == "" {
		proj.SourceRoot = dir
	}
	if proj.Stage == "" {
		proj.Stage = "graph"
	}
	if proj.Verbosity == "" {
		proj.Verbosity = "warning"
	}

	if !validStages[proj.Stage] {
		return nil, fmt.Errorf("config: %q is not a valid stage (parse/collate/model/guard/graph)", proj.Stage)
	}
	if !validVerbosities[proj.Verbosity] {
		return nil, fmt.Errorf("config: %q is not a valid verbosity (silent/error/warning/verbose)", proj.Verbosity)
	}

	return proj, nil
}

// Default returns a Project with every field at its default, for callers
// that run without a starling.toml on disk (the CLI falls back to this
// when -C names a directory with no config file).
func Default(sourceRoot string) *Project {
	return &Project{SourceRoot: sourceRoot, Stage: "graph", Verbosity: "warning"}
}
