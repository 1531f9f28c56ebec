package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Default file names inside a config directory
const (
	MovesFile  = "moves.json"
	EngineFile = "engine.ini"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Moves  *MovesConfig
	Engine *EngineConfig
	Stage  *StageConfig
}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadMoves loads a move table. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func (l *Loader) LoadMoves(name string) (*MovesConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var cfg MovesConfig
	switch path.Ext(name) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadEngine loads engine.ini
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	data, err := fs.ReadFile(l.fsys, EngineFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", EngineFile, err)
	}

	cfg, err := ParseEngine(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", EngineFile, err)
	}

	return cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	p := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads the default move table, the engine settings and a stage
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	moves, err := l.LoadMoves(MovesFile)
	if err != nil {
		return nil, err
	}

	engine, err := l.LoadEngine()
	if err != nil {
		return nil, err
	}

	stageCfg, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Moves:  moves,
		Engine: engine,
		Stage:  stageCfg,
	}, nil
}
