package schemagen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the schema directory and one output directory per target.
type Config struct {
	Schemas    string `yaml:"schemas"`
	TypeScript string `yaml:"typescript"`
	Dart       string `yaml:"dart"`
	Rules      string `yaml:"rules"`
}

func DefaultConfig() Config {
	return Config{
		Schemas:    "schemas",
		TypeScript: filepath.Join("gen", "ts"),
		Dart:       filepath.Join("gen", "dart"),
		Rules:      filepath.Join("gen", "firestore"),
	}
}

// LoadConfig overlays the YAML file at path on the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("parse config %s: %w", path, err)
	}

	return conf, nil
}

type Generator struct {
	conf   Config
	logger *zap.SugaredLogger
}

func NewGenerator(conf Config, logger *zap.SugaredLogger) *Generator {
	return &Generator{conf: conf, logger: logger}
}

func (g *Generator) Config() Config {
	return g.conf
}

// TypeScript writes one .ts file per schema and the index.ts barrel.
func (g *Generator) TypeScript() ([]string, error) {
	files, err := LoadDir(g.conf.Schemas)
	if err != nil {
		return nil, err
	}

	outputs := make(map[string][]byte, len(files)+1)
	order := make([]string, 0, len(files)+1)
	for _, f := range files {
		name := TypeScriptFileName(f.Name)
		outputs[name] = TypeScript(f.Schema, f.Name)
		order = append(order, name)
	}
	outputs["index.ts"] = TypeScriptIndex(files)
	order = append(order, "index.ts")

	return g.write(g.conf.TypeScript, order, outputs)
}

// Dart writes one .dart file per schema and the generated.dart barrel.
func (g *Generator) Dart() ([]string, error) {
	files, err := LoadDir(g.conf.Schemas)
	if err != nil {
		return nil, err
	}

	outputs := make(map[string][]byte, len(files)+1)
	order := make([]string, 0, len(files)+1)
	for _, f := range files {
		name := DartFileName(f.Name)
		outputs[name] = Dart(f.Schema, f.Name)
		order = append(order, name)
	}
	outputs["generated.dart"] = DartBarrel(files)
	order = append(order, "generated.dart")

	return g.write(g.conf.Dart, order, outputs)
}

// Rules writes validation.rules and its README.
func (g *Generator) Rules() ([]string, error) {
	files, err := LoadDir(g.conf.Schemas)
	if err != nil {
		return nil, err
	}

	outputs := map[string][]byte{
		RulesFileName:   Rules(files),
		RulesReadmeName: RulesReadme(files),
	}

	return g.write(g.conf.Rules, []string{RulesFileName, RulesReadmeName}, outputs)
}

// All runs every target, stopping at the first failure.
func (g *Generator) All() error {
	if _, err := g.TypeScript(); err != nil {
		return fmt.Errorf("typescript: %w", err)
	}
	if _, err := g.Dart(); err != nil {
		return fmt.Errorf("dart: %w", err)
	}
	if _, err := g.Rules(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}

func (g *Generator) write(dir string, order []string, outputs map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	written := make([]string, 0, len(order))
	for _, name := range order {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, outputs[name], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		g.logger.Infow("generated", "file", path)
		written = append(written, path)
	}

	return written, nil
}
