package cassette

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config declares, per port, an optional cassette file path to replay from.
type Config struct {
	Clock  string
	FS     string
	Git    string
	Shell  string
	IDGen  string
	LLM    string
	Issues string
}

// PanicOnUnspecified returns a Config with every port unset, so that
// ReplayingFrom installs a panicking stub for every port.
func PanicOnUnspecified() *Config {
	return &Config{}
}

// Replayers holds one optional replayer per port, resolved from a Config.
type Replayers struct {
	Clock  *Replayer
	FS     *Replayer
	Git    *Replayer
	Shell  *Replayer
	IDGen  *Replayer
	LLM    *Replayer
	Issues *Replayer
}

// LoadCassette reads and parses a single cassette file from disk.
func LoadCassette(path string) (*Cassette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cassette %s: %w", path, err)
	}

	var c Cassette
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse cassette %s: %w", path, err)
	}

	return &c, nil
}

// LoadMonolithic loads a single cassette file and returns one replayer
// shared by every port. Per-(port,method) queueing inside the replayer
// keeps each port's stream independent even though the replayer instance
// is shared.
func LoadMonolithic(path string) (*Replayer, error) {
	c, err := LoadCassette(path)
	if err != nil {
		return nil, err
	}
	return NewReplayer(c), nil
}

func loadPortCassette(path string) (*Replayer, error) {
	return LoadMonolithic(path)
}

// LoadAll resolves every configured port path into its own replayer,
// leaving unconfigured ports as nil. servicecontext.ReplayingFrom installs a
// panicking stub for every nil slot.
func (cfg *Config) LoadAll() (*Replayers, error) {
	result := &Replayers{}

	load := func(path string) (*Replayer, error) {
		if path == "" {
			return nil, nil
		}
		return loadPortCassette(path)
	}

	var err error
	if result.Clock, err = load(cfg.Clock); err != nil {
		return nil, fmt.Errorf("failed to load clock cassette: %w", err)
	}
	if result.FS, err = load(cfg.FS); err != nil {
		return nil, fmt.Errorf("failed to load fs cassette: %w", err)
	}
	if result.Git, err = load(cfg.Git); err != nil {
		return nil, fmt.Errorf("failed to load git cassette: %w", err)
	}
	if result.Shell, err = load(cfg.Shell); err != nil {
		return nil, fmt.Errorf("failed to load shell cassette: %w", err)
	}
	if result.IDGen, err = load(cfg.IDGen); err != nil {
		return nil, fmt.Errorf("failed to load id_gen cassette: %w", err)
	}
	if result.LLM, err = load(cfg.LLM); err != nil {
		return nil, fmt.Errorf("failed to load llm cassette: %w", err)
	}
	if result.Issues, err = load(cfg.Issues); err != nil {
		return nil, fmt.Errorf("failed to load issues cassette: %w", err)
	}

	return result, nil
}
