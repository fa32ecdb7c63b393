// Package config loads the optional testnetlist configuration file.
//
// The file only overrides the fixed classification columns of the output;
// input discovery, output naming and the delimiter are not configurable.
//
//	# testnetlist.toml
//	[classification]
//	tp_type = "SMT"
//	probe_size = "75 mil"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	nlerrors "github.com/OpenTraceLab/testnetlist/pkg/errors"
	"github.com/OpenTraceLab/testnetlist/pkg/netlist"
)

// DefaultInputFolder is scanned when no input folder is given.
const DefaultInputFolder = "sample_data"

// FileNames are looked up, in order, in the input folder.
var FileNames = []string{"testnetlist.toml", "testnetlist.yaml", "testnetlist.yml"}

// Config is the resolved configuration of a run.
type Config struct {
	Classification netlist.Classification `toml:"classification" yaml:"classification"`

	// Path is the file the configuration was read from, "" for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Classification: netlist.DefaultClassification()}
}

// Load reads path on top of the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nlerrors.Wrap(nlerrors.ErrCodeInvalidConfig, err, "cannot read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, nlerrors.New(nlerrors.ErrCodeInvalidConfig, "unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return Default(), nlerrors.Wrap(nlerrors.ErrCodeInvalidConfig, err, "cannot parse config %s", path)
	}

	cfg.Path = path
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the first of FileNames found
// in dir, otherwise the defaults.
func Resolve(explicit, dir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
