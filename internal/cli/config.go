package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional user configuration, loaded from a TOML file.
// Zero values mean "use the built-in default".
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Serve  ServeConfig  `toml:"serve"`
}

// LayoutConfig overrides layout defaults.
type LayoutConfig struct {
	Orientation       string  `toml:"orientation"`
	ParentChildMargin float64 `toml:"parent_child_margin"`
	PeerMargin        float64 `toml:"peer_margin"`
}

// ServeConfig overrides HTTP service defaults.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfigPath returns the per-user config file location.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; a malformed one is.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// cacheDir returns the per-user cache directory for layout results.
func cacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}
