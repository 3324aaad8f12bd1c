package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ipcbus/endpoint"
)

// unixPathMax is a conservative bound on sun_path; longer socket paths fail
// to bind on every supported platform.
const unixPathMax = 100

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the msglog configuration shared by daemon and CLI.
type Config struct {
	// Socket is the endpoint name. A leading '@' selects the abstract
	// namespace; anything else is a filesystem path.
	Socket string `toml:"socket"`
	// DataDir holds the journal database, the daemon lock file, and the
	// daemon log.
	DataDir string  `toml:"data_dir"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: Logging{Level: "info", Format: "auto"},
	}
}

// DefaultPath returns the expected config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "msglog", "config.toml"), nil
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields defaults. Returns the config, the resolved
// path, and whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolvePath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolvePath(path string) (string, bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return "", false, err
		}
		path = def
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", path)
	}
	return path, true, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.DataDir) == "" {
		base, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		c.DataDir = filepath.Join(base, ".local", "share", "msglog")
	}
	c.DataDir = expandHome(c.DataDir)

	c.Socket = strings.TrimSpace(c.Socket)
	if c.Socket == "" {
		c.Socket = endpoint.Path("", "msglogd.sock")
	} else if !endpoint.IsAbstract(c.Socket) {
		c.Socket = expandHome(c.Socket)
	}
	return nil
}

// Validate rejects configurations that cannot work at runtime.
func (c *Config) Validate() error {
	if !endpoint.IsAbstract(c.Socket) {
		if !filepath.IsAbs(c.Socket) {
			return fmt.Errorf("socket %q must be an absolute path or an @name", c.Socket)
		}
		if len(c.Socket) > unixPathMax {
			return fmt.Errorf("socket path %q exceeds %d bytes", c.Socket, unixPathMax)
		}
	}
	if endpoint.IsAbstract(c.Socket) && !endpoint.Supports().Namespaced {
		return fmt.Errorf("socket %q uses the abstract namespace, unsupported on this platform", c.Socket)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the data directory if needed.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}
	return nil
}

// JournalPath returns the SQLite database location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.DataDir, "journal.db")
}

// LockPath returns the daemon single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "msglogd.lock")
}

// LogPath returns the daemon log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "msglogd.log")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
