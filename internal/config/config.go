package config

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/nickagliano/hookplayer/internal/branding"
	"github.com/nickagliano/hookplayer/internal/errors"
	"github.com/nickagliano/hookplayer/internal/logging"
	"github.com/nickagliano/hookplayer/internal/platform"
)

const (
	fileName = "config"
	fileType = "toml"

	keyDelimiter = "::"

	// DefaultVolume is used when the file has no volume key.
	DefaultVolume = 0.5
)

// Keys.
const (
	KeySoundsDir   = "sounds_dir"
	KeyVolume      = "volume"
	KeyRegistryURL = "registry_url"
	KeyMirror      = "mirror"
	KeyEvents      = "events"
	KeyCategories  = "categories"
)

// Config is the decoded settings file.
type Config struct {
	SoundsDir   string              `mapstructure:"sounds_dir"`
	Volume      float64             `mapstructure:"volume"`
	RegistryURL string              `mapstructure:"registry_url"`
	Mirror      string              `mapstructure:"mirror"`
	Events      map[string][]string `mapstructure:"events"`
	Categories  map[string]string   `mapstructure:"categories"`
}

// DefaultSoundsDir returns the unexpanded default sounds directory.
func DefaultSoundsDir() string {
	return "~/" + filepath.ToSlash(filepath.Join(branding.ConfigDir(), "sounds"))
}

// Path returns the config file location. A non-empty override (the value
// of HOOKPLAYER_CONFIG) wins; "~/" in it is expanded against home.
func Path(override, home string) string {
	if override != "" {
		return platform.ExpandHome(override, home)
	}
	return filepath.Join(home, branding.ConfigDir(), fileName+"."+fileType)
}

// ResolveSoundsDir picks the effective sounds directory: envOverride (the
// value of HOOKPLAYER_SOUNDS_DIR) if set, else stored, else the default.
// A leading "~" is expanded against home.
func ResolveSoundsDir(stored, envOverride, home string) string {
	dir := stored
	if envOverride != "" {
		dir = envOverride
	}
	if dir == "" {
		dir = DefaultSoundsDir()
	}
	return platform.ExpandHome(dir, home)
}

// Store is a loaded config file. Writes go straight to disk.
type Store struct {
	path string
	v    *viper.Viper
	cfg  Config
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType(fileType)
	return v
}

// Load reads the config file at path. A missing file yields defaults; a
// file that exists but cannot be parsed is an error.
func Load(path string) (*Store, error) {
	v := newViper()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "reading config %s", path)
		}
		if err := checkCategoryKeys(path); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrIO, "reading config %s", path)
	} else {
		logger := logging.GetLogger("config")
		logger.Debug().Str("path", path).Msg("no config file, using defaults")
	}

	s := &Store{path: path, v: v}
	if err := s.decode(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkCategoryKeys rejects [categories] keys with uppercase letters. viper
// folds keys to lower case, so "Task.Complete" would otherwise load as
// "task.complete" without notice.
func checkCategoryKeys(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "reading config %s", path)
	}
	var raw struct {
		Categories map[string]any `toml:"categories"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, errors.ErrParse, "reading config %s", path)
	}
	keys := slices.Sorted(maps.Keys(raw.Categories))
	for _, key := range keys {
		if key != strings.ToLower(key) {
			return errors.Newf(errors.ErrInvalidInput,
				"category %q in [categories] of %s must be lower case (did you mean %q?)", key, path, strings.ToLower(key))
		}
	}
	return nil
}

func (s *Store) decode() error {
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return errors.Wrapf(err, errors.ErrParse, "decoding config %s", s.path)
	}
	if !s.v.IsSet(KeyVolume) {
		cfg.Volume = DefaultVolume
	}
	cfg.Volume = ClampVolume(cfg.Volume)
	if cfg.Events == nil {
		cfg.Events = map[string][]string{}
	}
	if cfg.Categories == nil {
		cfg.Categories = map[string]string{}
	}
	s.cfg = cfg
	return nil
}

// ClampVolume limits v to [0, 1].
func ClampVolume(v float64) float64 {
	return max(0, min(1, v))
}

// Path returns the file this store reads and writes.
func (s *Store) Path() string { return s.path }

// Config returns a copy of the current settings.
func (s *Store) Config() Config {
	c := s.cfg
	c.Events = maps.Clone(s.cfg.Events)
	c.Categories = maps.Clone(s.cfg.Categories)
	return c
}

// SetEvents replaces the whole [events] table and saves the file. Events
// absent from m are removed.
func (s *Store) SetEvents(m map[string][]string) error {
	events := make(map[string]any, len(m))
	for name, sounds := range m {
		events[name] = append([]string{}, sounds...)
	}
	return s.write(KeyEvents, events)
}

// SetSoundsDir stores dir as sounds_dir and saves the file.
func (s *Store) SetSoundsDir(dir string) error {
	return s.write(KeySoundsDir, dir)
}

// SetVolume stores a clamped volume and saves the file.
func (s *Store) SetVolume(vol float64) error {
	return s.write(KeyVolume, ClampVolume(vol))
}

// Settable lists the scalar keys Set and Get accept.
var Settable = []string{KeySoundsDir, KeyVolume, KeyRegistryURL, KeyMirror}

// Get returns the stored value of a scalar key as text.
func (s *Store) Get(key string) (string, error) {
	switch key {
	case KeySoundsDir:
		return s.cfg.SoundsDir, nil
	case KeyVolume:
		return strconv.FormatFloat(s.cfg.Volume, 'g', -1, 64), nil
	case KeyRegistryURL:
		return s.cfg.RegistryURL, nil
	case KeyMirror:
		return s.cfg.Mirror, nil
	}
	return "", unknownKey(key)
}

// Set parses raw for a scalar key and saves the file.
func (s *Store) Set(key, raw string) error {
	switch key {
	case KeyVolume:
		vol, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid volume %q", raw)
		}
		return s.SetVolume(vol)
	case KeySoundsDir, KeyRegistryURL, KeyMirror:
		return s.write(key, raw)
	}
	return unknownKey(key)
}

func unknownKey(key string) error {
	return errors.Newf(errors.ErrInvalidInput, "unknown config key %q (valid keys: %s)", key, strings.Join(Settable, ", "))
}

// write replaces key in a fresh viper instance built from the current
// settings, so table values are replaced rather than merged.
func (s *Store) write(key string, value any) error {
	next := newViper()
	for k, val := range s.v.AllSettings() {
		if k == key {
			continue
		}
		next.Set(k, val)
	}
	next.Set(key, value)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating config directory %s", dir)
	}
	if err := next.WriteConfigAs(s.path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "writing config file %s", s.path)
	}

	next.SetConfigFile(s.path)
	s.v = next
	return s.decode()
}
