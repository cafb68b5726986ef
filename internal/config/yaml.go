package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.yaml"

// File is the typed view of the persisted configuration. Headers keeps its
// raw shape (object, string or array) for NormalizeHeaders.
type File struct {
	Hostname   string `mapstructure:"hostname"`
	Token      string `mapstructure:"token"`
	DateFormat string `mapstructure:"dateFormat"`
	Headers    any    `mapstructure:"headers"`
}

// Store reads and writes the YAML config file. JSON files are accepted as
// well since YAML is a superset of JSON.
type Store struct {
	fs   afero.Fs
	path string
}

// DefaultPath returns <user config dir>/ppls/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "ppls", FileName), nil
}

// NewStore returns a Store for the config file at path on fsys.
func NewStore(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *Store) Exists() (bool, error) {
	ok, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, fmt.Errorf("access config at %s: %w", s.path, err)
	}
	return ok, nil
}

// Load reads the config file into a map. A missing file yields an empty map.
func (s *Store) Load() (map[string]any, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read config at %s: %w", s.path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("read config at %s: %w", s.path, err)
	}
	m, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config at %s must be a mapping of keys to values", s.path)
	}
	return m, nil
}

// Get returns the value stored under key. A missing key yields an error
// wrapping ErrNotFound.
func (s *Store) Get(key string) (any, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	v, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("config key %s: %w", key, ErrNotFound)
	}
	return v, nil
}

// Save writes data to the config file, creating the directory if needed.
// The file holds an API token so it is only readable by the owner.
func (s *Store) Save(data map[string]any) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, out, 0600); err != nil {
		return fmt.Errorf("write config at %s: %w", s.path, err)
	}
	return nil
}

// DefaultFileData is written by "config init".
func DefaultFileData() map[string]any {
	return map[string]any{
		"hostname":   "https://paperless.example.com",
		"token":      "your-api-token-here",
		"dateFormat": DefaultDateFormat,
		"headers": map[string]any{
			"Custom-Header": "value",
		},
	}
}

// DecodeFile converts a loaded config map into a File. Scalars are coerced
// to strings so that e.g. a numeric token still resolves.
func DecodeFile(data map[string]any) (*File, error) {
	var f File
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(data); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	f.Hostname = strings.TrimSpace(f.Hostname)
	f.Token = strings.TrimSpace(f.Token)
	f.DateFormat = strings.TrimSpace(f.DateFormat)
	return &f, nil
}

// ParseValue interprets a value typed on the command line for "config set".
// Surrounding quotes are stripped and JSON objects or arrays are decoded.
func ParseValue(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		}
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
			return nil, fmt.Errorf("invalid JSON value: %w", err)
		}
		return v, nil
	}
	return trimmed, nil
}
