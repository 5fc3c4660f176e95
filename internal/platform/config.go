package platform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional configuration file at the store root.
const ConfigFile = "jot.yaml"

// SystemDir is the directory, under the store root, holding the data.
const SystemDir = ".jot"

// Config is the content of jot.yaml.
type Config struct {
	Adapter   string       `yaml:"adapter,omitempty"`
	StableIDs bool         `yaml:"stable_ids,omitempty"`
	ReadOnly  bool         `yaml:"read_only,omitempty"`
	Server    ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig is the server section of jot.yaml.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LoadConfig reads jot.yaml from root as a raw map, so that only the keys
// actually present override defaults. A missing file yields a nil map.
func LoadConfig(root string) (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	return m, nil
}

// WriteConfig writes cfg to root/jot.yaml unless the file already exists.
// It reports whether the file was written.
func WriteConfig(root string, cfg Config) (bool, error) {
	path := filepath.Join(root, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return false, fmt.Errorf("encode %s: %w", ConfigFile, err)
	}
	if err := enc.Close(); err != nil {
		return false, err
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", ConfigFile, err)
	}
	return true, nil
}
