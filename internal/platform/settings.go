package platform

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Adapter names.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// DefaultAddr is the listen address of `jot serve`.
const DefaultAddr = "127.0.0.1:7474"

// Settings is the resolved configuration of a store: jot.yaml values
// overridden by options.
type Settings struct {
	Adapter     string         `mapstructure:"adapter"`
	AutoInit    bool           `mapstructure:"auto_init"`
	TempDir     bool           `mapstructure:"temp_dir"`
	MustExist   bool           `mapstructure:"must_exist"`
	ReadOnly    bool           `mapstructure:"read_only"`
	DevSafety   bool           `mapstructure:"dev_safety"`
	StableIDs   bool           `mapstructure:"stable_ids"`
	EventBuffer int            `mapstructure:"event_buffer"`
	Server      ServerSettings `mapstructure:"server"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

func defaultSettings() Settings {
	return Settings{
		Adapter:   AdapterFS,
		DevSafety: true,
		Server:    ServerSettings{Addr: DefaultAddr},
	}
}

// decodeSettings layers the option map over the file map and decodes the
// result. Options win over file values.
func decodeSettings(file, opts map[string]any) (Settings, error) {
	merged := make(map[string]any, len(file)+len(opts))
	for k, v := range file {
		merged[k] = v
	}
	for k, v := range opts {
		merged[k] = v
	}

	s := defaultSettings()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(merged); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	switch s.Adapter {
	case AdapterFS, AdapterSQLite, AdapterMemory:
	default:
		return Settings{}, fmt.Errorf("unknown adapter: %s", s.Adapter)
	}
	return s, nil
}
