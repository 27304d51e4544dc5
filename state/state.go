// Package state persists the OSC destination configuration, either as the
// blob a host hands back on session restore or as a settings file for the
// standalone bridge. Documents are validated against a schema before use;
// anything malformed falls back to the defaults, since restoring state must
// never be fatal.
package state

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/leozimmerman/dawInfoSender/oscout"
)

// Settings is the persisted OSC destination.
type Settings struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	NamespaceID string `json:"id"`
}

//go:embed settings.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("settings.schema.json", schemaJSON)

// Default returns the out-of-the-box destination.
func Default() Settings {
	return Settings{
		Host:        oscout.DefaultHost,
		Port:        oscout.DefaultPort,
		NamespaceID: oscout.DefaultNamespaceID,
	}
}

// Encode serializes s for persistence.
func Encode(s Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	return data, errors.Wrap(err, "encoding settings")
}

// Decode parses a persisted settings document. Malformed or non-conforming
// input yields the defaults.
func Decode(data []byte) Settings {
	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return Default()
	}
	if err := schema.Validate(payload); err != nil {
		return Default()
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Default()
	}
	return s
}

// DefaultPath returns the settings file used by the standalone bridge.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locating home directory")
	}
	return filepath.Join(home, ".config", "dawosc", "settings.json"), nil
}

// Load reads settings from path. A missing or malformed file yields the
// defaults; only filesystem errors other than absence are reported.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), errors.Wrap(err, "reading settings")
	}
	return Decode(data), nil
}

// Save writes settings to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "writing settings")
}
