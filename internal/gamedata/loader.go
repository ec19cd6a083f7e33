package gamedata

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	return decode[T](filename, content)
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// decode unmarshals content as YAML when filename has a .yaml/.yml
// extension and as JSON otherwise.
func decode[T any](filename string, content []byte) (T, error) {
	var result T

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &result); err != nil {
			return result, fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(content, &result); err != nil {
			return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
		}
	}

	return result, nil
}
