package scan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile loads an audit profile from a YAML file. Returns nil Profile
// and nil error if path is empty.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}
	return &p, nil
}
