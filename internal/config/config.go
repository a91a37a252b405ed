// Package config loads the optional flux.yaml project file that supplies
// defaults for the CLI's overflow_check flag and its diagnostic coloring.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the shape of flux.yaml. Both fields are optional; an absent file
// leaves every field at its zero value, and the CLI then uses its
// -overflow-check flag (false unless given).
type File struct {
	OverflowCheck *bool `yaml:"overflow_check"`
	Color         *bool `yaml:"color"`
}

// Load reads flux.yaml from dir, returning a zero-value File (not an
// error) if it doesn't exist.
func Load(dir string) (*File, error) {
	data, err := os.ReadFile(dir + "/flux.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
