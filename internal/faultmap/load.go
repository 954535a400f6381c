package faultmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the builtin table merged with entries from a YAML override
// file. Overrides win on key collision. An empty path returns the builtin
// table unchanged.
//
// Override file format:
//
//	curing_temperature_excessive:
//	  skills: [tire_curing_press, temperature_control]
//	  parts: [TCP-HTR-4KW]
func Load(path string) (Map, error) {
	m := Builtin()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fault map: %w", err)
	}

	var overrides Map
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse fault map %s: %w", path, err)
	}

	for faultType, req := range overrides {
		m[faultType] = req
	}
	return m, nil
}
