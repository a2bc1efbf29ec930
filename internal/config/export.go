package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Export renders the configuration as a YAML config file. Loading the output
// yields an equal configuration.
func (conf *Configuration) Export() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(conf); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
