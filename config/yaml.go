package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDoc mirrors Config's fields under the lowercase keys spec.md §6
// recognizes. return_type is a plain string on the wire so an unrecognized
// value can be reported as a validation error rather than a decode error.
type yamlDoc struct {
	Iterations        int     `yaml:"iterations"`
	C                 float64 `yaml:"c"`
	Gamma             float64 `yaml:"gamma"`
	MaxSteps          int     `yaml:"max_steps"`
	ReturnType        string  `yaml:"return_type"`
	FixedHorizonSteps int     `yaml:"fixed_horizon_steps"`
}

// LoadYAML reads and parses a Config from the named file. Only the six keys
// in spec.md §6 are recognized; any other key fails parsing.
func LoadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &IoError{Path: path, Detail: err.Error(), Err: err}
	}
	return ParseYAML(data)
}

// ParseYAML parses a Config from YAML text already in memory.
func ParseYAML(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc yamlDoc
	if err := dec.Decode(&doc); err != nil {
		return Config{}, &YamlError{Detail: err.Error(), Err: err}
	}

	returnType, ok := parseReturnType(doc.ReturnType)
	if !ok {
		return Config{}, &InvalidError{Field: "return_type", Detail: fmt.Sprintf("unrecognized value %q", doc.ReturnType)}
	}

	return New(doc.Iterations, doc.C, doc.Gamma, doc.MaxSteps, returnType, doc.FixedHorizonSteps)
}

// ToYAML renders the config back to the same six-key wire format
// LoadYAML/ParseYAML accept, so that parsing a Config's own serialization
// round-trips to an equal Config (spec.md §8). Named ToYAML rather than
// MarshalYAML since its signature does not match yaml.Marshaler.
func (c Config) ToYAML() ([]byte, error) {
	doc := yamlDoc{
		Iterations:        c.Iterations,
		C:                 c.C,
		Gamma:             c.Gamma,
		MaxSteps:          c.MaxSteps,
		ReturnType:        c.ReturnType.String(),
		FixedHorizonSteps: c.FixedHorizonSteps,
	}
	return yaml.Marshal(doc)
}
