package pipeline

import (
	"encoding/json"
	"fmt"
)

type stageConfig struct {
	Type   string `json:"type"`
	Tag    string `json:"tag"`
	Params any    `json:"params"`
}

type chainConfig struct {
	Stages []stageConfig `json:"stages"`
}

// ParseJSON decodes a chain description into per-stage parameters.
func ParseJSON(data []byte) ([]Params, error) {
	var cfg chainConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("pipeline: invalid chain json: %w", err)
	}

	params := make([]Params, 0, len(cfg.Stages))
	for _, s := range cfg.Stages {
		num, str := parseParams(s.Params)
		params = append(params, Params{Type: s.Type, Tag: s.Tag, Num: num, Str: str})
	}

	return params, nil
}

// LoadJSON builds a Chain from a JSON description, creating each stage with
// the factory reg holds for its type. A nil reg selects DefaultRegistry.
func LoadJSON(data []byte, reg *Registry, opts ...Option) (*Chain, error) {
	params, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}

	if reg == nil {
		reg = DefaultRegistry()
	}

	c := New(opts...)
	for i, p := range params {
		m, err := reg.Build(p)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %d: %w", i, err)
		}

		if err := c.Append(p.Tag, m); err != nil {
			return nil, err
		}
	}

	return c, nil
}
