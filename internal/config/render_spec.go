// Package config loads render spec files for the promtext CLI. A render spec
// declares metric definitions and the samples to emit, in YAML.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/promtext"
)

// RenderSpec is the top-level document of a render spec file.
type RenderSpec struct {
	Metrics []MetricDef `yaml:"metrics"`
	Samples []Sample    `yaml:"samples"`
}

// MetricDef declares one metric. Type is an exposition type tag and defaults
// to gauge when omitted.
type MetricDef struct {
	Name string `yaml:"name"`
	Help string `yaml:"help"`
	Type string `yaml:"type,omitempty"`
}

// Sample is one observation to append. Labels keep file order; a label with
// no value (or an explicit null) is treated as absent and filtered out.
type Sample struct {
	Metric string      `yaml:"metric"`
	Labels []LabelPair `yaml:"labels,omitempty"`
	Value  any         `yaml:"value"`
}

// LabelPair is an ordered key/value entry. Plain YAML maps would lose
// ordering, so labels are a list of pairs.
type LabelPair struct {
	Key   string `yaml:"key"`
	Value any    `yaml:"value,omitempty"`
}

// Load reads and validates a render spec. A .env file next to the working
// directory is loaded first so spec-adjacent tooling can rely on it; a
// missing .env is not an error.
func Load(path string) (*RenderSpec, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read render spec: %w", err)
	}

	var spec RenderSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse render spec %s: %w", path, err)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("invalid render spec %s: %w", path, err)
	}
	return &spec, nil
}

func (s *RenderSpec) validate() error {
	for i, m := range s.Metrics {
		if m.Name == "" {
			return fmt.Errorf("metrics[%d]: name is required", i)
		}
		if m.Type != "" {
			if _, err := promtext.ParseMetricType(m.Type); err != nil {
				return fmt.Errorf("metrics[%d] (%s): %w", i, m.Name, err)
			}
		}
	}
	for i, sm := range s.Samples {
		if sm.Metric == "" {
			return fmt.Errorf("samples[%d]: metric is required", i)
		}
	}
	return nil
}

// Apply defines every declared metric and appends every sample into g, in
// file order. Samples referencing undeclared metrics surface the generator's
// UndefinedMetricError unchanged.
func (s *RenderSpec) Apply(g *promtext.Generator) error {
	for _, m := range s.Metrics {
		typ := promtext.Gauge
		if m.Type != "" {
			parsed, err := promtext.ParseMetricType(m.Type)
			if err != nil {
				return err
			}
			typ = parsed
		}
		if err := g.Define(m.Name, m.Help, typ); err != nil {
			return err
		}
	}
	for _, sm := range s.Samples {
		labels := make(promtext.LabelSet, 0, len(sm.Labels))
		for _, l := range sm.Labels {
			labels = append(labels, promtext.Label{Key: l.Key, Value: l.Value})
		}
		if err := g.Append(sm.Metric, labels, sm.Value); err != nil {
			return err
		}
	}
	return nil
}
