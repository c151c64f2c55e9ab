package promtext

import (
	"fmt"
	"strings"
)

// definition is the stored help/type pair for one metric name.
type definition struct {
	help string
	typ  MetricType
}

// Generator owns metric definitions, an append-only exposition buffer, and
// the set of names whose HELP/TYPE header is already in the current buffer.
// Not safe for concurrent use; one goroutine owns one Generator.
type Generator struct {
	defs    map[string]definition
	lines   []string
	emitted map[string]struct{}
}

// NewGenerator returns an empty Generator with no definitions and an empty
// buffer.
func NewGenerator() *Generator {
	return &Generator{
		defs:    make(map[string]definition),
		emitted: make(map[string]struct{}),
	}
}

// SampleOptions configures the composite operations DefineAndFormat and
// AppendWithDefine. The zero Type is Gauge; nil Labels means no label block.
type SampleOptions struct {
	Labels LabelSet
	Type   MetricType
	Value  any
}

// Define registers help text and type for name, overwriting any previous
// definition (last write wins, no merge). Invalid types leave the existing
// definition untouched.
func (g *Generator) Define(name, help string, typ MetricType) error {
	if !typ.valid() {
		return &InvalidMetricTypeError{Value: typ.String(), Valid: ValidMetricTypes()}
	}
	g.defs[name] = definition{help: help, typ: typ}
	return nil
}

// Defined reports whether name has a stored definition.
func (g *Generator) Defined(name string) bool {
	_, ok := g.defs[name]
	return ok
}

func (g *Generator) lookup(name string) (definition, error) {
	def, ok := g.defs[name]
	if !ok {
		return definition{}, &UndefinedMetricError{Name: name}
	}
	return def, nil
}

// sampleLine assumes name is defined and renders `name{labels} value`.
func sampleLine(name string, labels LabelSet, value any) string {
	return name + labels.render() + " " + fmt.Sprint(value)
}

func helpLine(name, help string) string {
	return "# HELP " + name + " " + help
}

func typeLine(name string, typ MetricType) string {
	return "# TYPE " + name + " " + typ.String()
}

// FormatSample renders a single sample line for an already-defined metric.
// The value is stringified with its default conversion and never validated,
// so NaN and infinities render as-is. Pure: no buffer mutation.
func (g *Generator) FormatSample(name string, labels LabelSet, value any) (string, error) {
	if _, err := g.lookup(name); err != nil {
		return "", err
	}
	return sampleLine(name, labels, value), nil
}

// FormatWithHeader renders the HELP and TYPE lines followed by the sample
// line, newline-joined. The header is always included; buffer state is not
// consulted or modified.
func (g *Generator) FormatWithHeader(name string, labels LabelSet, value any) (string, error) {
	def, err := g.lookup(name)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		helpLine(name, def.help),
		typeLine(name, def.typ),
		sampleLine(name, labels, value),
	}, "\n"), nil
}

// DefineAndFormat (re)defines name and renders the three-line header+sample
// string. Unlike AppendWithDefine it always overwrites the definition, so
// later calls see the freshest help/type.
func (g *Generator) DefineAndFormat(name, help string, opts SampleOptions) (string, error) {
	if err := g.Define(name, help, opts.Type); err != nil {
		return "", err
	}
	return g.FormatWithHeader(name, opts.Labels, opts.Value)
}

// Append adds a sample line to the buffer. The first time name is appended
// within the current buffer lifetime its HELP/TYPE header pair is written
// first; subsequent appends emit only the sample line. On error the buffer
// is left untouched.
func (g *Generator) Append(name string, labels LabelSet, value any) error {
	def, err := g.lookup(name)
	if err != nil {
		return err
	}
	if _, ok := g.emitted[name]; !ok {
		g.lines = append(g.lines, helpLine(name, def.help), typeLine(name, def.typ))
		g.emitted[name] = struct{}{}
	}
	g.lines = append(g.lines, sampleLine(name, labels, value))
	return nil
}

// AppendWithDefine defines name only when it has no definition yet (an
// existing definition is left untouched), then appends like Append.
func (g *Generator) AppendWithDefine(name, help string, opts SampleOptions) error {
	if !g.Defined(name) {
		if err := g.Define(name, help, opts.Type); err != nil {
			return err
		}
	}
	return g.Append(name, opts.Labels, opts.Value)
}

// Output returns the buffered lines joined by newlines, in append order,
// with no trailing newline. Pure read.
func (g *Generator) Output() string {
	return strings.Join(g.lines, "\n")
}

// Len returns the number of buffered lines.
func (g *Generator) Len() int {
	return len(g.lines)
}

// Clear empties the buffer and the header-emitted set together. Definitions
// survive, so previously defined metrics can be appended again and their
// header re-emits exactly once in the new buffer lifetime.
func (g *Generator) Clear() {
	g.lines = nil
	g.emitted = make(map[string]struct{})
}
