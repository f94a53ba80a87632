// Package batchconfig loads the YAML batch file consumed by `celmix run`:
// a set of named variable contexts and a set of named expressions, each
// naming which context to evaluate against. Grounded on the pattern of
// decoding a small declarative YAML document straight into plain structs
// (the one custom UnmarshalYAML, on RawValue, only captures context values
// for later conversion), the way config-driven CLIs in the example
// pack do, using gopkg.in/yaml.v3 — an indirect dependency of the teacher
// promoted here to direct use.
package batchconfig

import (
	"fmt"

	"github.com/akashmaji946/go-cel/value"
	"gopkg.in/yaml.v3"
)

// RawValue is a YAML-decodable stand-in for value.Value: YAML's type model
// (scalars, sequences, mappings) maps directly onto CEL's, so contexts are
// decoded into this shape first and converted afterward.
type RawValue struct {
	v any
}

// UnmarshalYAML captures the decoded node as a plain Go any, deferring the
// CEL Value conversion to ToValue.
func (r *RawValue) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	r.v = v
	return nil
}

// ToValue converts the decoded YAML shape into a value.Value, rejecting
// key or element types CEL's value domain does not support.
func (r RawValue) ToValue() (value.Value, error) {
	return toValue(r.v)
}

func toValue(v any) (value.Value, error) {
	switch x := v.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(x), nil
	case int:
		return value.Int(int64(x)), nil
	case int64:
		return value.Int(x), nil
	case float64:
		return value.Double(x), nil
	case string:
		return value.String(x), nil
	case []any:
		elems := make([]value.Value, len(x))
		for i, e := range x {
			elem, err := toValue(e)
			if err != nil {
				return value.Null(), err
			}
			elems[i] = elem
		}
		return value.List(elems), nil
	case map[string]any:
		entries := make(map[value.MapKey]value.Value, len(x))
		for k, e := range x {
			elem, err := toValue(e)
			if err != nil {
				return value.Null(), err
			}
			entries[value.MapKey{Kind: value.KindString, S: k}] = elem
		}
		return value.Map(entries), nil
	default:
		return value.Null(), fmt.Errorf("batchconfig: unsupported YAML value of type %T", v)
	}
}

// Expression names one CEL expression to evaluate and which named context
// to evaluate it against.
type Expression struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"expr"`
	Context string `yaml:"context"`
}

// Document is the top-level shape of a `celmix run` batch file.
type Document struct {
	Contexts    map[string]map[string]RawValue `yaml:"contexts"`
	Expressions []Expression                   `yaml:"expressions"`
}

// Parse decodes a batch document from YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("batchconfig: %w", err)
	}
	return &doc, nil
}

// ResolveContext converts the named raw context into an evaluator-ready
// map of value.Value, or an error if name is not defined in the document.
func (d *Document) ResolveContext(name string) (map[string]value.Value, error) {
	raw, ok := d.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("batchconfig: undefined context %q", name)
	}
	ctx := make(map[string]value.Value, len(raw))
	for k, rv := range raw {
		v, err := rv.ToValue()
		if err != nil {
			return nil, fmt.Errorf("batchconfig: context %q key %q: %w", name, k, err)
		}
		ctx[k] = v
	}
	return ctx, nil
}
