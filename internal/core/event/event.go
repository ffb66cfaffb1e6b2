// Package event models function trigger declarations and their
// normalization into the flat record shape the cluster controller consumes.
// This is part of the Functional Core - all functions are pure with no I/O.
package event

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Event Kinds
// =============================================================================

const (
	// KindTrigger is a message-bus trigger subscription.
	KindTrigger = "trigger"

	// KindSchedule is a cron-style schedule expression.
	KindSchedule = "schedule"
)

// =============================================================================
// Declaration
// =============================================================================

// Declaration is a single event entry from the service manifest. In YAML it
// is a mapping with exactly one key; the key names the event kind and the
// value carries the kind-specific payload. The union is discriminated here,
// at decode time, rather than inspected ad hoc by consumers.
type Declaration struct {
	// Kind is the event kind tag (the mapping's single key).
	Kind string

	// Value is the raw payload as declared.
	Value any

	// Fields holds the payload's entries when the payload is itself a
	// mapping. Nil for scalar payloads.
	Fields map[string]any
}

// UnmarshalYAML decodes a single-key event mapping into a Declaration.
func (d *Declaration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("event declaration must be a mapping, got %s", nodeKind(node))
	}
	if len(node.Content) != 2 {
		return fmt.Errorf("event declaration must have exactly one key, got %d", len(node.Content)/2)
	}

	if err := node.Content[0].Decode(&d.Kind); err != nil {
		return fmt.Errorf("decode event kind: %w", err)
	}

	payload := node.Content[1]
	if err := payload.Decode(&d.Value); err != nil {
		return fmt.Errorf("decode %s event payload: %w", d.Kind, err)
	}
	if fields, ok := d.Value.(map[string]any); ok {
		d.Fields = fields
	}
	return nil
}

// MarshalYAML renders the declaration back to its single-key form.
func (d Declaration) MarshalYAML() (any, error) {
	return map[string]any{d.Kind: d.Value}, nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "document"
	}
}

// =============================================================================
// Normalization
// =============================================================================

// Normalized is the uniform {type, ...payload} record submitted to the
// cluster controller.
type Normalized map[string]any

// Type returns the event kind recorded on the normalized record.
func (n Normalized) Type() string {
	t, _ := n["type"].(string)
	return t
}

// Normalize maps declared events into their normalized shape, preserving the
// declared order. Trigger and schedule payloads stay nested under their kind
// key; every other kind has its payload fields spread at the top level. The
// asymmetry matches what the downstream consumers of each kind expect - do
// not unify it.
//
// Unknown kinds are never dropped; they pass through with type set to the
// declared kind.
func Normalize(decls []Declaration) []Normalized {
	out := make([]Normalized, 0, len(decls))
	for _, d := range decls {
		n := Normalized{}
		switch d.Kind {
		case KindTrigger:
			n[KindTrigger] = d.Value
		case KindSchedule:
			n[KindSchedule] = d.Value
		default:
			if d.Fields != nil {
				for k, v := range d.Fields {
					n[k] = v
				}
			} else if d.Value != nil {
				// Scalar payload on an unknown kind has nothing to
				// spread; keep it under the kind key.
				n[d.Kind] = d.Value
			}
		}
		n["type"] = d.Kind
		out = append(out, n)
	}
	return out
}
