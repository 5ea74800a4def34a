// Package model provides data models for the inventory API.
package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// InventoryDocument is the parsed form of an Ansible YAML inventory file.
// Only the all.children section is consumed; host vars and nested children are ignored.
type InventoryDocument struct {
	All *InventoryRoot `yaml:"all"`
}

// InventoryRoot is the "all" group of an inventory.
type InventoryRoot struct {
	Children map[string]*GroupRecord `yaml:"children"`
}

// GroupRecord describes a single inventory group.
type GroupRecord struct {
	Hosts HostList `yaml:"hosts"`
}

// HostNames returns the flattened host identifiers of the group.
// A nil record (a group declared without a body) has no hosts.
func (g *GroupRecord) HostNames() []string {
	if g == nil {
		return nil
	}
	return g.Hosts
}

// HostList is a flat list of host identifiers decoded from a group's hosts field.
//
// Accepted shapes:
//   - a sequence of scalars
//   - a sequence mixing scalars and sequences of scalars (flattened one level)
//   - a mapping of host name to host vars (keys are kept in document order,
//     "<<" merge keys contribute the keys of the merged mappings)
//
// Deeper nesting is rejected.
type HostList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HostList) UnmarshalYAML(value *yaml.Node) error {
	hosts, err := flattenHosts(value)
	if err != nil {
		return err
	}
	*h = hosts
	return nil
}

// flattenHosts reduces a hosts node to a flat list of host identifiers.
func flattenHosts(node *yaml.Node) ([]string, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.SequenceNode:
		hosts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			switch item.Kind {
			case yaml.ScalarNode:
				if isNull(item) {
					continue
				}
				hosts = append(hosts, item.Value)
			case yaml.SequenceNode:
				for _, nested := range item.Content {
					nested = resolveAlias(nested)
					if nested.Kind != yaml.ScalarNode {
						return nil, fmt.Errorf("line %d: hosts nested deeper than one level are not supported", nested.Line)
					}
					if isNull(nested) {
						continue
					}
					hosts = append(hosts, nested.Value)
				}
			default:
				return nil, fmt.Errorf("line %d: unsupported host entry, expected a name or a list of names", item.Line)
			}
		}
		return hosts, nil

	case yaml.MappingNode:
		return mappingHostNames(node)

	case yaml.ScalarNode:
		if isNull(node) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("line %d: hosts must be a list or a mapping, got %q", node.Line, node.Value)

	default:
		return nil, fmt.Errorf("line %d: hosts must be a list or a mapping", node.Line)
	}
}

// mappingHostNames returns the keys of a host mapping. Hosts pulled in
// through a "<<" merge key come first and explicit keys never repeat.
func mappingHostNames(node *yaml.Node) ([]string, error) {
	var merged, explicit []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: host name must be a scalar", key.Line)
		}
		if key.ShortTag() == "!!merge" {
			names, err := mergedHostNames(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			merged = append(merged, names...)
			continue
		}
		explicit = append(explicit, key.Value)
	}
	return uniqueNames(append(merged, explicit...)), nil
}

// mergedHostNames resolves the value of a merge key: a mapping or a list of mappings.
func mergedHostNames(value *yaml.Node) ([]string, error) {
	value = resolveAlias(value)
	switch value.Kind {
	case yaml.MappingNode:
		return mappingHostNames(value)
	case yaml.SequenceNode:
		var names []string
		for _, item := range value.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge key expects a mapping or a list of mappings", item.Line)
			}
			itemNames, err := mappingHostNames(item)
			if err != nil {
				return nil, err
			}
			names = append(names, itemNames...)
		}
		return names, nil
	}
	return nil, fmt.Errorf("line %d: merge key expects a mapping or a list of mappings", value.Line)
}

// uniqueNames keeps the first occurrence of every name.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.ShortTag() == "!!null"
}
