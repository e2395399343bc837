// Package document renders ordered key-value documents as YAML.
//
// Keys keep insertion order. A field whose value is absent (nil, or a nil
// pointer, map or slice) is left out of the output entirely rather than
// being written as null.
package document

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

// Field is one key of a Map
type Field struct {
	Key   string
	Value any
}

// Map is an ordered mapping
type Map []Field

// Set appends a field and returns the map for chaining
func (m Map) Set(key string, value any) Map {
	return append(m, Field{Key: key, Value: value})
}

// Get returns the value stored under key
func (m Map) Get(key string) (any, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

const indent = 2

// Format serialises a document
func Format(doc Map) (string, error) {
	root, _, err := toNode(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.String(), nil
}

// Absent reports whether a value is omitted from formatted output
func Absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// toNode converts a value to a yaml node. The boolean is false when the
// value is absent.
func toNode(v any) (*yaml.Node, bool, error) {
	if Absent(v) {
		return nil, false, nil
	}

	switch val := v.(type) {
	case Map:
		return mapNode(val)
	case *yaml.Node:
		return val, true, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return toNode(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return seqNode(rv)
	case reflect.Map:
		return goMapNode(rv)
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, false, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return node, true, nil
}

func mapNode(m Map) (*yaml.Node, bool, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range m {
		value, ok, err := toNode(f.Value)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", f.Key, err)
		}
		if !ok {
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		node.Content = append(node.Content, key, value)
	}
	return node, true, nil
}

func seqNode(rv reflect.Value) (*yaml.Node, bool, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i := 0; i < rv.Len(); i++ {
		item, ok, err := toNode(rv.Index(i).Interface())
		if err != nil {
			return nil, false, fmt.Errorf("[%d]: %w", i, err)
		}
		if !ok {
			continue
		}
		node.Content = append(node.Content, item)
	}
	return node, true, nil
}

// goMapNode formats a plain Go map with its keys sorted, so output stays
// stable across runs
func goMapNode(rv reflect.Value) (*yaml.Node, bool, error) {
	keys := make([]string, 0, rv.Len())
	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	sort.Strings(keys)

	m := make(Map, 0, len(keys))
	for _, k := range keys {
		m = m.Set(k, values[k])
	}
	return mapNode(m)
}
