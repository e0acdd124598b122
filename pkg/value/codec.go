package value

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/go-ripple/ripple/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FromJSON decodes a JSON document into an Object or List tree.
func FromJSON(data []byte) (Node, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &errors.CodecError{Format: "json", Op: "decode", Err: err}
	}
	return fromDecoded("json", decoded)
}

// ToJSON encodes an Object or List tree as JSON. The tree is walked
// through the Node protocol, so observed views encode the same as their
// raw values.
func ToJSON(n Node) ([]byte, error) {
	plain, err := toPlain("json", n)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(plain)
	if err != nil {
		return nil, &errors.CodecError{Format: "json", Op: "encode", Err: err}
	}
	return data, nil
}

// FromYAML decodes a YAML document into an Object, List or Map tree.
func FromYAML(data []byte) (Node, error) {
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, &errors.CodecError{Format: "yaml", Op: "decode", Err: err}
	}
	return fromDecoded("yaml", decoded)
}

// ToYAML encodes an Object, List, Map or Set tree as YAML.
func ToYAML(n Node) ([]byte, error) {
	plain, err := toPlain("yaml", n)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(plain)
	if err != nil {
		return nil, &errors.CodecError{Format: "yaml", Op: "encode", Err: err}
	}
	return data, nil
}

// fromDecoded requires the document root to be composite.
func fromDecoded(format string, decoded any) (Node, error) {
	converted := convert(decoded)
	node, ok := converted.(Node)
	if !ok {
		return nil, &errors.CodecError{Format: format, Op: "decode", Got: decoded}
	}
	return node, nil
}

// convert maps decoded documents onto the container model: mappings with
// string keys become Objects, other mappings become Maps, sequences become
// Lists, scalars pass through.
func convert(v any) any {
	switch t := v.(type) {
	case map[string]any:
		o := NewObject()
		for k, item := range t {
			o.Set(k, convert(item))
		}
		return o
	case map[any]any:
		m := NewMap()
		for k, item := range t {
			m.Set(k, convert(item))
		}
		return m
	case []any:
		l := NewList()
		for _, item := range t {
			l.Append(convert(item))
		}
		return l
	}
	return v
}

// toPlain converts a Node tree back to plain maps and slices for the
// encoders. Weak containers are not enumerable and cannot be encoded.
func toPlain(format string, v any) (any, error) {
	node, ok := v.(Node)
	if !ok {
		return v, nil
	}
	switch node.Kind() {
	case KindObject:
		fields := make(map[string]any, node.Len())
		for _, key := range node.Keys() {
			item, err := toPlain(format, node.Get(key))
			if err != nil {
				return nil, err
			}
			fields[key.(string)] = item
		}
		return fields, nil
	case KindList:
		items := make([]any, 0, node.Len())
		for _, key := range node.Keys() {
			item, err := toPlain(format, node.Get(key))
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case KindMap:
		entries := make(map[string]any, node.Len())
		for _, key := range node.Keys() {
			name, ok := key.(string)
			if !ok {
				name = fmt.Sprint(key)
			}
			item, err := toPlain(format, node.Get(key))
			if err != nil {
				return nil, err
			}
			entries[name] = item
		}
		return entries, nil
	case KindSet:
		elems := make([]any, 0, node.Len())
		for _, key := range node.Keys() {
			item, err := toPlain(format, node.Get(key))
			if err != nil {
				return nil, err
			}
			elems = append(elems, item)
		}
		return elems, nil
	}
	return nil, &errors.CodecError{Format: format, Op: "encode", Got: v}
}
