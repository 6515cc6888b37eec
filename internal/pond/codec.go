package pond

import (
	"encoding/base64"
	"fmt"
)

const documentVersion = "1.0"

// entry is the persisted form of a Value.
type entry struct {
	Kind string           `yaml:"kind"`
	Text string           `yaml:"text,omitempty"`
	Data string           `yaml:"data,omitempty"`
	Bool bool             `yaml:"bool,omitempty"`
	List []entry          `yaml:"list,omitempty"`
	Map  map[string]entry `yaml:"map,omitempty"`
}

// document is the file format shared by the preferences and secure stores.
type document struct {
	Version string           `yaml:"version"`
	Entries map[string]entry `yaml:"entries"`
}

func encodeEntry(v Value) entry {
	e := entry{Kind: v.kind.String()}
	switch v.kind {
	case KindText, KindNumber:
		e.Text = v.text
	case KindBool:
		e.Bool = v.boolean
	case KindBytes:
		e.Data = base64.StdEncoding.EncodeToString(v.data)
	case KindList:
		e.List = make([]entry, len(v.list))
		for i, item := range v.list {
			e.List[i] = encodeEntry(item)
		}
	case KindMap:
		e.Map = make(map[string]entry, len(v.dict))
		for k, item := range v.dict {
			e.Map[k] = encodeEntry(item)
		}
	}
	return e
}

func decodeEntry(e entry) (Value, error) {
	switch e.Kind {
	case "text":
		return Text(e.Text), nil
	case "number":
		return Value{kind: KindNumber, text: e.Text}, nil
	case "bool":
		return Bool(e.Bool), nil
	case "bytes":
		data, err := base64.StdEncoding.DecodeString(e.Data)
		if err != nil {
			return None, fmt.Errorf("decode bytes: %w", err)
		}
		return Bytes(data), nil
	case "list":
		items := make([]Value, len(e.List))
		for i, item := range e.List {
			v, err := decodeEntry(item)
			if err != nil {
				return None, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return List(items...), nil
	case "map":
		entries := make(map[string]Value, len(e.Map))
		for k, item := range e.Map {
			v, err := decodeEntry(item)
			if err != nil {
				return None, fmt.Errorf("key %q: %w", k, err)
			}
			entries[k] = v
		}
		return Map(entries), nil
	}
	return None, fmt.Errorf("unknown value kind %q", e.Kind)
}

func newDocument(values map[string]Value) document {
	doc := document{Version: documentVersion, Entries: make(map[string]entry, len(values))}
	for k, v := range values {
		doc.Entries[k] = encodeEntry(v)
	}
	return doc
}

func (d document) values() (map[string]Value, error) {
	out := make(map[string]Value, len(d.Entries))
	for k, e := range d.Entries {
		v, err := decodeEntry(e)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}
