package pond

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the variants a Value can hold.
type Kind uint8

const (
	KindNone Kind = iota
	KindBytes
	KindText
	KindNumber
	KindBool
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNone:   "none",
	KindBytes:  "bytes",
	KindText:   "text",
	KindNumber: "number",
	KindBool:   "bool",
	KindList:   "list",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ErrUnsupportedType is returned by FromAny for Go values that have no Value
// representation.
var ErrUnsupportedType = errors.New("unsupported value type")

// Value is a closed union over the payloads a store can hold. Numbers keep
// their canonical decimal text so 64-bit integers survive unchanged.
type Value struct {
	kind    Kind
	text    string
	data    []byte
	boolean bool
	list    []Value
	dict    map[string]Value
}

// None is the empty value. Storing it removes the key.
var None = Value{}

func Bytes(b []byte) Value {
	return Value{kind: KindBytes, data: bytes.Clone(nonNil(b))}
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

func Uint(u uint64) Value {
	return Value{kind: KindNumber, text: strconv.FormatUint(u, 10)}
}

// Float uses the shortest representation that parses back to f.
func Float(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

func Float32(f float32) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(float64(f), 'g', -1, 32)}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

func Map(entries map[string]Value) Value {
	if entries == nil {
		entries = map[string]Value{}
	}
	return Value{kind: KindMap, dict: entries}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNone() bool { return v.kind == KindNone }

// String renders scalars in the form they are stored under. Lists and maps
// render in a debug form.
func (v Value) String() string {
	switch v.kind {
	case KindText, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindBytes:
		return fmt.Sprintf("<%d bytes>", len(v.data))
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindMap:
		keys := sortedKeys(v.dict)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.dict[k].String()
		}
		return "map[" + strings.Join(parts, " ") + "]"
	default:
		return ""
	}
}

// Equal reports deep equality, treating Text and Number with the same
// rendering as distinct.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindText, KindNumber:
		return v.text == other.text
	case KindBool:
		return v.boolean == other.boolean
	case KindBytes:
		return bytes.Equal(v.data, other.data)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.dict) != len(other.dict) {
			return false
		}
		for k, item := range v.dict {
			o, ok := other.dict[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// Storable is the closed set of Go types the typed helpers accept.
type Storable interface {
	string | bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		[]byte | []Value | map[string]Value
}

// ValueOf wraps a storable Go value.
func ValueOf[T Storable](v T) Value {
	switch x := any(v).(type) {
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case float32:
		return Float32(x)
	case float64:
		return Float(x)
	case []byte:
		return Bytes(x)
	case []Value:
		return List(x...)
	case map[string]Value:
		return Map(x)
	}
	return None
}

// FromAny converts a dynamically typed value, such as the output of a JSON
// or YAML decoder. nil converts to None.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return None, nil
	case Value:
		return x, nil
	case string:
		return Text(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Uint(uint64(x)), nil
	case uint8:
		return Uint(uint64(x)), nil
	case uint16:
		return Uint(uint64(x)), nil
	case uint32:
		return Uint(uint64(x)), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Float32(x), nil
	case float64:
		return Float(x), nil
	case []byte:
		return Bytes(x), nil
	case []Value:
		return List(x...), nil
	case map[string]Value:
		return Map(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return None, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return List(items...), nil
	case []string:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = Text(item)
		}
		return List(items...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return None, fmt.Errorf("key %q: %w", k, err)
			}
			entries[k] = converted
		}
		return Map(entries), nil
	}
	return None, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// Interface converts v back into plain Go values: string, bool, []byte,
// []any and map[string]any. Numbers become int64, uint64 or float64.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(v.text, 10, 64); err == nil {
			return u
		}
		f, _ := strconv.ParseFloat(v.text, 64)
		return f
	case KindBool:
		return v.boolean
	case KindBytes:
		return bytes.Clone(v.data)
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.dict))
		for k, item := range v.dict {
			out[k] = item.Interface()
		}
		return out
	}
	return nil
}

// As coerces v into T. Bytes, lists and maps only match their own kind;
// scalars go through their string form.
func As[T Storable](v Value) (T, bool) {
	var out T
	ok := false

	switch p := any(&out).(type) {
	case *[]byte:
		if v.kind == KindBytes {
			*p, ok = bytes.Clone(v.data), true
		}
	case *[]Value:
		if v.kind == KindList {
			*p, ok = v.clone().list, true
		}
	case *map[string]Value:
		if v.kind == KindMap {
			*p, ok = v.clone().dict, true
		}
	case *string:
		*p, ok = v.scalarText()
	case *bool:
		*p, ok = parseBool(v)
	case *int:
		*p, ok = parseSigned[int](v, strconv.IntSize)
	case *int8:
		*p, ok = parseSigned[int8](v, 8)
	case *int16:
		*p, ok = parseSigned[int16](v, 16)
	case *int32:
		*p, ok = parseSigned[int32](v, 32)
	case *int64:
		*p, ok = parseSigned[int64](v, 64)
	case *uint:
		*p, ok = parseUnsigned[uint](v, strconv.IntSize)
	case *uint8:
		*p, ok = parseUnsigned[uint8](v, 8)
	case *uint16:
		*p, ok = parseUnsigned[uint16](v, 16)
	case *uint32:
		*p, ok = parseUnsigned[uint32](v, 32)
	case *uint64:
		*p, ok = parseUnsigned[uint64](v, 64)
	case *float32:
		var f float64
		if f, ok = parseFloat(v, 32); ok {
			*p = float32(f)
		}
	case *float64:
		*p, ok = parseFloat(v, 64)
	}

	if !ok {
		var zero T
		return zero, false
	}
	return out, true
}

// normalized returns the form v is persisted in: scalars collapse to text,
// bytes, lists and maps are deep copies with their contents kept verbatim.
func (v Value) normalized() Value {
	switch v.kind {
	case KindNumber, KindBool:
		return Text(v.String())
	}
	return v.clone()
}

// clone deep-copies bytes, lists and maps so no caller shares them with a store.
func (v Value) clone() Value {
	switch v.kind {
	case KindBytes:
		return Bytes(v.data)
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.clone()
		}
		return List(items...)
	case KindMap:
		entries := make(map[string]Value, len(v.dict))
		for k, item := range v.dict {
			entries[k] = item.clone()
		}
		return Map(entries)
	}
	return v
}

func (v Value) scalarText() (string, bool) {
	switch v.kind {
	case KindText, KindNumber, KindBool:
		return v.String(), true
	}
	return "", false
}

func parseBool(v Value) (bool, bool) {
	if v.kind == KindBool {
		return v.boolean, true
	}
	s, ok := v.scalarText()
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	}
	return false, false
}

func parseSigned[T int | int8 | int16 | int32 | int64](v Value, bits int) (T, bool) {
	s, ok := numericText(v)
	if !ok {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, bits); err == nil {
		return T(i), true
	}
	// Accept integral floats such as "3.0" or "1e3".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	limit := math.Ldexp(1, bits-1)
	if f < -limit || f >= limit {
		return 0, false
	}
	return T(f), true
}

func parseUnsigned[T uint | uint8 | uint16 | uint32 | uint64](v Value, bits int) (T, bool) {
	s, ok := numericText(v)
	if !ok {
		return 0, false
	}
	if u, err := strconv.ParseUint(s, 10, bits); err == nil {
		return T(u), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f >= math.Ldexp(1, bits) {
		return 0, false
	}
	return T(f), true
}

func parseFloat(v Value, bits int) (float64, bool) {
	s, ok := numericText(v)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, false
	}
	return f, true
}

func numericText(v Value) (string, bool) {
	switch v.kind {
	case KindText, KindNumber:
		return strings.TrimSpace(v.text), true
	}
	return "", false
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
