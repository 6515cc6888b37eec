package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/pond/internal/pond"
)

// Value types accepted by --type.
const (
	typeAuto   = "auto"
	typeString = "string"
	typeInt    = "int"
	typeFloat  = "float"
	typeBool   = "bool"
	typeBytes  = "bytes"
	typeJSON   = "json"
)

var valueTypes = []string{typeAuto, typeString, typeInt, typeFloat, typeBool, typeBytes, typeJSON}

func checkValueType(name string) error {
	for _, t := range valueTypes {
		if name == t {
			return nil
		}
	}
	return fmt.Errorf("unknown type %q (want one of %s)", name, strings.Join(valueTypes, ", "))
}

// renderValue writes v to w as the requested type.
func renderValue(w io.Writer, v pond.Value, valueType string, raw bool) error {
	switch valueType {
	case typeAuto:
		switch v.Kind() {
		case pond.KindBytes:
			data, _ := pond.As[[]byte](v)
			return renderBytes(w, data, raw)
		case pond.KindList, pond.KindMap:
			return renderJSON(w, v)
		}
		_, err := fmt.Fprintln(w, v.String())
		return err
	case typeString:
		s, ok := pond.As[string](v)
		if !ok {
			return coercionError(v, valueType)
		}
		_, err := fmt.Fprintln(w, s)
		return err
	case typeInt:
		i, ok := pond.As[int64](v)
		if !ok {
			return coercionError(v, valueType)
		}
		_, err := fmt.Fprintln(w, i)
		return err
	case typeFloat:
		f, ok := pond.As[float64](v)
		if !ok {
			return coercionError(v, valueType)
		}
		_, err := fmt.Fprintln(w, strconv.FormatFloat(f, 'g', -1, 64))
		return err
	case typeBool:
		b, ok := pond.As[bool](v)
		if !ok {
			return coercionError(v, valueType)
		}
		_, err := fmt.Fprintln(w, b)
		return err
	case typeBytes:
		data, ok := pond.As[[]byte](v)
		if !ok {
			return coercionError(v, valueType)
		}
		return renderBytes(w, data, raw)
	case typeJSON:
		return renderJSON(w, v)
	}
	return checkValueType(valueType)
}

func renderBytes(w io.Writer, data []byte, raw bool) error {
	if raw {
		_, err := w.Write(data)
		return err
	}
	_, err := fmt.Fprintf(w, "<%d bytes, %s>\n", len(data), mimeOf(data))
	return err
}

func mimeOf(data []byte) string {
	return mimetype.Detect(data).String()
}

func renderJSON(w io.Writer, v pond.Value) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v.Interface())
}

func coercionError(v pond.Value, valueType string) error {
	return fmt.Errorf("stored %s value cannot be read as %s", v.Kind(), valueType)
}

// parseInput converts a command-line argument into the Go value stored for
// valueType. Bytes are read from the file named by arg, or stdin for "-".
func parseInput(arg, valueType string, stdin io.Reader) (any, error) {
	switch valueType {
	case typeAuto, typeString:
		return arg, nil
	case typeInt:
		return strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	case typeFloat:
		return strconv.ParseFloat(strings.TrimSpace(arg), 64)
	case typeBool:
		return strconv.ParseBool(strings.TrimSpace(arg))
	case typeBytes:
		if arg == "-" {
			return io.ReadAll(stdin)
		}
		return os.ReadFile(arg)
	case typeJSON:
		// YAML is a superset of JSON and keeps integers as integers.
		var decoded any
		if err := yaml.Unmarshal([]byte(arg), &decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	}
	return nil, checkValueType(valueType)
}
