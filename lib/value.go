package lib

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

var errInvalidJSON = errors.New("invalid JSON document")

// Value wraps a decoded JSON value. The vendor payload is semi-structured,
// so every field is read through optional accessors instead of a fixed struct.
type Value struct {
	v interface{}
}

// DecodeValue decodes a JSON document. Numbers keep their literal text.
func DecodeValue(data []byte) (Value, error) {
	if !json.Valid(data) {
		return Value{}, errInvalidJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}

	return Value{v}, nil
}

// Lookup returns the member key of an object. ok reports whether the key
// is there at all, so a null member is found.
func (v Value) Lookup(key string) (Value, bool) {
	obj, ok := v.v.(map[string]interface{})
	if !ok {
		return Value{}, false
	}

	member, ok := obj[key]
	return Value{member}, ok
}

// Get is Lookup for members that must carry a value: null counts as absent.
func (v Value) Get(key string) (Value, bool) {
	member, ok := v.Lookup(key)
	if !ok || member.IsNull() {
		return Value{}, false
	}

	return member, true
}

func (v Value) Array() ([]Value, bool) {
	arr, ok := v.v.([]interface{})
	if !ok {
		return nil, false
	}

	values := make([]Value, len(arr))
	for i, e := range arr {
		values[i] = Value{e}
	}

	return values, true
}

// Int returns the value as an integer. Fractional or non-numeric values fail.
func (v Value) Int() (int64, bool) {
	n, ok := v.v.(json.Number)
	if !ok {
		return 0, false
	}

	i, err := n.Int64()
	if err != nil {
		return 0, false
	}

	return i, true
}

func (v Value) IsNull() bool { return v.v == nil }

// Text renders the value for display: strings as-is, anything else as
// compact JSON (null is "null"), with surrounding double quotes stripped.
func (v Value) Text() string {
	switch t := v.v.(type) {
	case string:
		return strings.Trim(t, `"`)
	case json.Number:
		return t.String()
	case nil:
		return "null"
	}

	b, err := json.Marshal(v.v)
	if err != nil {
		return ""
	}

	return strings.Trim(string(b), `"`)
}
