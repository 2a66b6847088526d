package jsonpath

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Provider abstracts the underlying JSON representation so the tokenizer,
// token filters, and predicate evaluator never inspect a concrete Go type
// directly. The core ships one default implementation (Object/[]interface{}
// over encoding/json, see DefaultProvider); providers/gjsonprovider,
// providers/gabsprovider, and providers/fastjsonprovider ship alternates
// backed by third-party JSON libraries.
type Provider interface {
	// Parse decodes raw JSON bytes into a provider-native value.
	Parse(data []byte) (interface{}, error)
	// ToJSON serializes a provider-native value back to JSON bytes.
	ToJSON(value interface{}) ([]byte, error)

	IsMap(value interface{}) bool
	IsArray(value interface{}) bool
	IsContainer(value interface{}) bool

	// Length returns the number of entries in a map or array value.
	Length(value interface{}) (int, error)
	// Keys returns a map's keys in the provider's natural iteration order.
	Keys(value interface{}) ([]string, error)

	// GetProperty looks up key on a map value. The second return reports
	// whether the key was present.
	GetProperty(value interface{}, key string) (interface{}, bool, error)
	// GetIndex looks up a 0-based index on an array value.
	GetIndex(value interface{}, idx int) (interface{}, bool, error)

	// SetProperty assigns v to key on a map value, adding the key if absent.
	SetProperty(value interface{}, key string, v interface{}) error
	// SetIndex assigns v to a 0-based index on an array value.
	SetIndex(value interface{}, idx int, v interface{}) error

	CreateArray() interface{}
	CreateMap() interface{}

	// ToIterable returns a map's values (in Keys order) or an array's
	// elements, for fan-out operators (Wildcard, Scan).
	ToIterable(value interface{}) ([]interface{}, error)

	// Clone returns a deep copy of value. Evaluation does not call it; it
	// reads the caller's document without mutating it (§8 invariant 8).
	Clone(value interface{}) (interface{}, error)
}

// Object is the default provider's map representation: a JSON object that
// remembers the order its keys were first observed in, so that Wildcard and
// Scan fan-out preserve document order per §4.2 and §8 invariant 3 — a
// guarantee a plain Go map cannot make.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject returns an empty, order-tracking JSON object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value stored at key, and whether it was present.
func (o *Object) Get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set assigns v to key, appending key to the insertion order if new.
func (o *Object) Set(key string, v interface{}) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Len returns the number of keys in the object.
func (o *Object) Len() int { return len(o.keys) }

// DefaultProvider is the zero-dependency Provider backed by encoding/json,
// using Object (above) instead of a plain map[string]interface{} so that
// key order survives decoding.
type DefaultProvider struct{}

var _ Provider = DefaultProvider{}

// Parse decodes data into an *Object / []interface{} / json.Number / string
// / bool / nil tree, preserving object key order.
func (DefaultProvider) Parse(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := make([]interface{}, 0)
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return tok, nil
	}
}

// ToJSON serializes value back to JSON, respecting *Object key order.
func (DefaultProvider) ToJSON(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, value interface{}) error {
	switch v := value.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encodeValue(buf, v.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []interface{}:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}

func (DefaultProvider) IsMap(value interface{}) bool {
	_, ok := value.(*Object)
	return ok
}

func (DefaultProvider) IsArray(value interface{}) bool {
	_, ok := value.([]interface{})
	return ok
}

func (p DefaultProvider) IsContainer(value interface{}) bool {
	return p.IsMap(value) || p.IsArray(value)
}

func (DefaultProvider) Length(value interface{}) (int, error) {
	switch v := value.(type) {
	case *Object:
		return v.Len(), nil
	case []interface{}:
		return len(v), nil
	default:
		return 0, fmt.Errorf("length: not a container: %T", value)
	}
}

func (DefaultProvider) Keys(value interface{}) ([]string, error) {
	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("keys: not a map: %T", value)
	}
	return obj.Keys(), nil
}

func (DefaultProvider) GetProperty(value interface{}, key string) (interface{}, bool, error) {
	obj, ok := value.(*Object)
	if !ok {
		return nil, false, fmt.Errorf("getProperty: not a map: %T", value)
	}
	v, ok := obj.Get(key)
	return v, ok, nil
}

func (DefaultProvider) GetIndex(value interface{}, idx int) (interface{}, bool, error) {
	arr, ok := value.([]interface{})
	if !ok {
		return nil, false, fmt.Errorf("getIndex: not an array: %T", value)
	}
	if idx < 0 || idx >= len(arr) {
		return nil, false, nil
	}
	return arr[idx], true, nil
}

func (DefaultProvider) SetProperty(value interface{}, key string, v interface{}) error {
	obj, ok := value.(*Object)
	if !ok {
		return fmt.Errorf("setProperty: not a map: %T", value)
	}
	obj.Set(key, v)
	return nil
}

func (DefaultProvider) SetIndex(value interface{}, idx int, v interface{}) error {
	arr, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("setIndex: not an array: %T", value)
	}
	if idx < 0 || idx >= len(arr) {
		return fmt.Errorf("setIndex: index %d out of range (length %d)", idx, len(arr))
	}
	arr[idx] = v
	return nil
}

func (DefaultProvider) CreateArray() interface{} { return make([]interface{}, 0) }
func (DefaultProvider) CreateMap() interface{}   { return NewObject() }

func (DefaultProvider) ToIterable(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case *Object:
		out := make([]interface{}, 0, v.Len())
		for _, k := range v.keys {
			out = append(out, v.values[k])
		}
		return out, nil
	case []interface{}:
		return v, nil
	default:
		return nil, fmt.Errorf("toIterable: not a container: %T", value)
	}
}

func (DefaultProvider) Clone(value interface{}) (interface{}, error) {
	return cloneValue(value), nil
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case *Object:
		cp := NewObject()
		for _, k := range v.keys {
			cp.Set(k, cloneValue(v.values[k]))
		}
		return cp
	case []interface{}:
		cp := make([]interface{}, len(v))
		for i, e := range v {
			cp[i] = cloneValue(e)
		}
		return cp
	default:
		return v
	}
}
