// Package gjsonprovider adapts github.com/tidwall/gjson and
// github.com/tidwall/sjson to jsonpath.Provider, trading the core's
// order-preserving Object tree for gjson's raw-byte-backed, read-optimized
// one — useful when a host mostly Reads and rarely mutates.
package gjsonprovider

import (
	"fmt"
	"strconv"

	"github.com/kallejson/jsonpath"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var _ jsonpath.Provider = Provider{}

// document is the provider-native container value: the raw JSON bytes this
// node spans. It is always handled through *document so SetProperty/
// SetIndex can mutate the bytes a caller is holding a reference to, the way
// the default provider mutates an *Object in place.
type document struct {
	raw []byte
}

func wrap(raw []byte) *document { return &document{raw: raw} }

func result(value interface{}) (gjson.Result, bool) {
	d, ok := value.(*document)
	if !ok {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(d.raw), true
}

// Provider implements jsonpath.Provider over gjson/sjson.
type Provider struct{}

func (Provider) Parse(data []byte) (interface{}, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("gjsonprovider: invalid JSON")
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return wrap(raw), nil
}

func (Provider) ToJSON(value interface{}) ([]byte, error) {
	r, ok := result(value)
	if !ok {
		return nil, fmt.Errorf("gjsonprovider: ToJSON: not a document")
	}
	return []byte(r.Raw), nil
}

func (Provider) IsMap(value interface{}) bool {
	r, ok := result(value)
	return ok && r.IsObject()
}

func (Provider) IsArray(value interface{}) bool {
	r, ok := result(value)
	return ok && r.IsArray()
}

func (p Provider) IsContainer(value interface{}) bool {
	return p.IsMap(value) || p.IsArray(value)
}

func (p Provider) Length(value interface{}) (int, error) {
	r, ok := result(value)
	if !ok {
		return 0, fmt.Errorf("gjsonprovider: Length: not a document")
	}
	n := 0
	r.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n, nil
}

func (Provider) Keys(value interface{}) ([]string, error) {
	r, ok := result(value)
	if !ok || !r.IsObject() {
		return nil, fmt.Errorf("gjsonprovider: Keys: not a map")
	}
	var keys []string
	r.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys, nil
}

// scalarOf converts a gjson.Result leaf into the Go value jsonpath's
// predicate evaluator expects (see jsonpath.toLiteral): containers stay
// wrapped as a *document for further navigation.
func scalarOf(r gjson.Result) interface{} {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	default:
		return wrap([]byte(r.Raw))
	}
}

func (Provider) GetProperty(value interface{}, key string) (interface{}, bool, error) {
	r, ok := result(value)
	if !ok {
		return nil, false, fmt.Errorf("gjsonprovider: GetProperty: not a document")
	}
	got := r.Get(key)
	if !got.Exists() {
		return nil, false, nil
	}
	return scalarOf(got), true, nil
}

func (Provider) GetIndex(value interface{}, idx int) (interface{}, bool, error) {
	r, ok := result(value)
	if !ok {
		return nil, false, fmt.Errorf("gjsonprovider: GetIndex: not a document")
	}
	arr := r.Array()
	if idx < 0 || idx >= len(arr) {
		return nil, false, nil
	}
	return scalarOf(arr[idx]), true, nil
}

// SetProperty and SetIndex round-trip through sjson, since gjson.Result is
// a read-only view over the original bytes; the *document's raw bytes are
// replaced in place so existing references observe the mutation.
func (Provider) SetProperty(value interface{}, key string, v interface{}) error {
	d, ok := value.(*document)
	if !ok {
		return fmt.Errorf("gjsonprovider: SetProperty: not a document")
	}
	out, err := sjson.SetBytes(d.raw, key, rawValueOf(v))
	if err != nil {
		return err
	}
	d.raw = out
	return nil
}

func (Provider) SetIndex(value interface{}, idx int, v interface{}) error {
	d, ok := value.(*document)
	if !ok {
		return fmt.Errorf("gjsonprovider: SetIndex: not a document")
	}
	out, err := sjson.SetBytes(d.raw, strconv.Itoa(idx), rawValueOf(v))
	if err != nil {
		return err
	}
	d.raw = out
	return nil
}

// rawValueOf unwraps a *document back to a plain Go value sjson can encode;
// scalars pass through untouched.
func rawValueOf(v interface{}) interface{} {
	if d, ok := v.(*document); ok {
		return gjson.ParseBytes(d.raw).Value()
	}
	return v
}

func (Provider) CreateArray() interface{} { return wrap([]byte("[]")) }
func (Provider) CreateMap() interface{}   { return wrap([]byte("{}")) }

func (Provider) ToIterable(value interface{}) ([]interface{}, error) {
	r, ok := result(value)
	if !ok {
		return nil, fmt.Errorf("gjsonprovider: ToIterable: not a document")
	}
	var out []interface{}
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, scalarOf(v))
		return true
	})
	return out, nil
}

func (Provider) Clone(value interface{}) (interface{}, error) {
	d, ok := value.(*document)
	if !ok {
		return nil, fmt.Errorf("gjsonprovider: Clone: not a document")
	}
	raw := make([]byte, len(d.raw))
	copy(raw, d.raw)
	return wrap(raw), nil
}
