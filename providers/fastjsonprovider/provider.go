// Package fastjsonprovider adapts github.com/valyala/fastjson to
// jsonpath.Provider. fastjson.Value trees are arena-allocated (SetProperty
// and SetIndex mutate them in place), so Clone reserializes and reparses
// rather than performing a structural deep copy — documented below, not
// silently approximated.
package fastjsonprovider

import (
	"fmt"

	"github.com/kallejson/jsonpath"
	"github.com/valyala/fastjson"
)

// Provider implements jsonpath.Provider over *fastjson.Value.
type Provider struct {
	parserPool fastjson.ParserPool
}

var _ jsonpath.Provider = (*Provider)(nil)

func (p *Provider) Parse(data []byte) (interface{}, error) {
	parser := p.parserPool.Get()
	defer p.parserPool.Put(parser)
	v, err := parser.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("fastjsonprovider: parse: %w", err)
	}
	return v.Get(), nil
}

func value(v interface{}) (*fastjson.Value, bool) {
	fv, ok := v.(*fastjson.Value)
	return fv, ok
}

func (*Provider) ToJSON(v interface{}) ([]byte, error) {
	fv, ok := value(v)
	if !ok {
		return nil, fmt.Errorf("fastjsonprovider: ToJSON: not a *fastjson.Value")
	}
	return fv.MarshalTo(nil), nil
}

func (*Provider) IsMap(v interface{}) bool {
	fv, ok := value(v)
	return ok && fv.Type() == fastjson.TypeObject
}

func (*Provider) IsArray(v interface{}) bool {
	fv, ok := value(v)
	return ok && fv.Type() == fastjson.TypeArray
}

func (p *Provider) IsContainer(v interface{}) bool {
	return p.IsMap(v) || p.IsArray(v)
}

func (*Provider) Length(v interface{}) (int, error) {
	fv, ok := value(v)
	if !ok {
		return 0, fmt.Errorf("fastjsonprovider: Length: not a *fastjson.Value")
	}
	switch fv.Type() {
	case fastjson.TypeObject:
		o, err := fv.Object()
		if err != nil {
			return 0, err
		}
		return o.Len(), nil
	case fastjson.TypeArray:
		return len(fv.GetArray()), nil
	default:
		return 0, fmt.Errorf("fastjsonprovider: Length: not a container")
	}
}

func (*Provider) Keys(v interface{}) ([]string, error) {
	fv, ok := value(v)
	if !ok {
		return nil, fmt.Errorf("fastjsonprovider: Keys: not a *fastjson.Value")
	}
	o, err := fv.Object()
	if err != nil {
		return nil, fmt.Errorf("fastjsonprovider: Keys: not a map: %w", err)
	}
	var keys []string
	o.Visit(func(k []byte, _ *fastjson.Value) {
		keys = append(keys, string(k))
	})
	return keys, nil
}

func scalarOf(fv *fastjson.Value) interface{} {
	switch fv.Type() {
	case fastjson.TypeNull:
		return nil
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeNumber:
		return fv.GetFloat64()
	case fastjson.TypeString:
		return string(fv.GetStringBytes())
	default:
		return fv
	}
}

func (*Provider) GetProperty(v interface{}, key string) (interface{}, bool, error) {
	fv, ok := value(v)
	if !ok {
		return nil, false, fmt.Errorf("fastjsonprovider: GetProperty: not a *fastjson.Value")
	}
	got := fv.Get(key)
	if got == nil {
		return nil, false, nil
	}
	return scalarOf(got), true, nil
}

func (*Provider) GetIndex(v interface{}, idx int) (interface{}, bool, error) {
	fv, ok := value(v)
	if !ok {
		return nil, false, fmt.Errorf("fastjsonprovider: GetIndex: not a *fastjson.Value")
	}
	arr := fv.GetArray()
	if idx < 0 || idx >= len(arr) {
		return nil, false, nil
	}
	return scalarOf(arr[idx]), true, nil
}

func (*Provider) SetProperty(v interface{}, key string, newVal interface{}) error {
	fv, ok := value(v)
	if !ok {
		return fmt.Errorf("fastjsonprovider: SetProperty: not a *fastjson.Value")
	}
	fv.Set(key, toFastjson(newVal))
	return nil
}

func (*Provider) SetIndex(v interface{}, idx int, newVal interface{}) error {
	fv, ok := value(v)
	if !ok {
		return fmt.Errorf("fastjsonprovider: SetIndex: not a *fastjson.Value")
	}
	fv.SetArrayItem(idx, toFastjson(newVal))
	return nil
}

func toFastjson(v interface{}) *fastjson.Value {
	if fv, ok := v.(*fastjson.Value); ok {
		return fv
	}
	var p fastjson.Parser
	switch t := v.(type) {
	case nil:
		fv, _ := p.Parse("null")
		return fv
	case bool:
		if t {
			fv, _ := p.Parse("true")
			return fv
		}
		fv, _ := p.Parse("false")
		return fv
	case string:
		fv, _ := p.Parse(fmt.Sprintf("%q", t))
		return fv
	default:
		fv, _ := p.Parse(fmt.Sprintf("%v", t))
		return fv
	}
}

func (*Provider) CreateArray() interface{} {
	var p fastjson.Parser
	v, _ := p.Parse("[]")
	return v
}

func (*Provider) CreateMap() interface{} {
	var p fastjson.Parser
	v, _ := p.Parse("{}")
	return v
}

func (*Provider) ToIterable(v interface{}) ([]interface{}, error) {
	fv, ok := value(v)
	if !ok {
		return nil, fmt.Errorf("fastjsonprovider: ToIterable: not a *fastjson.Value")
	}
	switch fv.Type() {
	case fastjson.TypeArray:
		arr := fv.GetArray()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = scalarOf(e)
		}
		return out, nil
	case fastjson.TypeObject:
		o, err := fv.Object()
		if err != nil {
			return nil, err
		}
		var out []interface{}
		o.Visit(func(_ []byte, v *fastjson.Value) {
			out = append(out, scalarOf(v))
		})
		return out, nil
	default:
		return nil, fmt.Errorf("fastjsonprovider: ToIterable: not a container")
	}
}

// Clone reserializes and reparses, since fastjson.Value trees are
// arena-backed and not designed for structural copying.
func (*Provider) Clone(v interface{}) (interface{}, error) {
	fv, ok := value(v)
	if !ok {
		return nil, fmt.Errorf("fastjsonprovider: Clone: not a *fastjson.Value")
	}
	var p fastjson.Parser
	cloned, err := p.ParseBytes(fv.MarshalTo(nil))
	if err != nil {
		return nil, err
	}
	return cloned, nil
}
