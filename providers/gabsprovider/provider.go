// Package gabsprovider adapts github.com/Jeffail/gabs/v2 to
// jsonpath.Provider, for hosts that already build their documents with
// gabs's fluent *gabs.Container API and want to run jsonpath queries
// against the same tree without a round trip through encoding/json.
package gabsprovider

import (
	"fmt"

	"github.com/Jeffail/gabs/v2"
	"github.com/kallejson/jsonpath"
)

// Provider implements jsonpath.Provider over *gabs.Container.
type Provider struct{}

var _ jsonpath.Provider = Provider{}

func (Provider) Parse(data []byte) (interface{}, error) {
	c, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("gabsprovider: parse: %w", err)
	}
	return c, nil
}

func (Provider) ToJSON(value interface{}) ([]byte, error) {
	c, ok := value.(*gabs.Container)
	if !ok {
		return nil, fmt.Errorf("gabsprovider: ToJSON: not a container")
	}
	return c.Bytes(), nil
}

func container(value interface{}) (*gabs.Container, bool) {
	c, ok := value.(*gabs.Container)
	return c, ok
}

func (Provider) IsMap(value interface{}) bool {
	c, ok := container(value)
	if !ok {
		return false
	}
	_, isMap := c.Data().(map[string]interface{})
	return isMap
}

func (Provider) IsArray(value interface{}) bool {
	c, ok := container(value)
	if !ok {
		return false
	}
	_, isArr := c.Data().([]interface{})
	return isArr
}

func (p Provider) IsContainer(value interface{}) bool {
	return p.IsMap(value) || p.IsArray(value)
}

func (Provider) Length(value interface{}) (int, error) {
	c, ok := container(value)
	if !ok {
		return 0, fmt.Errorf("gabsprovider: Length: not a container")
	}
	switch v := c.Data().(type) {
	case map[string]interface{}:
		return len(v), nil
	case []interface{}:
		return len(v), nil
	default:
		return 0, fmt.Errorf("gabsprovider: Length: not a map or array")
	}
}

// Keys returns a gabs object's keys by ranging over its underlying
// map[string]interface{}, which does not preserve source order;
// hosts that need order-preserving Wildcard/Scan fan-out should use the
// core's DefaultProvider instead.
func (Provider) Keys(value interface{}) ([]string, error) {
	c, ok := container(value)
	if !ok {
		return nil, fmt.Errorf("gabsprovider: Keys: not a container")
	}
	m, ok := c.Data().(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("gabsprovider: Keys: not a map")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys, nil
}

func scalarOf(c *gabs.Container) interface{} {
	switch v := c.Data().(type) {
	case map[string]interface{}, []interface{}:
		return c
	default:
		return v
	}
}

func (Provider) GetProperty(value interface{}, key string) (interface{}, bool, error) {
	c, ok := container(value)
	if !ok {
		return nil, false, fmt.Errorf("gabsprovider: GetProperty: not a container")
	}
	m, ok := c.Data().(map[string]interface{})
	if !ok {
		return nil, false, fmt.Errorf("gabsprovider: GetProperty: not a map")
	}
	if _, present := m[key]; !present {
		return nil, false, nil
	}
	return scalarOf(c.S(key)), true, nil
}

func (Provider) GetIndex(value interface{}, idx int) (interface{}, bool, error) {
	c, ok := container(value)
	if !ok {
		return nil, false, fmt.Errorf("gabsprovider: GetIndex: not a container")
	}
	arr, ok := c.Data().([]interface{})
	if !ok {
		return nil, false, fmt.Errorf("gabsprovider: GetIndex: not an array")
	}
	if idx < 0 || idx >= len(arr) {
		return nil, false, nil
	}
	return scalarOf(c.Index(idx)), true, nil
}

func (Provider) SetProperty(value interface{}, key string, v interface{}) error {
	c, ok := container(value)
	if !ok {
		return fmt.Errorf("gabsprovider: SetProperty: not a container")
	}
	_, err := c.Set(unwrap(v), key)
	return err
}

func (Provider) SetIndex(value interface{}, idx int, v interface{}) error {
	c, ok := container(value)
	if !ok {
		return fmt.Errorf("gabsprovider: SetIndex: not a container")
	}
	_, err := c.SetIndex(unwrap(v), idx)
	return err
}

func unwrap(v interface{}) interface{} {
	if c, ok := v.(*gabs.Container); ok {
		return c.Data()
	}
	return v
}

func (Provider) CreateArray() interface{} {
	c, _ := gabs.New().Array()
	return c
}

func (Provider) CreateMap() interface{} {
	return gabs.New()
}

// ToIterable returns an array's elements in index order. For an object it
// returns the values in Go map iteration order, which need not match the
// order of a separate Keys call.
func (Provider) ToIterable(value interface{}) ([]interface{}, error) {
	c, ok := container(value)
	if !ok {
		return nil, fmt.Errorf("gabsprovider: ToIterable: not a container")
	}
	switch v := c.Data().(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = scalarOf(c.Index(i))
		}
		return out, nil
	case map[string]interface{}:
		out := make([]interface{}, 0, len(v))
		for k := range v {
			out = append(out, scalarOf(c.S(k)))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("gabsprovider: ToIterable: not a container")
	}
}

func (Provider) Clone(value interface{}) (interface{}, error) {
	c, ok := container(value)
	if !ok {
		return nil, fmt.Errorf("gabsprovider: Clone: not a container")
	}
	return gabs.ParseJSON(c.Bytes())
}
