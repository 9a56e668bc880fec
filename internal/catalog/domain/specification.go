package domain

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// SpecKind identifies the variant held by a SpecValue.
type SpecKind int

const (
	SpecString SpecKind = iota
	SpecNumber
	SpecBool
	SpecStringList
)

// SpecValue is one attribute value of the schema-less specifications map.
// It is closed over a small set of scalar and string-list variants so the
// entity keeps a precise serialization contract; any other shape is
// rejected at decode time.
type SpecValue struct {
	kind SpecKind
	str  string
	num  float64
	b    bool
	list []string
}

func StringSpec(v string) SpecValue  { return SpecValue{kind: SpecString, str: v} }
func NumberSpec(v float64) SpecValue { return SpecValue{kind: SpecNumber, num: v} }
func BoolSpec(v bool) SpecValue      { return SpecValue{kind: SpecBool, b: v} }
func ListSpec(v []string) SpecValue  { return SpecValue{kind: SpecStringList, list: v} }

// Kind returns the variant tag.
func (v SpecValue) Kind() SpecKind { return v.kind }

func (v SpecValue) Str() string     { return v.str }
func (v SpecValue) Number() float64 { return v.num }
func (v SpecValue) Bool() bool      { return v.b }
func (v SpecValue) List() []string  { return v.list }

func (v SpecValue) value() interface{} {
	switch v.kind {
	case SpecNumber:
		return v.num
	case SpecBool:
		return v.b
	case SpecStringList:
		if v.list == nil {
			return []string{}
		}
		return v.list
	default:
		return v.str
	}
}

// MarshalJSON emits the bare variant value.
func (v SpecValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.value())
}

// UnmarshalJSON accepts a string, number, bool, or array of strings.
func (v *SpecValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = StringSpec(t)
	case float64:
		*v = NumberSpec(t)
	case bool:
		*v = BoolSpec(t)
	case []interface{}:
		list := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("specification list element must be a string, got %T", e)
			}
			list = append(list, s)
		}
		*v = ListSpec(list)
	default:
		return fmt.Errorf("unsupported specification value type %T", raw)
	}
	return nil
}

// MarshalBSONValue emits the bare variant value.
func (v SpecValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(v.value())
}

// UnmarshalBSONValue accepts a string, numeric, bool, or string array value.
func (v *SpecValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		*v = StringSpec(raw.StringValue())
	case bson.TypeDouble:
		*v = NumberSpec(raw.Double())
	case bson.TypeInt32:
		*v = NumberSpec(float64(raw.Int32()))
	case bson.TypeInt64:
		*v = NumberSpec(float64(raw.Int64()))
	case bson.TypeBoolean:
		*v = BoolSpec(raw.Boolean())
	case bson.TypeArray:
		arr, err := raw.Array().Values()
		if err != nil {
			return err
		}
		list := make([]string, 0, len(arr))
		for _, e := range arr {
			s, ok := e.StringValueOK()
			if !ok {
				return fmt.Errorf("specification list element must be a string, got %s", e.Type)
			}
			list = append(list, s)
		}
		*v = ListSpec(list)
	default:
		return fmt.Errorf("unsupported specification value type %s", t)
	}
	return nil
}
