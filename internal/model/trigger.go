package model

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// Trigger is the value side of a logic rule: a single value or a set of values.
// It is encoded as a string or as an array of strings respectively.
type Trigger struct {
	values []string
	set    bool
}

// On returns a trigger matching a single value
func On(value string) Trigger {
	return Trigger{values: []string{value}}
}

// OnAny returns a trigger matching any of values
func OnAny(values ...string) Trigger {
	return Trigger{values: append([]string{}, values...), set: true}
}

// Values returns the trigger values
func (t Trigger) Values() []string { return t.values }

// IsSet reports whether the trigger was given as a set of values
func (t Trigger) IsSet() bool { return t.set }

// IsZero reports whether the trigger carries no value at all
func (t Trigger) IsZero() bool { return len(t.values) == 0 && !t.set }

// Contains reports whether v is one of the trigger values
func (t Trigger) Contains(v string) bool {
	for _, tv := range t.values {
		if tv == v {
			return true
		}
	}
	return false
}

func (t Trigger) MarshalJSON() ([]byte, error) {
	if t.set {
		return json.Marshal(t.values)
	}
	if len(t.values) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(t.values[0])
}

func (t *Trigger) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if string(data) == "null" {
			*t = Trigger{}
			return nil
		}
		*t = On(single)
		return nil
	}
	many, err := decodeStringList(data)
	if err != nil {
		return fmt.Errorf("logic trigger must be a string or an array of strings")
	}
	*t = OnAny(many...)
	return nil
}

func (t Trigger) MarshalYAML() (interface{}, error) {
	if t.set {
		return t.values, nil
	}
	if len(t.values) == 0 {
		return nil, nil
	}
	return t.values[0], nil
}

func (t *Trigger) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*t = On(single)
		return nil
	case yaml.SequenceNode:
		var items []*string
		if err := node.Decode(&items); err != nil {
			return err
		}
		many := make([]string, len(items))
		for i, item := range items {
			if item == nil {
				return fmt.Errorf("line %d: logic trigger values must be strings", node.Line)
			}
			many[i] = *item
		}
		*t = OnAny(many...)
		return nil
	}
	return fmt.Errorf("line %d: logic trigger must be a string or a list of strings", node.Line)
}

func (t Trigger) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if t.set {
		return bson.MarshalValue(t.values)
	}
	if len(t.values) == 0 {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(t.values[0])
}

func (t *Trigger) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bson.TypeNull:
		*t = Trigger{}
		return nil
	case bson.TypeString:
		*t = On(raw.StringValue())
		return nil
	case bson.TypeArray:
		var many []string
		if err := raw.Unmarshal(&many); err != nil {
			return err
		}
		*t = OnAny(many...)
		return nil
	}
	return fmt.Errorf("logic trigger: unexpected bson type %s", typ)
}
