package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList holds amenities. Older listings stored them as one comma separated
// string, so both shapes decode.
type StringList []string

// TrimList trims each value and drops blanks.
func TrimList(values ...string) StringList {
	out := StringList{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseList reads a single form or legacy value: a JSON-encoded array or a comma
// separated list.
func ParseList(value string) StringList {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") {
		var values []string
		if err := json.Unmarshal([]byte(value), &values); err == nil {
			return TrimList(values...)
		}
	}
	return TrimList(strings.Split(value, ",")...)
}

func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*s = StringList{}
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*s = TrimList(values...)
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		*s = ParseList(value)
	default:
		return fmt.Errorf("amenities: unsupported bson type %s", t)
	}
	return nil
}

// MarshalBSONValue writes an array, never null.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s == nil {
		return bson.MarshalValue([]string{})
	}
	return bson.MarshalValue([]string(s))
}

func (s *StringList) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		*s = TrimList(values...)
		return nil
	}
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("amenities: expected string or array, got %s", data)
	}
	if value == nil {
		*s = StringList{}
		return nil
	}
	*s = ParseList(*value)
	return nil
}

// MarshalJSON writes an array, never null.
func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
