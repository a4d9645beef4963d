package model

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields is a loosely typed document: attributes sent by clients that the API
// stores and returns without interpreting them.
type Fields map[string]interface{}

// String returns the value stored under key when it is a string.
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Without returns a copy of f minus the given keys.
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// ParseTime accepts the date shapes clients send: RFC 3339 strings, plain
// dates, epoch milliseconds or an already decoded time.
func ParseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case float64:
		return time.UnixMilli(int64(t)).UTC(), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// mergeJSON encodes known as a JSON object and adds every extra key known does
// not already define.
func mergeJSON(known interface{}, extra Fields) ([]byte, error) {
	base, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, exists := fields[k]; exists {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// nested converts a decoded sub-document into Fields.
func nested(v interface{}) (Fields, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return Fields(m), true
	case primitive.M:
		return Fields(m), true
	case Fields:
		return m, true
	}
	return nil, false
}
