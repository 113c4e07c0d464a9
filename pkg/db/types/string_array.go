package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray stores a list of strings as a JSON column so the same model
// works against postgres (jsonb) and the sqlite test driver (text).
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scanning string array: unsupported type %T", src)
	}

	return json.Unmarshal(raw, a)
}

// Contains reports whether the array holds the given value.
func (a StringArray) Contains(value string) bool {
	for _, item := range a {
		if item == value {
			return true
		}
	}
	return false
}
