package model

import (
	"encoding/json"
	"strconv"
)

// ID is a backend identifier. The backend emits integer primary keys, but
// string keys are accepted too so the client never depends on the type.
type ID string

// String returns the identifier as a string.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}
