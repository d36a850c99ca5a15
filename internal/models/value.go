package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumberOrString is a data file value authored either as a JSON number (2500)
// or as text ("2400-2800"). Numbers keep their literal text; both forms are
// written back as strings.
type NumberOrString string

// String returns the value text
func (v NumberOrString) String() string { return string(v) }

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (v *NumberOrString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NumberOrString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*v = NumberOrString(n.String())
	return nil
}
