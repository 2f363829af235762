package model

import (
	"encoding/json"
	"strconv"
)

// ID is an identifier which the API may send either as a JSON number
// or as a JSON string
type ID string

// UnmarshalJSON accepts numbers, strings and null
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*id = ID(canonicalNumber(number))

	return nil
}

// MarshalJSON writes integer identifiers as JSON numbers,
// everything else as a string
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

// Matches reports whether both identifiers designate the same record.
// The comparison is loose: 1, "1" and "01" all match.
func (id ID) Matches(other ID) bool {
	if id == "" || other == "" {
		return false
	}
	if id == other {
		return true
	}

	a, errA := strconv.ParseFloat(string(id), 64)
	b, errB := strconv.ParseFloat(string(other), 64)

	return errA == nil && errB == nil && a == b
}

// IDFromInt builds an ID from a numeric identifier
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

func canonicalNumber(number json.Number) string {
	if n, err := number.Int64(); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if f, err := number.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return number.String()
}
