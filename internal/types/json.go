package types

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ToJSON marshals v into a JSON column value. A marshal failure yields an
// empty JSON array so a bad value can never corrupt a row.
func ToJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// StringSlice decodes a JSON column holding an array of strings.
func StringSlice(j datatypes.JSON) []string {
	if len(j) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}
