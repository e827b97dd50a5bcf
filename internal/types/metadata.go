package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is a json serializable map stored as a jsonb column
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for metadata: %T", src)
	}

	return json.Unmarshal(data, m)
}

// GetString returns the string value for a key, empty when absent or not a string
func (m Metadata) GetString(key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
