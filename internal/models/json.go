package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON is a raw JSON document stored in a jsonb column.
type JSON json.RawMessage

// NewJSON marshals v into a JSON column value.
func NewJSON(v interface{}) (JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return JSON(b), nil
}

// Decode unmarshals the column into v. An empty column leaves v untouched.
func (j JSON) Decode(v interface{}) error {
	if j.IsEmpty() {
		return nil
	}
	return json.Unmarshal(j, v)
}

func (j JSON) IsEmpty() bool {
	return len(j) == 0 || string(j) == "null"
}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSON(v)
	default:
		return errors.New(fmt.Sprint("failed to scan jsonb value: ", value))
	}
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("models.JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[:0], data...)
	return nil
}

func (JSON) GormDataType() string {
	return "jsonb"
}
