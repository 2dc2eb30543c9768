package describer

import (
	"encoding/json"
	"strings"
)

const (
	UnknownType ValueType = iota
	StringType
	BooleanType
	IntegerType
	NumberType
	ArrayType
	ObjectType
	DateType
	TimeType
	DateTimeType
	DateTimeTZType
)

// ValueType is a type of value.
type ValueType uint8

func (v ValueType) String() string {
	switch v {
	case StringType:
		return "string"
	case BooleanType:
		return "boolean"
	case IntegerType:
		return "integer"
	case NumberType:
		return "number"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	case DateType:
		return "date"
	case TimeType:
		return "time"
	case DateTimeType:
		return "datetime"
	case DateTimeTZType:
		return "datetime_tz"
	}

	return ""
}

func (v ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *ValueType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	var t ValueType

	switch strings.ToLower(s) {
	case "string":
		t = StringType
	case "boolean":
		t = BooleanType
	case "integer":
		t = IntegerType
	case "number":
		t = NumberType
	case "array":
		t = ArrayType
	case "object":
		t = ObjectType
	case "date":
		t = DateType
	case "time":
		t = TimeType
	case "datetime":
		t = DateTimeType
	case "datetime_tz":
		t = DateTimeTZType
	}

	*v = t

	return nil
}
