package param

import (
	"io"
	"time"
)

// Legacy integer type codes bridged from PDO-style drivers.
const (
	legacyNull        = 0
	legacyInteger     = 1
	legacyLargeObject = 3
	legacyBoolean     = 5
)

// Guess infers a type tag from a value's native representation. It is
// total: every input maps to a tag, with STRING as the fallback.
func Guess(v any) TypeTag {
	switch v.(type) {
	case nil:
		return TagNull
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TagInteger
	case bool:
		return TagBoolean
	case io.Reader:
		return TagLargeObject
	case []byte:
		return TagBinary
	case []any, []string, []int, []int32, []int64, []float32, []float64:
		return TagArray
	case float32, float64:
		return TagFloat
	case time.Time:
		return TagTimestamp
	default:
		return TagString
	}
}

// MapLegacyCode bridges a legacy integer driver type constant to a
// TypeTag. Unrecognized codes fall back to STRING.
func MapLegacyCode(code int) TypeTag {
	switch code {
	case legacyNull:
		return TagNull
	case legacyInteger:
		return TagInteger
	case legacyBoolean:
		return TagBoolean
	case legacyLargeObject:
		return TagLargeObject
	default:
		return TagString
	}
}

// ToWire maps a type tag to the driver-level parameter type. The
// DEFAULT sentinel has no wire representation; callers strip it before
// binding, so it never reaches this mapping.
func ToWire(tag TypeTag) WireType {
	switch tag {
	case TagNull:
		return WireNull
	case TagFloat, TagInteger:
		return WireInteger
	case TagString, TagJSON, TagJSONB, TagUUID, TagTimestamp, TagArray, TagFloatArray:
		return WireString
	case TagLargeObject:
		return WireLargeObject
	case TagBoolean:
		return WireBoolean
	case TagBinary:
		return WireBinary
	case TagASCII:
		return WireASCII
	default:
		return WireString
	}
}
