// Package param models the values bound to bulk SQL statements: the
// tagged value union, the dialect-neutral type tags, the driver-level
// wire types and the ordered row representation.
package param

// TypeTag is the dialect-neutral type annotation a caller may attach to
// a value. Untagged values get a TypeTag inferred by Guess.
type TypeTag int

const (
	TagNull TypeTag = iota
	TagInteger
	TagFloat
	TagString
	TagBoolean
	TagBinary
	TagASCII
	TagLargeObject
	TagJSON
	TagJSONB
	TagUUID
	TagTimestamp
	TagArray
	TagFloatArray

	// TagDefault marks a cell that contributes no bound parameter and
	// renders as the literal DEFAULT keyword in generated insert SQL.
	TagDefault
)

// String returns the tag name.
func (t TypeTag) String() string {
	switch t {
	case TagNull:
		return "NULL"
	case TagInteger:
		return "INTEGER"
	case TagFloat:
		return "FLOAT"
	case TagString:
		return "STRING"
	case TagBoolean:
		return "BOOLEAN"
	case TagBinary:
		return "BINARY"
	case TagASCII:
		return "ASCII"
	case TagLargeObject:
		return "LARGE_OBJECT"
	case TagJSON:
		return "JSON"
	case TagJSONB:
		return "JSONB"
	case TagUUID:
		return "UUID"
	case TagTimestamp:
		return "TIMESTAMP"
	case TagArray:
		return "ARRAY"
	case TagFloatArray:
		return "FLOAT_ARRAY"
	case TagDefault:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

// WireType is the driver-level parameter type reported alongside each
// bound parameter.
type WireType int

const (
	WireNull WireType = iota
	WireInteger
	WireString
	WireLargeObject
	WireBoolean
	WireBinary
	WireASCII
)

// String returns the wire type name.
func (w WireType) String() string {
	switch w {
	case WireNull:
		return "NULL"
	case WireInteger:
		return "INTEGER"
	case WireString:
		return "STRING"
	case WireLargeObject:
		return "LARGE_OBJECT"
	case WireBoolean:
		return "BOOLEAN"
	case WireBinary:
		return "BINARY"
	case WireASCII:
		return "ASCII"
	default:
		return "UNKNOWN"
	}
}

// IDStrategy selects how an identity column value is materialized
// during insert normalization.
type IDStrategy int

const (
	// StrategyAutoIncrement leaves id generation to the server.
	StrategyAutoIncrement IDStrategy = iota + 1
	// StrategyUID generates a compact process-unique string id.
	StrategyUID
	// StrategyUUID generates a time-ordered UUID.
	StrategyUUID
	// StrategyInt generates a random positive 63-bit integer.
	StrategyInt
	// StrategyString generates a prefixed unique string id.
	StrategyString
	// StrategyDefault defers to the column default, like
	// StrategyAutoIncrement.
	StrategyDefault
)

// ClientSide reports whether the strategy materializes values without a
// server round trip. Only batches whose id generation is fully
// client-side are eligible for parallel chunk execution.
func (s IDStrategy) ClientSide() bool {
	switch s {
	case StrategyUID, StrategyUUID, StrategyInt, StrategyString:
		return true
	default:
		return false
	}
}
